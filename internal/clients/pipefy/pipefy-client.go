package pipefy_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/internal/config"
)

const (
	labelsQuery = `query($id: ID!){ pipe(id:$id){ labels{ id name } } }`

	createCardMutation = `mutation($input: CreateCardInput!) {
  createCard(input: $input) { card { id title } }
}`
)

type PipefyClient struct {
	url           string
	token         string
	labelsTimeout time.Duration
	createTimeout time.Duration
	client        *http.Client
	log           *slog.Logger
}

var _ app.PipeClient = &PipefyClient{}

// GraphQL envelopes
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type labelsData struct {
	Pipe *struct {
		Labels []Label `json:"labels"`
	} `json:"pipe"`
}

type CreateCardInput struct {
	PipeID           string            `json:"pipe_id"`
	Title            string            `json:"title"`
	FieldsAttributes []app.OutputField `json:"fields_attributes"`
}

type createCardData struct {
	CreateCard *struct {
		Card *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"card"`
	} `json:"createCard"`
}

func New(cfg *config.Config, log *slog.Logger) *PipefyClient {
	p := cfg.Clients.Pipefy
	return &PipefyClient{
		url:           p.Url,
		token:         p.Token,
		labelsTimeout: p.LabelsTimeout,
		createTimeout: p.CreateTimeout,
		client:        &http.Client{},
		log:           log,
	}
}

// FetchLabels returns label name -> id for the pipe. Any failure is logged
// and yields an empty map.
func (this *PipefyClient) FetchLabels(ctx context.Context, pipeID string) map[string]string {
	out := map[string]string{}

	var resp graphQLResponse[labelsData]
	status, body, err := this.post(ctx, this.labelsTimeout, graphQLRequest{
		Query:     labelsQuery,
		Variables: map[string]any{"id": pipeID},
	})
	if err != nil {
		this.log.Warn("fetch labels failed", "pipe", pipeID, "error", err)
		return out
	}
	if status != http.StatusOK {
		this.log.Warn("fetch labels failed", "pipe", pipeID, "status", status, "body", string(body))
		return out
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		this.log.Warn("fetch labels: bad response", "pipe", pipeID, "error", err)
		return out
	}
	if len(resp.Errors) > 0 {
		this.log.Warn("fetch labels: api errors", "pipe", pipeID, "errors", joinErrors(resp.Errors))
		return out
	}
	if resp.Data.Pipe == nil {
		return out
	}

	for _, l := range resp.Data.Pipe.Labels {
		if l.ID == "" || l.Name == "" {
			continue
		}
		out[l.Name] = l.ID
	}
	this.log.Info("labels fetched", "pipe", pipeID, "count", len(out))
	return out
}

// CreateCard creates one card and returns its id.
func (this *PipefyClient) CreateCard(ctx context.Context, pipeID, title string, fields []app.OutputField) (string, error) {
	if fields == nil {
		fields = []app.OutputField{}
	}

	status, body, err := this.post(ctx, this.createTimeout, graphQLRequest{
		Query: createCardMutation,
		Variables: map[string]any{"input": CreateCardInput{
			PipeID:           pipeID,
			Title:            title,
			FieldsAttributes: fields,
		}},
	})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", status, string(body))
	}

	var resp graphQLResponse[createCardData]
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return "", fmt.Errorf("pipefy: %s", joinErrors(resp.Errors))
	}
	if resp.Data.CreateCard == nil || resp.Data.CreateCard.Card == nil || resp.Data.CreateCard.Card.ID == "" {
		return "", fmt.Errorf("pipefy: no card id in response: %s", string(body))
	}
	return resp.Data.CreateCard.Card.ID, nil
}

func (this *PipefyClient) post(ctx context.Context, timeout time.Duration, payload graphQLRequest) (int, []byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	js, e := json.Marshal(payload)
	if e != nil {
		return 0, nil, e
	}

	req, e := http.NewRequestWithContext(ctx, http.MethodPost, this.url, bytes.NewBuffer(js))
	if e != nil {
		return 0, nil, e
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+this.token)

	res, e := this.client.Do(req)
	if e != nil {
		return 0, nil, e
	}
	defer res.Body.Close()

	body, e := io.ReadAll(res.Body)
	if e != nil {
		return res.StatusCode, nil, e
	}
	return res.StatusCode, body, nil
}

func joinErrors(list []graphQLError) string {
	msgs := make([]string, 0, len(list))
	for _, e := range list {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
