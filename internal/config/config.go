package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/init-pkg/siot-loader/domain/app"
)

type Config struct {
	LogLevel string  `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Http     Http    `yaml:"http"`
	Import   Import  `yaml:"import"`
	Clients  Clients `yaml:"clients"`
}

type Http struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
}

type Import struct {
	TableName   string        `yaml:"table_name" env:"SIOT_TABLE_NAME" env-default:"SIOT"`
	ScanRows    int           `yaml:"scan_rows" env:"SIOT_SCAN_ROWS" env-default:"40"`
	SubmitDelay time.Duration `yaml:"submit_delay" env:"SUBMIT_DELAY" env-default:"50ms"`
}

type Clients struct {
	Pipefy Pipefy `yaml:"pipefy"`
	OpenAI OpenAI `yaml:"openai"`
}

type Pipefy struct {
	Token         string        `yaml:"token" env:"PIPEFY_TOKEN"`
	PipeID        string        `yaml:"pipe_id" env:"PIPEFY_PIPE_ID"`
	Url           string        `yaml:"url" env:"PIPEFY_API_URL" env-default:"https://api.pipefy.com/graphql"`
	LabelsTimeout time.Duration `yaml:"labels_timeout" env:"PIPEFY_LABELS_TIMEOUT" env-default:"30s"`
	CreateTimeout time.Duration `yaml:"create_timeout" env:"PIPEFY_CREATE_TIMEOUT" env-default:"40s"`
}

type OpenAI struct {
	ApiKey string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model  string `yaml:"model" env:"OPENAI_MODEL"`
}

// Load reads an optional .env, then CONFIG_PATH (yaml/json/toml, env still
// overrides) or the environment alone.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) normalize() {
	c.Clients.Pipefy.Token = strings.TrimSpace(c.Clients.Pipefy.Token)
	c.Clients.Pipefy.PipeID = strings.TrimSpace(c.Clients.Pipefy.PipeID)
	if c.Import.ScanRows < 1 {
		c.Import.ScanRows = 1
	}
	if c.Import.ScanRows > 200 {
		c.Import.ScanRows = 200
	}
	if c.Import.SubmitDelay < 0 {
		c.Import.SubmitDelay = 0
	}
}

// Validate checks what a real import needs. Preview runs without it.
func (c *Config) Validate() error {
	var missing []string
	if c.Clients.Pipefy.Token == "" {
		missing = append(missing, "PIPEFY_TOKEN")
	}
	if c.Clients.Pipefy.PipeID == "" {
		missing = append(missing, "PIPEFY_PIPE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", app.ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}
