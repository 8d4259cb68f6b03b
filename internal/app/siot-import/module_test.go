package siot_import_module

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/init-pkg/siot-loader/domain/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryLogsFieldKinds(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	registry, err := newRegistry(log)
	require.NoError(t, err)

	_, ok := registry.Field(schema.AnchorField)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "kind=date")
	assert.Contains(t, buf.String(), "kind=text")
}
