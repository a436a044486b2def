package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", FormatText)
	require.NoError(t, err)

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
}

func TestNew_JSONUsesZap(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", FormatJSON)
	require.NoError(t, err)
	require.IsType(t, &ZapLogger{}, log)

	log.With("collection", "users").Error(context.Background(), "save failed", "count", 3)
	require.NoError(t, log.(*ZapLogger).Sync())

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "save failed", entry["msg"])
	assert.Equal(t, "users", entry["collection"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", FormatText)
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, "loud", FormatJSON)
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}
