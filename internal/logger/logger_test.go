package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 0)

	l.Info("Workflow service: code issued", "kind", "STUDENT")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Workflow service: code issued", record["msg"])
	assert.Equal(t, "STUDENT", record["kind"])
	assert.Equal(t, "INFO", record["level"])
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 4)

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 0).With("component", "sweeper")

	l.Info("tick")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "sweeper", record["component"])
}
