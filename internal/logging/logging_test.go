package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Infow("hidden", "k", 1)
	log.Warnw("shown", "page", "churn")
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "churn")
}

func TestParseLevel(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "loud")
	assert.Error(t, err)

	log, err := NewWithWriter(&bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.NotNil(t, log)
}
