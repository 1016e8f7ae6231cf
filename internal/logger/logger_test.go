package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, New("WARN").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("bogus").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("").GetLevel())
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("input", "accounts.csv").Msg("transform started")

	out := buf.String()
	assert.Contains(t, out, "transform started")
	assert.Contains(t, out, "accounts.csv")
}
