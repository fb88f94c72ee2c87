package logging

import (
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"

	"github.com/ppiankov/finbrief/internal/model"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warn", "off", "none"} {
		logger := New(model.LoggingConfig{Level: level})
		assert.NotNil(t, logger, level)
		logger.Debug().Str("level", level).Msg("logger built")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.NotNil(t, logger)

	// Level changes stay on the private writer.
	quiet := logger.WithLevel(arbor.ErrorLevel)
	quiet.Error().Str("k", "v").Msg("dropped")
	logger.WithPrefix("nop").Info().Msg("dropped")
}

func TestDiscardWriter(t *testing.T) {
	var w discardWriter
	n, err := w.Write([]byte("payload"))
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, w, w.WithLevel(log.InfoLevel))
	assert.Empty(t, w.GetFilePath())
	assert.NoError(t, w.Close())
}
