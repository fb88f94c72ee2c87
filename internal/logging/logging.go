// Package logging builds the structured console logger.
package logging

import (
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"

	"github.com/ppiankov/finbrief/internal/model"
)

// New returns a console logger at the configured level. "off" or "none"
// returns a logger that discards everything.
func New(cfg model.LoggingConfig) arbor.ILogger {
	level := strings.ToLower(strings.TrimSpace(cfg.Level))
	switch level {
	case "off", "none":
		return NewNop()
	case "":
		level = "info"
	}

	return arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		OutputType:       models.OutputFormatLogfmt,
		DisableTimestamp: false,
	}).WithLevelFromString(level)
}

// NewNop returns a logger bound to a private discarding writer. It never
// falls through to the globally registered writers.
func NewNop() arbor.ILogger {
	return arbor.NewLogger().WithWriters([]writers.IWriter{discardWriter{}})
}

type discardWriter struct{}

func (d discardWriter) WithLevel(log.Level) writers.IWriter { return d }
func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
func (discardWriter) GetFilePath() string { return "" }
func (discardWriter) Close() error { return nil }
