package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to w at the configured level.
func (c EngineConfig) NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}
