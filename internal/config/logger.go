package config

import (
	"io"
	"strings"

	"github.com/gologme/log"
)

// logLevels in increasing verbosity
var logLevels = [...]string{"error", "warn", "info", "debug", "trace"}

// NewLogger returns a leveled logger writing to w with every level up to and
// including level enabled. An unknown level falls back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	logger := log.New(w, "", log.Flags())
	setLogLevel(level, logger)
	return logger
}

func setLogLevel(loglevel string, logger *log.Logger) {
	loglevel = strings.ToLower(loglevel)

	known := false
	for _, l := range logLevels {
		if l == loglevel {
			known = true
			break
		}
	}
	if !known {
		logger.Infoln("Loglevel parse failed. Set default level(info)")
		loglevel = "info"
	}

	for _, l := range logLevels {
		logger.EnableLevel(l)
		if l == loglevel {
			break
		}
	}
}
