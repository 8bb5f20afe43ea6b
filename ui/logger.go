package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// InitLogger initializes and configures a Charm logger on stderr
func InitLogger(verbose bool) *log.Logger {
	return NewLogger(os.Stderr, verbose)
}

// NewLogger builds the logger InitLogger uses on an arbitrary writer
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "shelfkit",
		ReportCaller:    verbose,
		ReportTimestamp: verbose,
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	return logger
}
