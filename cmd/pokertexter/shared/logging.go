package shared

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures charmbracelet/log with timestamps at the named level.
func SetupLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}
