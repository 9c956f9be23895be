package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"
)

// New builds the service logger through httplog and sets the global level
func New(service, level string, json bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}
	logger := httplog.NewLogger(service, httplog.Options{
		JSON: json,
	})
	// httplog configures its own default level, so ours goes last
	zerolog.SetGlobalLevel(lvl)
	return logger, nil
}

// NewConsole is the human readable logger used by the command line tools
func NewConsole(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// ParseLevel accepts zerolog level names; empty means info
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return lvl, nil
}
