package recommend

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultMaxSuggestions = 5
	DefaultFallbackGenre  = "Popular"
)

// Settings tune the recommendation engine
type Settings struct {
	// MaxSuggestions caps the number of suggested books
	MaxSuggestions int
	// FallbackGenre labels the recommendation when nothing can be suggested at all
	FallbackGenre string
	// Backfill tops up short suggestion lists with the best rated books of other genres
	Backfill bool
}

func DefaultSettings() Settings {
	return Settings{
		MaxSuggestions: DefaultMaxSuggestions,
		FallbackGenre:  DefaultFallbackGenre,
	}
}

func (s Settings) Validate() error {
	if s.MaxSuggestions < 1 {
		return fmt.Errorf("max suggestions must be at least 1 (got %d)", s.MaxSuggestions)
	}
	if strings.TrimSpace(s.FallbackGenre) == "" {
		return errors.New("fallback genre is required")
	}
	return nil
}

// withDefaults fills zero or out of range values, so Settings{} behaves like DefaultSettings()
func (s Settings) withDefaults() Settings {
	if s.MaxSuggestions < 1 {
		s.MaxSuggestions = DefaultMaxSuggestions
	}
	if strings.TrimSpace(s.FallbackGenre) == "" {
		s.FallbackGenre = DefaultFallbackGenre
	}
	return s
}
