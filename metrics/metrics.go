package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the library.
type Metrics struct {
	// Users is the number of registered users
	Users int64 `json:"users"`

	// Books counts every book on every shelf, and how many of them were read
	Books BookCounts `json:"books"`

	// Genres maps genre to the number of catalog books in it
	Genres map[string]int64 `json:"genres"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

type BookCounts struct {
	Total int64 `json:"total"`
	Read  int64 `json:"read"`
}

// Collector defines the interface for collecting metrics from the store.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetUserCount returns the number of registered users
	GetUserCount(ctx context.Context) (int64, error)

	// GetBookCounts returns the total and read book counts
	GetBookCounts(ctx context.Context) (BookCounts, error)

	// GetGenreCounts returns catalog books per genre
	GetGenreCounts(ctx context.Context) (map[string]int64, error)
}
