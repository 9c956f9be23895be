package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/marcelsud/bookshelf/recommend"
)

// StoreCollector implements the Collector interface by reading the book store
type StoreCollector struct {
	users user.Reader
	books book.Reader
}

func NewStoreCollector(users user.Reader, books book.Reader) *StoreCollector {
	return &StoreCollector{
		users: users,
		books: books,
	}
}

// Collect gathers all metrics from the store
func (c *StoreCollector) Collect(ctx context.Context) (Metrics, error) {
	users, err := c.GetUserCount(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting user count: %w", err)
	}

	books, err := c.GetBookCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting book counts: %w", err)
	}

	genres, err := c.GetGenreCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting genre counts: %w", err)
	}

	return Metrics{
		Users:     users,
		Books:     books,
		Genres:    genres,
		Timestamp: time.Now(),
	}, nil
}

func (c *StoreCollector) GetUserCount(ctx context.Context) (int64, error) {
	all, err := c.users.SelectUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("selecting users: %w", err)
	}
	return int64(len(all)), nil
}

func (c *StoreCollector) GetBookCounts(ctx context.Context) (BookCounts, error) {
	all, err := c.books.SelectAll(ctx)
	if err != nil {
		return BookCounts{}, fmt.Errorf("selecting books: %w", err)
	}

	counts := BookCounts{Total: int64(len(all))}
	for _, b := range all {
		if b.IsRead {
			counts.Read++
		}
	}
	return counts, nil
}

func (c *StoreCollector) GetGenreCounts(ctx context.Context) (map[string]int64, error) {
	all, err := c.books.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}

	stats := recommend.ComputeGenreStats(all)
	genres := make(map[string]int64, len(stats.Counts))
	for genre, n := range stats.Counts {
		genres[genre] = int64(n)
	}
	return genres, nil
}
