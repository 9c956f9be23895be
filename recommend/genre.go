package recommend

import "github.com/marcelsud/bookshelf/book"

// GenreStats is the tally of genres over a set of books
type GenreStats struct {
	Counts map[string]int
	// Order lists genres in the order they were first seen
	Order    []string
	Favorite string
}

// HasFavorite reports whether any book was counted
func (s GenreStats) HasFavorite() bool {
	return len(s.Counts) > 0
}

// Total is the number of books counted
func (s GenreStats) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

/* ComputeGenreStats counts books per genre. Genres match exactly, case
 * included. The favorite is the genre with the highest count; on a tie the
 * genre seen first in books wins, so the result depends on input order.
 */
func ComputeGenreStats(books []book.Book) GenreStats {
	stats := GenreStats{
		Counts: make(map[string]int),
		Order:  []string{},
	}
	for _, b := range books {
		if _, seen := stats.Counts[b.Genre]; !seen {
			stats.Order = append(stats.Order, b.Genre)
		}
		stats.Counts[b.Genre]++
	}

	best := 0
	for _, genre := range stats.Order {
		// strictly greater keeps the earliest genre on ties
		if n := stats.Counts[genre]; n > best {
			best = n
			stats.Favorite = genre
		}
	}
	return stats
}
