package seed

import (
	"fmt"
	"strings"

	"github.com/marcelsud/bookshelf/book"
)

/* Shelf is one user of the seed catalog with the books to put on their shelf.
 * Entries keep the file order so Apply inserts them the way they were written.
 */
type Shelf struct {
	Name  string
	Books []Entry
}

// Entry is a book on a seeded shelf
type Entry struct {
	Title    string
	Author   string
	Genre    string
	CoverURL string
	Read     bool        // true when Rating > 0 or the file says read: true
	Rating   book.Rating // 0 keeps the book unrated
}

// Validate checks if the shelf configuration is valid
func (s *Shelf) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	for i, e := range s.Books {
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("title cannot be empty for book %d of %s", i+1, s.Name)
		}
		if strings.TrimSpace(e.Author) == "" {
			return fmt.Errorf("author cannot be empty for %q of %s", e.Title, s.Name)
		}
		if strings.TrimSpace(e.Genre) == "" {
			return fmt.Errorf("genre cannot be empty for %q of %s", e.Title, s.Name)
		}
		if err := e.Rating.Validate(); err != nil {
			return fmt.Errorf("invalid rating for %q of %s: %w", e.Title, s.Name, err)
		}
	}
	return nil
}

// ReadCount returns how many entries will be marked as read
func (s *Shelf) ReadCount() int {
	n := 0
	for _, e := range s.Books {
		if e.Read {
			n++
		}
	}
	return n
}
