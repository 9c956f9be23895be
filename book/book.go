package book

import (
	"fmt"
	"strings"
)

/* Book is a copy of a title on one user's shelf.
 * No tags: this is the business representation, the web and storage
 * layers keep their own shapes.
 */
type Book struct {
	ID       int64
	Title    string
	Author   string
	Genre    string
	CoverURL string
	IsRead   bool
	Rating   Rating
	UserID   int64
}

// Validate checks the fields required to put a book on a shelf
func (b Book) Validate() error {
	var missing []string
	if strings.TrimSpace(b.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(b.Author) == "" {
		missing = append(missing, "author")
	}
	if strings.TrimSpace(b.Genre) == "" {
		missing = append(missing, "genre")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}
	if err := b.Rating.Validate(); err != nil {
		return err
	}
	// a rating only means something once the book was read
	if b.Rating > Unrated && !b.IsRead {
		return fmt.Errorf("%w: an unread book cannot be rated", ErrValidation)
	}
	return nil
}

// NormalizeTitle is the key two copies of the same title share, ignoring case and spacing
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}
