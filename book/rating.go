package book

import "fmt"

// Rating is the score a reader gives a book, from 0 (unrated) to 5.
type Rating int

const (
	Unrated   Rating = 0
	MaxRating Rating = 5
)

// Validate checks the rating is inside the accepted range
func (r Rating) Validate() error {
	if r < Unrated || r > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d (got %d)", ErrValidation, Unrated, MaxRating, r)
	}
	return nil
}

func (r Rating) String() string {
	if r == Unrated {
		return "unrated"
	}
	return fmt.Sprintf("%d/%d", r, MaxRating)
}
