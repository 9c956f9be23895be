package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
)

// Summary counts what Apply changed in the store
type Summary struct {
	UsersCreated int `json:"users_created"`
	UsersReused  int `json:"users_reused"`
	BooksCreated int `json:"books_created"`
	BooksSkipped int `json:"books_skipped"`
	BooksRead    int `json:"books_read"`
}

/* Apply writes the loaded shelves through the services.
 * A user that already exists is reused, and a title already on their shelf
 * is skipped, so applying the same file twice adds nothing.
 * It stops at the first error and returns what was done until then.
 */
func (l *Loader) Apply(ctx context.Context, users user.UseCase, books book.UseCase) (Summary, error) {
	var sum Summary
	for _, shelf := range l.shelves {
		u, created, err := ensureUser(ctx, users, shelf.Name)
		if err != nil {
			return sum, err
		}
		owned := map[string]bool{}
		if created {
			sum.UsersCreated++
		} else {
			sum.UsersReused++
			current, err := books.ListForUser(ctx, u.ID)
			if err != nil {
				return sum, fmt.Errorf("listing books of %s: %w", u.Name, err)
			}
			for _, b := range current {
				owned[book.NormalizeTitle(b.Title)] = true
			}
		}

		for _, e := range shelf.Books {
			if owned[book.NormalizeTitle(e.Title)] {
				sum.BooksSkipped++
				continue
			}
			b, err := books.Create(ctx, u.ID, e.Title, e.Author, e.Genre, e.CoverURL)
			if err != nil {
				return sum, fmt.Errorf("creating %q for %s: %w", e.Title, u.Name, err)
			}
			sum.BooksCreated++
			owned[book.NormalizeTitle(e.Title)] = true

			if !e.Read {
				continue
			}
			if _, err := books.MarkRead(ctx, b.ID, e.Rating); err != nil {
				return sum, fmt.Errorf("marking %q as read for %s: %w", e.Title, u.Name, err)
			}
			sum.BooksRead++
		}
	}
	return sum, nil
}

// ensureUser returns the named user, creating it when missing
func ensureUser(ctx context.Context, users user.UseCase, name string) (user.User, bool, error) {
	u, err := users.GetByName(ctx, name)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, false, fmt.Errorf("looking up %s: %w", name, err)
	}

	u, err = users.Create(ctx, name)
	if errors.Is(err, user.ErrConflict) {
		// created by someone else in between
		u, err = users.GetByName(ctx, name)
		if err != nil {
			return user.User{}, false, fmt.Errorf("looking up %s: %w", name, err)
		}
		return u, false, nil
	}
	if err != nil {
		return user.User{}, false, fmt.Errorf("creating %s: %w", name, err)
	}
	return u, true, nil
}
