package book

import "context"

/* Small interfaces: they abstract behavior, not things, and are written
 * for the callers of the API (services, the recommender, metrics).
 */

type Reader interface {
	Select(ctx context.Context, id int64) (Book, error)
	/* SelectAll returns the whole catalog ordered by ID, which is the
	 * insertion order. An empty catalog is an empty slice, not an error.
	 */
	SelectAll(ctx context.Context) ([]Book, error)
	SelectByUser(ctx context.Context, userID int64) ([]Book, error)
	SelectReadByUser(ctx context.Context, userID int64) ([]Book, error)
}

type Writer interface {
	Insert(ctx context.Context, book Book) (int64, error)
	/* MarkRead flags the book as read with the given rating.
	 * Returns ErrNotFound when the ID is unknown. Concurrent calls are
	 * last-write-wins.
	 */
	MarkRead(ctx context.Context, id int64, rating Rating) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
