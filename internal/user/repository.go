package user

import "context"

// Reader provides read operations for users
type Reader interface {
	SelectUser(ctx context.Context, id int64) (User, error)
	SelectUserByName(ctx context.Context, name string) (User, error)
	/* SelectUsers returns every user ordered by ID.
	 * An empty store yields an empty slice, not an error.
	 */
	SelectUsers(ctx context.Context) ([]User, error)
}

// Writer provides write operations for users
type Writer interface {
	/* InsertUser stores a new user and returns the assigned ID.
	 * Returns ErrConflict when the name is already taken.
	 */
	InsertUser(ctx context.Context, u User) (int64, error)
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
