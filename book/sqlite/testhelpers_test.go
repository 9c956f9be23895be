package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

/* Test helpers: every test gets its own database file under t.TempDir(),
 * so tests never share state and can run in parallel.
 */

// SetupLocalSQLite creates a repository backed by a fresh database file
func SetupLocalSQLite(t *testing.T) *Repository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookshelf.db")
	repo, err := NewRepository(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(context.Background()) })

	return repo
}

// PopulateSampleData inserts two users and four books; alice has read two of them
func PopulateSampleData(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()

	for _, name := range []string{"alice", "bob"} {
		_, err := db.ExecContext(ctx, "INSERT INTO users (name) VALUES (?)", name)
		require.NoError(t, err)
	}

	testBooks := []struct {
		title  string
		author string
		genre  string
		userID int
		rating int
		isRead int
	}{
		{"Neuromancer", "William Gibson", "Sci-Fi", 1, 5, 1},
		{"Dune", "Frank Herbert", "Sci-Fi", 1, 0, 0},
		{"1984", "George Orwell", "Dystopia", 1, 3, 1},
		{"Foundation", "Isaac Asimov", "Sci-Fi", 2, 0, 0},
	}
	for _, b := range testBooks {
		_, err := db.ExecContext(ctx,
			"INSERT INTO books (title, author, genre, user_id, rating, is_read) VALUES (?, ?, ?, ?, ?, ?)",
			b.title, b.author, b.genre, b.userID, b.rating, b.isRead,
		)
		require.NoError(t, err)
	}
}

// AssertBookCount verifica quantos livros estão no banco
func AssertBookCount(t *testing.T, ctx context.Context, db *sql.DB, expected int) {
	t.Helper()

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}
