package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	out := &bytes.Buffer{}
	return &app{logger: zerolog.Nop(), out: out, errOut: &bytes.Buffer{}}, out
}

func run(t *testing.T, a *app, out *bytes.Buffer, args ...string) []byte {
	t.Helper()
	out.Reset()
	err := a.command().Run(context.Background(), append([]string{"bookshelf"}, args...))
	require.NoError(t, err)
	return out.Bytes()
}

func TestCLI(t *testing.T) {
	a, out := newTestApp(t)

	var u userOutput
	require.NoError(t, json.Unmarshal(run(t, a, out, "users", "create", "--name", "alice"), &u))
	assert.Equal(t, "alice", u.Name)
	assert.NotZero(t, u.ID)

	var b bookOutput
	require.NoError(t, json.Unmarshal(run(t, a, out, "books", "add",
		"--user", "1", "--title", "Dune", "--author", "Frank Herbert", "--genre", "Sci-Fi"), &b))
	assert.Equal(t, "Dune", b.Title)
	assert.False(t, b.IsRead)

	require.NoError(t, json.Unmarshal(run(t, a, out, "books", "mark-read", "--id", "1", "--rating", "5"), &b))
	assert.True(t, b.IsRead)
	assert.Equal(t, 5, b.Rating)

	var read []bookOutput
	require.NoError(t, json.Unmarshal(run(t, a, out, "books", "list", "--user", "1", "--read"), &read))
	assert.Len(t, read, 1)

	var s statsOutput
	require.NoError(t, json.Unmarshal(run(t, a, out, "stats", "--user", "1"), &s))
	assert.Equal(t, 1, s.TotalBooks)
	assert.Equal(t, "Sci-Fi", s.FavoriteGenre)

	var users []userOutput
	require.NoError(t, json.Unmarshal(run(t, a, out, "users", "list"), &users))
	assert.Len(t, users, 1)
}

func TestCLI_SeedAndRecommend(t *testing.T) {
	a, out := newTestApp(t)
	seedFile := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedFile, []byte(`
users:
  - name: "reader"
    books:
      - {title: "Dune", author: "Frank Herbert", genre: "Sci-Fi", rating: 5}
  - name: "other"
    books:
      - {title: "Hyperion", author: "Dan Simmons", genre: "Sci-Fi"}
      - {title: "Hamlet", author: "William Shakespeare", genre: "Drama"}
`), 0o600))

	var sum struct {
		UsersCreated int `json:"users_created"`
		BooksCreated int `json:"books_created"`
		BooksRead    int `json:"books_read"`
	}
	require.NoError(t, json.Unmarshal(run(t, a, out, "seed", seedFile), &sum))
	assert.Equal(t, 2, sum.UsersCreated)
	assert.Equal(t, 3, sum.BooksCreated)
	assert.Equal(t, 1, sum.BooksRead)

	var rec recommendationOutput
	require.NoError(t, json.Unmarshal(run(t, a, out, "recommend", "--user", "1"), &rec))
	assert.Equal(t, "Sci-Fi", rec.Genre)
	require.Len(t, rec.Suggested, 1)
	assert.Equal(t, "Hyperion", rec.Suggested[0].Title)
}

func TestCLI_Errors(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	t.Run("rating out of range", func(t *testing.T) {
		err := a.command().Run(ctx, []string{"bookshelf", "books", "mark-read", "--id", "1", "--rating", "6"})
		require.Error(t, err)
	})

	t.Run("read filter needs a user", func(t *testing.T) {
		err := a.command().Run(ctx, []string{"bookshelf", "books", "list", "--read"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--read requires --user")
	})

	t.Run("missing required flag", func(t *testing.T) {
		err := a.command().Run(ctx, []string{"bookshelf", "users", "create"})
		require.Error(t, err)
	})

	t.Run("unknown store driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		err := a.command().Run(ctx, []string{"bookshelf", "users", "list"})
		require.Error(t, err)
	})
}
