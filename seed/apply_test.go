package seed_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/marcelsud/bookshelf/book"
	bookmocks "github.com/marcelsud/bookshelf/book/mocks"
	"github.com/marcelsud/bookshelf/book/sqlite"
	"github.com/marcelsud/bookshelf/internal/user"
	usermocks "github.com/marcelsud/bookshelf/internal/user/mocks"
	"github.com/marcelsud/bookshelf/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleSeed = `
users:
  - name: "alice"
    books:
      - title: "Dune"
        author: "Frank Herbert"
        genre: "Sci-Fi"
        rating: 5
      - title: "Hamlet"
        author: "William Shakespeare"
        genre: "Drama"
  - name: "bob"
    books:
      - title: "Foundation"
        author: "Isaac Asimov"
        genre: "Sci-Fi"
        read: true
`

func loadSample(t *testing.T) *seed.Loader {
	t.Helper()
	loader := seed.NewLoader()
	require.NoError(t, loader.Parse([]byte(sampleSeed)))
	return loader
}

func TestLoader_Apply_WithStore(t *testing.T) {
	ctx := context.Background()
	repo, err := sqlite.NewRepository(ctx, filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(ctx) })

	users := user.NewService(repo)
	books := book.NewService(repo, repo)
	loader := loadSample(t)

	sum, err := loader.Apply(ctx, users, books)

	require.NoError(t, err)
	assert.Equal(t, seed.Summary{UsersCreated: 2, BooksCreated: 3, BooksRead: 2}, sum)

	alice, err := users.GetByName(ctx, "alice")
	require.NoError(t, err)
	shelf, err := books.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, shelf, 2)
	assert.True(t, shelf[0].IsRead)
	assert.Equal(t, book.Rating(5), shelf[0].Rating)
	assert.False(t, shelf[1].IsRead)

	bob, err := users.GetByName(ctx, "bob")
	require.NoError(t, err)
	read, err := books.ListReadForUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, book.Unrated, read[0].Rating)

	t.Run("applying twice adds nothing", func(t *testing.T) {
		sum, err := loader.Apply(ctx, users, books)

		require.NoError(t, err)
		assert.Equal(t, seed.Summary{UsersReused: 2, BooksSkipped: 3}, sum)

		all, err := books.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestLoader_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses a user created concurrently", func(t *testing.T) {
		users := usermocks.NewUseCase(t)
		books := bookmocks.NewUseCase(t)
		loader := seed.NewLoader()
		require.NoError(t, loader.Parse([]byte(`
users:
  - name: "alice"
`)))

		alice := user.User{ID: 7, Name: "alice"}
		users.On("GetByName", ctx, "alice").Return(user.User{}, user.ErrNotFound).Once()
		users.On("Create", ctx, "alice").Return(user.User{}, user.ErrConflict)
		users.On("GetByName", ctx, "alice").Return(alice, nil).Once()
		books.On("ListForUser", ctx, int64(7)).Return([]book.Book{}, nil)

		sum, err := loader.Apply(ctx, users, books)

		require.NoError(t, err)
		assert.Equal(t, seed.Summary{UsersReused: 1}, sum)
	})

	t.Run("stops at the first failing book", func(t *testing.T) {
		users := usermocks.NewUseCase(t)
		books := bookmocks.NewUseCase(t)
		loader := loadSample(t)

		users.On("GetByName", ctx, "alice").Return(user.User{}, user.ErrNotFound)
		users.On("Create", ctx, "alice").Return(user.User{ID: 1, Name: "alice"}, nil)
		books.On("Create", ctx, int64(1), "Dune", "Frank Herbert", "Sci-Fi", "").
			Return(book.Book{}, errors.New("disk full"))

		sum, err := loader.Apply(ctx, users, books)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `creating "Dune" for alice`)
		assert.Equal(t, seed.Summary{UsersCreated: 1}, sum)
		books.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure on lookup is returned", func(t *testing.T) {
		users := usermocks.NewUseCase(t)
		books := bookmocks.NewUseCase(t)
		loader := loadSample(t)

		users.On("GetByName", ctx, "alice").Return(user.User{}, errors.New("connection refused"))

		_, err := loader.Apply(ctx, users, books)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "looking up alice")
	})
}
