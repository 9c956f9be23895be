//go:build integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
Testes de Integração com PostgreSQL + Testcontainers

Execute com: go test -tags=integration ./book/postgres/...

REQUISITOS:
- Docker rodando localmente
- Acesso à internet para baixar imagem postgres:16-alpine (primeira vez)

Um único container é compartilhado por todos os subtestes; cada subteste
começa com as tabelas truncadas.
*/

func TestPostgresRepository_Integration(t *testing.T) {
	ctx := context.Background()

	pgContainer, cleanup := SetupPostgresContainer(t, ctx)
	defer cleanup()

	CreateTestSchema(t, ctx, pgContainer.DB)

	repo := CreateTestRepository(t, pgContainer.ConnStr)
	defer repo.Close(ctx)

	t.Run("create tables is idempotent", func(t *testing.T) {
		require.NoError(t, repo.CreateTables(ctx))
	})

	t.Run("insert user and conflict on duplicate name", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)

		id, err := repo.InsertUser(ctx, user.User{Name: "alice"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		_, err = repo.InsertUser(ctx, user.User{Name: "alice"})
		assert.ErrorIs(t, err, user.ErrConflict)

		u, err := repo.SelectUserByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)

		_, err = repo.SelectUser(ctx, 42)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("insert and select book", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)
		uid, err := repo.InsertUser(ctx, user.User{Name: "alice"})
		require.NoError(t, err)

		b := book.Book{
			Title:    "Clean Code",
			Author:   "Robert C. Martin",
			Genre:    "Programming",
			CoverURL: "https://covers.example/cc.jpg",
			UserID:   uid,
		}
		id, err := repo.Insert(ctx, b)
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))
		AssertBookCount(t, ctx, pgContainer.DB, 1)

		saved, err := repo.Select(ctx, id)
		require.NoError(t, err)
		b.ID = id
		assert.Equal(t, b, saved)
	})

	t.Run("insert with unknown owner fails", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)

		_, err := repo.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", UserID: 99})
		assert.Error(t, err)
		AssertBookCount(t, ctx, pgContainer.DB, 0)
	})

	t.Run("select non-existent book returns ErrNotFound", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)

		_, err := repo.Select(ctx, 999)
		assert.Equal(t, book.ErrNotFound, err)
	})

	t.Run("select all from empty database is empty", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)

		books, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("select by user and read books", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)
		PopulateSampleData(t, ctx, pgContainer.DB)

		all, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		owned, err := repo.SelectByUser(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, owned, 3)

		read, err := repo.SelectReadByUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, read, 2)
		assert.Equal(t, "Neuromancer", read[0].Title)
		assert.Equal(t, "1984", read[1].Title)
	})

	t.Run("mark read", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)
		PopulateSampleData(t, ctx, pgContainer.DB)

		require.NoError(t, repo.MarkRead(ctx, 2, 4))
		b, err := repo.Select(ctx, 2)
		require.NoError(t, err)
		assert.True(t, b.IsRead)
		assert.Equal(t, book.Rating(4), b.Rating)

		assert.Equal(t, book.ErrNotFound, repo.MarkRead(ctx, 999, 1))
	})

	t.Run("rating out of range is rejected by the check constraint", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)
		PopulateSampleData(t, ctx, pgContainer.DB)

		err := repo.MarkRead(ctx, 2, 9)
		assert.Error(t, err)
	})

	t.Run("concurrent inserts", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)
		uid, err := repo.InsertUser(ctx, user.User{Name: "alice"})
		require.NoError(t, err)

		const numBooks = 10
		var wg sync.WaitGroup
		errs := make(chan error, numBooks)
		for i := 0; i < numBooks; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Insert(ctx, book.Book{
					Title:  fmt.Sprintf("Concurrent Book %d", i),
					Author: "Author",
					Genre:  "Sci-Fi",
					UserID: uid,
				})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
		AssertBookCount(t, ctx, pgContainer.DB, numBooks)
	})

	t.Run("concurrent user creation with the same name", func(t *testing.T) {
		CleanupDatabase(t, ctx, pgContainer.DB)

		const attempts = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			created   int
			conflicts int
		)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.InsertUser(ctx, user.User{Name: "carol"})
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					created++
				} else if assert.ErrorIs(t, err, user.ErrConflict) {
					conflicts++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, attempts-1, conflicts)
	})
}
