package user_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/marcelsud/bookshelf/internal/user/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("InsertUser", ctx, user.User{Name: "alice"}).Return(int64(7), nil)
		s := user.NewService(repo)
		saved, err := s.Create(ctx, "  alice ")
		require.NoError(t, err)
		assert.Equal(t, int64(7), saved.ID)
		assert.Equal(t, "alice", saved.Name)
	})
	t.Run("empty name", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		s := user.NewService(repo)
		_, err := s.Create(ctx, "   ")
		require.Error(t, err)
		assert.ErrorIs(t, err, user.ErrValidation)
	})
	t.Run("duplicate name", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("InsertUser", ctx, user.User{Name: "alice"}).Return(int64(0), user.ErrConflict)
		s := user.NewService(repo)
		saved, err := s.Create(ctx, "alice")
		assert.ErrorIs(t, err, user.ErrConflict)
		assert.Empty(t, saved)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	t.Run("found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectUser", ctx, int64(1)).Return(user.User{ID: 1, Name: "alice"}, nil)
		s := user.NewService(repo)
		u, err := s.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Name)
	})
	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectUser", ctx, int64(99)).Return(user.User{}, user.ErrNotFound)
		s := user.NewService(repo)
		_, err := s.Get(ctx, 99)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestGetByName(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewRepository(t)
	repo.On("SelectUserByName", ctx, "bob").Return(user.User{ID: 2, Name: "bob"}, nil)
	s := user.NewService(repo)
	u, err := s.GetByName(ctx, " bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectUsers", ctx).Return([]user.User{{ID: 1, Name: "alice"}, {ID: 2, Name: "bob"}}, nil)
		s := user.NewService(repo)
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
	t.Run("fail", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectUsers", ctx).Return(nil, fmt.Errorf("some error"))
		s := user.NewService(repo)
		all, err := s.List(ctx)
		assert.NotNil(t, err)
		assert.Nil(t, all)
	})
}
