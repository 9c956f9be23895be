package user

import (
	"context"
	"fmt"
	"strings"
)

// UseCase defines the business operations for users
type UseCase interface {
	Create(ctx context.Context, name string) (User, error)
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByName(ctx context.Context, name string) (User, error)
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Create registers a new user. Surrounding whitespace is not part of the name.
func (s *Service) Create(ctx context.Context, name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	u := User{Name: name}
	id, err := s.Repo.InsertUser(ctx, u)
	if err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	u.ID = id
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	all, err := s.Repo.SelectUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	u, err := s.Repo.SelectUser(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("selecting user: %w", err)
	}
	return u, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (User, error) {
	u, err := s.Repo.SelectUserByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return User{}, fmt.Errorf("selecting user by name: %w", err)
	}
	return u, nil
}
