package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcelsud/bookshelf/internal/user"
)

type UseCase interface {
	Create(ctx context.Context, userID int64, title, author, genre, coverURL string) (Book, error)
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	ListForUser(ctx context.Context, userID int64) ([]Book, error)
	ListReadForUser(ctx context.Context, userID int64) ([]Book, error)
	MarkRead(ctx context.Context, id int64, rating Rating) (Book, error)
}

/* Service is an API, so pointer semantics.
 * Users is only read, to make sure a shelf owner exists.
 */
type Service struct {
	Repo  Repository
	Users user.Reader
}

func NewService(repo Repository, users user.Reader) *Service {
	return &Service{
		Repo:  repo,
		Users: users,
	}
}

// Create puts a new, unread book on the user's shelf
func (s *Service) Create(ctx context.Context, userID int64, title, author, genre, coverURL string) (Book, error) {
	b := Book{
		Title:    strings.TrimSpace(title),
		Author:   strings.TrimSpace(author),
		Genre:    strings.TrimSpace(genre),
		CoverURL: strings.TrimSpace(coverURL),
		UserID:   userID,
	}
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	if _, err := s.Users.SelectUser(ctx, userID); err != nil {
		return Book{}, fmt.Errorf("checking owner: %w", err)
	}
	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Book, error) {
	if _, err := s.Users.SelectUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("selecting user: %w", err)
	}
	books, err := s.Repo.SelectByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("selecting books for user: %w", err)
	}
	return books, nil
}

func (s *Service) ListReadForUser(ctx context.Context, userID int64) ([]Book, error) {
	if _, err := s.Users.SelectUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("selecting user: %w", err)
	}
	books, err := s.Repo.SelectReadByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("selecting read books for user: %w", err)
	}
	return books, nil
}

// MarkRead records that the book was read and returns it updated
func (s *Service) MarkRead(ctx context.Context, id int64, rating Rating) (Book, error) {
	if err := rating.Validate(); err != nil {
		return Book{}, err
	}
	if err := s.Repo.MarkRead(ctx, id, rating); err != nil {
		return Book{}, fmt.Errorf("marking book as read: %w", err)
	}
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}
