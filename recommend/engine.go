package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
)

const (
	reasonFavorite = "Based on your preference for %s books"
	reasonPopular  = "Based on popular genres in our catalog"
	reasonEmpty    = "No books available to recommend yet"
)

type Recommendation struct {
	Genre     string
	Reason    string
	Suggested []book.Book
}

type UserStats struct {
	User       user.User
	TotalBooks int
	// FavoriteGenre is empty when the user has not read anything
	FavoriteGenre string
	GenreCounts   map[string]int
	Books         []book.Book
}

type UseCase interface {
	Recommend(ctx context.Context, userID int64) (Recommendation, error)
	Stats(ctx context.Context, userID int64) (UserStats, error)
}

/* Engine only reads from the store. Every call works on a fresh snapshot,
 * so an Engine is safe for concurrent use.
 */
type Engine struct {
	Users    user.Reader
	Books    book.Reader
	Settings Settings
}

func NewEngine(users user.Reader, books book.Reader, settings Settings) *Engine {
	return &Engine{
		Users:    users,
		Books:    books,
		Settings: settings.withDefaults(),
	}
}

// Stats summarizes what the user has read
func (e *Engine) Stats(ctx context.Context, userID int64) (UserStats, error) {
	u, err := e.Users.SelectUser(ctx, userID)
	if err != nil {
		return UserStats{}, fmt.Errorf("selecting user: %w", err)
	}
	read, err := e.Books.SelectReadByUser(ctx, userID)
	if err != nil {
		return UserStats{}, fmt.Errorf("selecting read books: %w", err)
	}

	genres := ComputeGenreStats(read)
	return UserStats{
		User:          u,
		TotalBooks:    len(read),
		FavoriteGenre: genres.Favorite,
		GenreCounts:   genres.Counts,
		Books:         read,
	}, nil
}

/* Recommend suggests catalog books in the user's favorite genre. Users who
 * have read nothing get the most common genre among the books they do not
 * own. Books the user owns, by id or by title, are never suggested.
 */
func (e *Engine) Recommend(ctx context.Context, userID int64) (Recommendation, error) {
	if _, err := e.Users.SelectUser(ctx, userID); err != nil {
		return Recommendation{}, fmt.Errorf("selecting user: %w", err)
	}
	owned, err := e.Books.SelectByUser(ctx, userID)
	if err != nil {
		return Recommendation{}, fmt.Errorf("selecting user books: %w", err)
	}
	catalog, err := e.Books.SelectAll(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("selecting catalog: %w", err)
	}

	shelf := newShelf(owned)
	pool := make([]book.Book, 0, len(catalog))
	for _, b := range catalog {
		if !shelf.owns(b) {
			pool = append(pool, b)
		}
	}

	var rec Recommendation
	if favorite := ComputeGenreStats(readOnly(owned)); favorite.HasFavorite() {
		rec.Genre = favorite.Favorite
		rec.Reason = fmt.Sprintf(reasonFavorite, favorite.Favorite)
	} else if popular := ComputeGenreStats(pool); popular.HasFavorite() {
		rec.Genre = popular.Favorite
		rec.Reason = reasonPopular
	} else {
		rec.Genre = e.Settings.FallbackGenre
		rec.Reason = reasonEmpty
	}

	rec.Suggested = e.pick(pool, rec.Genre)
	return rec, nil
}

// pick takes pool books of genre in catalog order, up to the cap
func (e *Engine) pick(pool []book.Book, genre string) []book.Book {
	limit := e.Settings.MaxSuggestions
	picked := make([]book.Book, 0, limit)

	for _, b := range pool {
		if len(picked) == limit {
			return picked
		}
		if b.Genre == genre {
			picked = append(picked, b)
		}
	}
	if !e.Settings.Backfill {
		return picked
	}

	others := make([]book.Book, 0, len(pool))
	for _, b := range pool {
		if b.Genre != genre {
			others = append(others, b)
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].Rating > others[j].Rating
	})
	for _, b := range others {
		if len(picked) == limit {
			break
		}
		picked = append(picked, b)
	}
	return picked
}

// shelf is the set of books a user owns, by id and by normalized title
type shelf struct {
	ids    map[int64]struct{}
	titles map[string]struct{}
}

func newShelf(owned []book.Book) shelf {
	s := shelf{
		ids:    make(map[int64]struct{}, len(owned)),
		titles: make(map[string]struct{}, len(owned)),
	}
	for _, b := range owned {
		s.ids[b.ID] = struct{}{}
		s.titles[book.NormalizeTitle(b.Title)] = struct{}{}
	}
	return s
}

func (s shelf) owns(b book.Book) bool {
	if _, ok := s.ids[b.ID]; ok {
		return true
	}
	_, ok := s.titles[book.NormalizeTitle(b.Title)]
	return ok
}

func readOnly(books []book.Book) []book.Book {
	read := make([]book.Book, 0, len(books))
	for _, b := range books {
		if b.IsRead {
			read = append(read, b)
		}
	}
	return read
}
