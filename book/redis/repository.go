package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of book.Repository and user.Repository
 * Uses INCR counters for ids, hashes for records and sorted sets (scored by id)
 * to keep listings in insertion order.
 */

const (
	userPrefix   = "user"          // Hash naming: user:{id}
	bookPrefix   = "book"          // Hash naming: book:{id}
	usersIndex   = "users"         // Sorted set of every user id
	booksIndex   = "books"         // Sorted set of every book id
	usersByName  = "users:by_name" // Hash name -> id, enforces unique names
	userSequence = "users:next_id"
	bookSequence = "books:next_id"
)

// markReadScript updates a book only if its hash exists
var markReadScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], 'is_read', '1', 'rating', ARGV[1])
return 1
`)

/* insertUserScript reserves the name, allocates the id and writes the user
 * hash plus the index entry in one step. Returns 0 when the name is taken.
 */
var insertUserScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
	return 0
end
local id = redis.call('INCR', KEYS[2])
redis.call('HSET', KEYS[1], ARGV[1], id)
redis.call('HSET', ARGV[2] .. ':' .. id, 'id', id, 'name', ARGV[1])
redis.call('ZADD', KEYS[3], id, id)
return id
`)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

func (r *Repository) InsertUser(ctx context.Context, u user.User) (int64, error) {
	id, err := insertUserScript.Run(ctx, r.client,
		[]string{usersByName, userSequence, usersIndex},
		u.Name, userPrefix,
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	if id == 0 {
		return 0, user.ErrConflict
	}
	return id, nil
}

func (r *Repository) SelectUser(ctx context.Context, id int64) (user.User, error) {
	data, err := r.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return user.User{}, fmt.Errorf("selecting user: %w", err)
	}
	if len(data) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return parseUser(data), nil
}

func (r *Repository) SelectUserByName(ctx context.Context, name string) (user.User, error) {
	idStr, err := r.client.HGet(ctx, usersByName, name).Result()
	if err == redis.Nil {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("looking up user name: %w", err)
	}
	return r.SelectUser(ctx, parseInt64(idStr))
}

func (r *Repository) SelectUsers(ctx context.Context) ([]user.User, error) {
	records, err := r.loadIndex(ctx, usersIndex, userPrefix)
	if err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}

	users := make([]user.User, 0, len(records))
	for _, data := range records {
		users = append(users, parseUser(data))
	}
	return users, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	exists, err := r.client.Exists(ctx, userKey(b.UserID)).Result()
	if err != nil {
		return 0, fmt.Errorf("checking owner: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("inserting book: owner %d does not exist", b.UserID)
	}

	id, err := r.client.Incr(ctx, bookSequence).Result()
	if err != nil {
		return 0, fmt.Errorf("allocating book id: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, bookKey(id), map[string]interface{}{
			"id":        id,
			"title":     b.Title,
			"author":    b.Author,
			"genre":     b.Genre,
			"cover_url": b.CoverURL,
			"user_id":   b.UserID,
			"rating":    int(b.Rating),
			"is_read":   formatBool(b.IsRead),
		})
		pipe.ZAdd(ctx, booksIndex, redis.Z{Score: float64(id), Member: id})
		pipe.ZAdd(ctx, userBooksKey(b.UserID), redis.Z{Score: float64(id), Member: id})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}

	return id, nil
}

func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	data, err := r.client.HGetAll(ctx, bookKey(id)).Result()
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	if len(data) == 0 {
		return book.Book{}, book.ErrNotFound
	}
	return parseBook(data), nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	return r.selectBooks(ctx, booksIndex)
}

func (r *Repository) SelectByUser(ctx context.Context, userID int64) ([]book.Book, error) {
	return r.selectBooks(ctx, userBooksKey(userID))
}

func (r *Repository) SelectReadByUser(ctx context.Context, userID int64) ([]book.Book, error) {
	owned, err := r.selectBooks(ctx, userBooksKey(userID))
	if err != nil {
		return nil, err
	}

	read := []book.Book{}
	for _, b := range owned {
		if b.IsRead {
			read = append(read, b)
		}
	}
	return read, nil
}

func (r *Repository) selectBooks(ctx context.Context, index string) ([]book.Book, error) {
	records, err := r.loadIndex(ctx, index, bookPrefix)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}

	books := make([]book.Book, 0, len(records))
	for _, data := range records {
		books = append(books, parseBook(data))
	}
	return books, nil
}

func (r *Repository) MarkRead(ctx context.Context, id int64, rating book.Rating) error {
	updated, err := markReadScript.Run(ctx, r.client, []string{bookKey(id)}, int(rating)).Int()
	if err != nil {
		return fmt.Errorf("marking book as read: %w", err)
	}
	if updated == 0 {
		return book.ErrNotFound
	}
	return nil
}

// loadIndex reads the ids of a sorted set in score order and fetches their hashes in one pipeline
func (r *Repository) loadIndex(ctx context.Context, index, prefix string) ([]map[string]string, error) {
	ids, err := r.client.ZRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", index, err)
	}
	if len(ids) == 0 {
		return []map[string]string{}, nil
	}

	// Use pipeline for efficient batch operations
	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, fmt.Sprintf("%s:%s", prefix, id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("executing pipeline: %w", err)
	}

	records := make([]map[string]string, 0, len(cmds))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil || len(data) == 0 {
			continue
		}
		records = append(records, data)
	}
	return records, nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

// Helper functions

func userKey(id int64) string {
	return fmt.Sprintf("%s:%d", userPrefix, id)
}

func bookKey(id int64) string {
	return fmt.Sprintf("%s:%d", bookPrefix, id)
}

func userBooksKey(userID int64) string {
	return fmt.Sprintf("%s:%d:books", userPrefix, userID)
}

func parseUser(data map[string]string) user.User {
	return user.User{
		ID:   parseInt64(data["id"]),
		Name: data["name"],
	}
}

func parseBook(data map[string]string) book.Book {
	return book.Book{
		ID:       parseInt64(data["id"]),
		Title:    data["title"],
		Author:   data["author"],
		Genre:    data["genre"],
		CoverURL: data["cover_url"],
		UserID:   parseInt64(data["user_id"]),
		Rating:   book.Rating(parseInt64(data["rating"])),
		IsRead:   data["is_read"] == "1",
	}
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
