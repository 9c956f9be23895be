package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"

	_ "modernc.org/sqlite"
)

/* SQLite implementation of book.Repository and user.Repository.
 * Pure Go driver, so the binaries build without cgo.
 */

//go:embed schema.sql
var schemaSQL string

const bookColumns = "id, title, author, genre, cover_url, user_id, rating, is_read"

type Repository struct {
	DB *sql.DB
}

// NewRepository opens (or creates) the database file at path and applies the schema
func NewRepository(ctx context.Context, path string) (*Repository, error) {
	// pragmas go in the DSN so every pooled connection gets them
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	r := &Repository{DB: db}
	if err := r.CreateTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) SetDB(db *sql.DB) {
	r.DB = db
}

// CreateTables applies the embedded schema. It is idempotent.
func (r *Repository) CreateTables(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

func (r *Repository) InsertUser(ctx context.Context, u user.User) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (name) VALUES (?) ON CONFLICT (name) DO NOTHING RETURNING id`,
		u.Name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, user.ErrConflict
	}
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return id, nil
}

func (r *Repository) SelectUser(ctx context.Context, id int64) (user.User, error) {
	return r.selectUser(ctx, "SELECT id, name FROM users WHERE id = ?", id)
}

func (r *Repository) SelectUserByName(ctx context.Context, name string) (user.User, error) {
	return r.selectUser(ctx, "SELECT id, name FROM users WHERE name = ?", name)
}

func (r *Repository) selectUser(ctx context.Context, query string, arg any) (user.User, error) {
	var u user.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("selecting user: %w", err)
	}
	return u, nil
}

func (r *Repository) SelectUsers(ctx context.Context) ([]user.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO books (title, author, genre, cover_url, user_id, rating, is_read)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.Title,
		b.Author,
		b.Genre,
		nullString(b.CoverURL),
		b.UserID,
		int(b.Rating),
		b.IsRead,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert ID: %w", err)
	}
	return id, nil
}

func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+bookColumns+" FROM books WHERE id = ?", id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	return r.selectBooks(ctx, "SELECT "+bookColumns+" FROM books ORDER BY id")
}

func (r *Repository) SelectByUser(ctx context.Context, userID int64) ([]book.Book, error) {
	return r.selectBooks(ctx, "SELECT "+bookColumns+" FROM books WHERE user_id = ? ORDER BY id", userID)
}

func (r *Repository) SelectReadByUser(ctx context.Context, userID int64) ([]book.Book, error) {
	return r.selectBooks(ctx, "SELECT "+bookColumns+" FROM books WHERE user_id = ? AND is_read = 1 ORDER BY id", userID)
}

func (r *Repository) selectBooks(ctx context.Context, query string, args ...any) ([]book.Book, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return books, nil
}

func (r *Repository) MarkRead(ctx context.Context, id int64, rating book.Rating) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE books SET is_read = 1, rating = ? WHERE id = ?", int(rating), id)
	if err != nil {
		return fmt.Errorf("marking book as read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// scanBook reads one row in bookColumns order
func scanBook(scanner interface{ Scan(dest ...any) error }) (book.Book, error) {
	var (
		b        book.Book
		coverURL sql.NullString
		rating   int
	)
	err := scanner.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &coverURL, &b.UserID, &rating, &b.IsRead)
	if err != nil {
		return book.Book{}, err
	}
	b.CoverURL = coverURL.String
	b.Rating = book.Rating(rating)
	return b, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
