package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/internal/user"
	_ "github.com/lib/pq" // PostgreSQL driver
)

/*
PostgreSQL implementation of book.Repository and user.Repository.

Same contract as the SQLite backend, with the usual differences:
- placeholders are $1, $2 instead of ?
- ids come from BIGSERIAL and are read back with RETURNING
- is_read is a real BOOLEAN
*/

const (
	bookColumns = "id, title, author, genre, cover_url, user_id, rating, is_read"

	insertUserQuery   = "INSERT INTO users (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id"
	selectUserQuery   = "SELECT id, name FROM users WHERE id = $1"
	selectByNameQuery = "SELECT id, name FROM users WHERE name = $1"
	selectUsersQuery  = "SELECT id, name FROM users ORDER BY id"

	insertBookQuery = `INSERT INTO books (title, author, genre, cover_url, user_id, rating, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	selectBookQuery       = "SELECT " + bookColumns + " FROM books WHERE id = $1"
	selectAllQuery        = "SELECT " + bookColumns + " FROM books ORDER BY id"
	selectByUserQuery     = "SELECT " + bookColumns + " FROM books WHERE user_id = $1 ORDER BY id"
	selectReadByUserQuery = "SELECT " + bookColumns + " FROM books WHERE user_id = $1 AND is_read ORDER BY id"
	markReadQuery         = "UPDATE books SET is_read = TRUE, rating = $1 WHERE id = $2"

	createTablesQuery = `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS books (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			genre TEXT NOT NULL,
			cover_url TEXT,
			user_id BIGINT NOT NULL REFERENCES users(id),
			rating SMALLINT NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
			is_read BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE INDEX IF NOT EXISTS idx_books_genre ON books (genre);
		CREATE INDEX IF NOT EXISTS idx_books_user_id ON books (user_id);
	`
	dropTablesQuery = "DROP TABLE IF EXISTS books, users CASCADE"
)

type Repository struct {
	DB *sql.DB
}

// NewRepository cria uma nova instância do repositório PostgreSQL com pool padrão (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig opens the pool with custom limits.
// maxOpenConns: máximo de conexões simultâneas (0 = ilimitado)
// maxIdleConns: máximo de conexões inativas mantidas no pool
// maxLifeMinutes: duração máxima em minutos que uma conexão pode ser reutilizada
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	// Testar conexão
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

func (r *Repository) InsertUser(ctx context.Context, u user.User) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, insertUserQuery, u.Name).Scan(&id)
	// DO NOTHING returns no row when the name is taken
	if errors.Is(err, sql.ErrNoRows) {
		return 0, user.ErrConflict
	}
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return id, nil
}

func (r *Repository) SelectUser(ctx context.Context, id int64) (user.User, error) {
	return r.selectUser(ctx, selectUserQuery, id)
}

func (r *Repository) SelectUserByName(ctx context.Context, name string) (user.User, error) {
	return r.selectUser(ctx, selectByNameQuery, name)
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
	rows, err := r.DB.QueryContext(ctx, selectUsersQuery)
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

// Select busca um livro por ID
func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	b, err := scanBook(r.DB.QueryRowContext(ctx, selectBookQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// SelectAll returns the whole catalog in insertion order, empty when there are no books
func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	return r.selectBooks(ctx, selectAllQuery)
}

func (r *Repository) SelectByUser(ctx context.Context, userID int64) ([]book.Book, error) {
	return r.selectBooks(ctx, selectByUserQuery, userID)
}

func (r *Repository) SelectReadByUser(ctx context.Context, userID int64) ([]book.Book, error) {
	return r.selectBooks(ctx, selectReadByUserQuery, userID)
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

// Insert insere um novo livro e retorna o ID gerado
func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, insertBookQuery,
		b.Title,
		b.Author,
		b.Genre,
		nullString(b.CoverURL),
		b.UserID,
		int(b.Rating),
		b.IsRead,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}

	return id, nil
}

func (r *Repository) MarkRead(ctx context.Context, id int64, rating book.Rating) error {
	result, err := r.DB.ExecContext(ctx, markReadQuery, int(rating), id)
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

// Close fecha a conexão com o banco de dados
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTables creates users and books if they do not exist
func (r *Repository) CreateTables(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, createTablesQuery)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}

// DropTables remove as tabelas (útil para testes)
func (r *Repository) DropTables(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, dropTablesQuery)
	if err != nil {
		return fmt.Errorf("dropping tables: %w", err)
	}

	return nil
}

func scanBook(scanner interface{ Scan(dest ...any) error }) (book.Book, error) {
	var (
		b        book.Book
		coverURL sql.NullString
		rating   int
	)
	if err := scanner.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &coverURL, &b.UserID, &rating, &b.IsRead); err != nil {
		return book.Book{}, err
	}
	b.CoverURL = coverURL.String
	b.Rating = book.Rating(rating)
	return b, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
