//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
Test Helpers para PostgreSQL com Testcontainers

- Sobe um container Docker do PostgreSQL
- Cria banco de dados de teste
- Retorna connection string
- Cleanup automático após testes

Referências:
- https://golang.testcontainers.org/modules/postgres/
*/

const (
	defaultDatabase = "testdb"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// PostgresContainer encapsula o container e a conexão
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
	ConnStr   string
}

// SetupPostgresContainer cria e inicia um container PostgreSQL real
func SetupPostgresContainer(tb testing.TB, ctx context.Context) (*PostgresContainer, func()) {
	tb.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(defaultDatabase),
		postgres.WithUsername(defaultUser),
		postgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(tb, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(tb, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(tb, err)
	require.NoError(tb, db.PingContext(ctx))

	container := &PostgresContainer{
		Container: pgContainer,
		DB:        db,
		ConnStr:   connStr,
	}

	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return container, cleanup
}

// CreateTestSchema creates users and books through the repository itself
func CreateTestSchema(tb testing.TB, ctx context.Context, db *sql.DB) {
	tb.Helper()

	repo := &Repository{DB: db}
	require.NoError(tb, repo.CreateTables(ctx))
}

// CleanupDatabase remove todos os registros
func CleanupDatabase(tb testing.TB, ctx context.Context, db *sql.DB) {
	tb.Helper()

	_, err := db.ExecContext(ctx, "TRUNCATE TABLE books, users RESTART IDENTITY CASCADE")
	require.NoError(tb, err)
}

// PopulateSampleData inserts alice (id 1) and bob (id 2) and four books; alice has read two
func PopulateSampleData(tb testing.TB, ctx context.Context, db *sql.DB) {
	tb.Helper()

	for _, name := range []string{"alice", "bob"} {
		_, err := db.ExecContext(ctx, "INSERT INTO users (name) VALUES ($1)", name)
		require.NoError(tb, err)
	}

	testBooks := []struct {
		title  string
		author string
		genre  string
		userID int64
		rating int
		isRead bool
	}{
		{"Neuromancer", "William Gibson", "Sci-Fi", 1, 5, true},
		{"Dune", "Frank Herbert", "Sci-Fi", 1, 0, false},
		{"1984", "George Orwell", "Dystopia", 1, 3, true},
		{"Foundation", "Isaac Asimov", "Sci-Fi", 2, 0, false},
	}

	for _, b := range testBooks {
		query := `INSERT INTO books (title, author, genre, user_id, rating, is_read) VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := db.ExecContext(ctx, query, b.title, b.author, b.genre, b.userID, b.rating, b.isRead)
		require.NoError(tb, err)
	}
}

// AssertBookCount verifica quantos livros estão no banco
func AssertBookCount(tb testing.TB, ctx context.Context, db *sql.DB, expected int) {
	tb.Helper()

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count)
	require.NoError(tb, err)
	require.Equal(tb, expected, count)
}

// CreateTestRepository cria um repositório para testes
func CreateTestRepository(tb testing.TB, connStr string) *Repository {
	tb.Helper()

	repo, err := NewRepository(connStr)
	require.NoError(tb, err)

	return repo
}

// GetContainerLogs obtém os logs do container (útil para debug)
func GetContainerLogs(tb testing.TB, ctx context.Context, container testcontainers.Container) string {
	tb.Helper()

	logs, err := container.Logs(ctx)
	if err != nil {
		return fmt.Sprintf("error getting logs: %v", err)
	}
	defer logs.Close()

	buf := make([]byte, 1024)
	n, _ := logs.Read(buf)
	return string(buf[:n])
}
