//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/marcelsud/bookshelf/book"
)

/*
Benchmarks para PostgreSQL Repository

Execute com: go test -tags=integration -bench=. -benchmem ./book/postgres/

NOTA: Cada benchmark cria um novo container PostgreSQL. A medição começa após
      a inicialização (b.ResetTimer) para não incluir o overhead do container.
*/

func setupBenchmark(b *testing.B) (*Repository, func()) {
	ctx := context.Background()

	pgContainer, cleanup := SetupPostgresContainer(b, ctx)
	CreateTestSchema(b, ctx, pgContainer.DB)
	PopulateSampleData(b, ctx, pgContainer.DB)

	repo := CreateTestRepository(b, pgContainer.ConnStr)
	return repo, func() {
		_ = repo.Close(ctx)
		cleanup()
	}
}

func BenchmarkInsert_Postgres(b *testing.B) {
	ctx := context.Background()
	repo, cleanup := setupBenchmark(b)
	defer cleanup()

	testBook := book.Book{
		Title:  "Benchmark Book",
		Author: "Benchmark Author",
		Genre:  "Sci-Fi",
		UserID: 1,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.Insert(ctx, testBook); err != nil {
			b.Fatalf("Insert failed: %v", err)
		}
	}
}

func BenchmarkSelect_Postgres(b *testing.B) {
	ctx := context.Background()
	repo, cleanup := setupBenchmark(b)
	defer cleanup()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.Select(ctx, 1); err != nil {
			b.Fatalf("Select failed: %v", err)
		}
	}
}

// BenchmarkRecommendationReads measures the two reads the engine issues per request
func BenchmarkRecommendationReads(b *testing.B) {
	ctx := context.Background()
	repo, cleanup := setupBenchmark(b)
	defer cleanup()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.SelectReadByUser(ctx, 1); err != nil {
			b.Fatalf("SelectReadByUser failed: %v", err)
		}
		if _, err := repo.SelectAll(ctx); err != nil {
			b.Fatalf("SelectAll failed: %v", err)
		}
	}
}

func BenchmarkMarkRead_Postgres(b *testing.B) {
	ctx := context.Background()
	repo, cleanup := setupBenchmark(b)
	defer cleanup()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := repo.MarkRead(ctx, 2, book.Rating(i%5+1)); err != nil {
			b.Fatalf("MarkRead failed: %v", err)
		}
	}
}
