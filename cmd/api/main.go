package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/book/store"
	"github.com/marcelsud/bookshelf/config"
	"github.com/marcelsud/bookshelf/internal/http/chi"
	"github.com/marcelsud/bookshelf/internal/logging"
	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/marcelsud/bookshelf/metrics"
	"github.com/marcelsud/bookshelf/recommend"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/* “a porta de entrada e saída da minha aplicação”
 * É aqui que é feita toda a “amarração” dos demais pacotes: config, logger,
 * storage, services, recommender, metrics e o router.
 * As importações vão apenas para baixo: o aplicativo importa as camadas de
 * negócio, que importam a camada de armazenamento.
 */

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New("bookshelf", cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close(context.Background())
	logger.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	users := user.NewService(repo)
	books := book.NewService(repo, repo)
	engine := recommend.NewEngine(repo, repo, cfg.RecommendSettings())

	opts := chi.Options{
		AllowedOrigins:     cfg.AllowedOrigins(),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Timeout:            TIMEOUT,
	}
	if cfg.MetricsEnabled {
		exporter, err := metrics.NewOTelExporter(metrics.NewStoreCollector(repo, repo))
		if err != nil {
			return fmt.Errorf("starting metrics: %w", err)
		}
		defer exporter.Shutdown(context.Background())
		opts.Metrics = exporter.Handler()
	}

	srv := &http.Server{
		ReadTimeout:  TIMEOUT,
		WriteTimeout: TIMEOUT,
		Addr:         ":" + cfg.Port,
		Handler:      chi.Handlers(ctx, logger, users, books, engine, opts),
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown, logger)
	logger.Info().Str("port", cfg.Port).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-errShutdown
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error, logger zerolog.Logger) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		logger.Info().Msg("shutting down server")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("forcing closing the server: %w", err)
	}
}
