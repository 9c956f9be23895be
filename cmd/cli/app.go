package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/book/store"
	"github.com/marcelsud/bookshelf/config"
	"github.com/marcelsud/bookshelf/internal/logging"
	"github.com/marcelsud/bookshelf/internal/user"
	"github.com/marcelsud/bookshelf/recommend"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

// app holds what every command needs once the store is open
type app struct {
	logger zerolog.Logger
	out    io.Writer
	errOut io.Writer

	repo        store.Repository
	users       user.UseCase
	books       book.UseCase
	recommender recommend.UseCase
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "bookshelf",
		Usage:     "Manage reading shelves and get book recommendations",
		Writer:    a.out,
		ErrWriter: a.errOut,
		Before:    a.open,
		After:     a.close,
		Commands: []*cli.Command{
			usersCommand(a),
			booksCommand(a),
			statsCommand(a),
			recommendCommand(a),
			seedCommand(a),
		},
	}
}

// open loads the configuration and connects to the store before any subcommand runs
func (a *app) open(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return ctx, err
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}
	logger, err := logging.NewConsole(a.errOut, cfg.LogLevel)
	if err != nil {
		return ctx, err
	}
	a.logger = logger

	repo, err := store.Open(ctx, cfg)
	if err != nil {
		return ctx, err
	}
	a.logger.Debug().Str("driver", cfg.StoreDriver).Msg("store ready")

	a.repo = repo
	a.users = user.NewService(repo)
	a.books = book.NewService(repo, repo)
	a.recommender = recommend.NewEngine(repo, repo, cfg.RecommendSettings())
	return ctx, nil
}

func (a *app) close(ctx context.Context, cmd *cli.Command) error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close(ctx)
	a.repo = nil
	return err
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
