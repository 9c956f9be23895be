package main

import (
	"context"
	"fmt"

	"github.com/marcelsud/bookshelf/book"
	"github.com/marcelsud/bookshelf/seed"
	"github.com/urfave/cli/v3"
)

func usersCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Create and list users",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Unique user name", Required: true},
				},
				Action: a.createUser,
			},
			{
				Name:   "list",
				Usage:  "List every user",
				Action: a.listUsers,
			},
		},
	}
}

func booksCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "books",
		Usage: "Add, list and mark books as read",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Put a new book on a user's shelf",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
					&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Required: true},
					&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Required: true},
					&cli.StringFlag{Name: "cover-url", Usage: "Optional cover image URL"},
				},
				Action: a.addBook,
			},
			{
				Name:  "list",
				Usage: "List the catalog, or one user's shelf",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "user", Aliases: []string{"u"}, Usage: "Only books of this user ID"},
					&cli.BoolFlag{Name: "read", Usage: "Only read books (requires --user)"},
				},
				Action: a.listBooks,
			},
			{
				Name:  "mark-read",
				Usage: "Mark a book as read with a rating from 0 to 5",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "Book ID", Required: true},
					&cli.Int64Flag{Name: "rating", Aliases: []string{"r"}, Usage: "0 keeps the book unrated"},
				},
				Action: a.markRead,
			},
		},
	}
}

func statsCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show a user's reading statistics",
		Flags:  []cli.Flag{userFlag()},
		Action: a.stats,
	}
}

func recommendCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:   "recommend",
		Usage:  "Suggest books for a user",
		Flags:  []cli.Flag{userFlag()},
		Action: a.recommend,
	}
}

func seedCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "Load users and books from a YAML catalog",
		ArgsUsage: "[seed.yaml]",
		Action:    a.seed,
	}
}

func userFlag() cli.Flag {
	return &cli.Int64Flag{Name: "user", Aliases: []string{"u"}, Usage: "User ID", Required: true}
}

func (a *app) createUser(ctx context.Context, cmd *cli.Command) error {
	u, err := a.users.Create(ctx, cmd.String("name"))
	if err != nil {
		return err
	}
	a.logger.Info().Int64("user_id", u.ID).Msg("user created")
	return a.print(toUserOutput(u))
}

func (a *app) listUsers(ctx context.Context, cmd *cli.Command) error {
	all, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	return a.print(toUserOutputs(all))
}

func (a *app) addBook(ctx context.Context, cmd *cli.Command) error {
	b, err := a.books.Create(ctx,
		cmd.Int64("user"),
		cmd.String("title"),
		cmd.String("author"),
		cmd.String("genre"),
		cmd.String("cover-url"),
	)
	if err != nil {
		return err
	}
	a.logger.Info().Int64("book_id", b.ID).Int64("user_id", b.UserID).Msg("book added")
	return a.print(toBookOutput(b))
}

func (a *app) listBooks(ctx context.Context, cmd *cli.Command) error {
	var (
		all []book.Book
		err error
	)
	userID := cmd.Int64("user")
	switch {
	case userID == 0 && cmd.Bool("read"):
		return fmt.Errorf("--read requires --user")
	case userID == 0:
		all, err = a.books.List(ctx)
	case cmd.Bool("read"):
		all, err = a.books.ListReadForUser(ctx, userID)
	default:
		all, err = a.books.ListForUser(ctx, userID)
	}
	if err != nil {
		return err
	}
	return a.print(toBookOutputs(all))
}

func (a *app) markRead(ctx context.Context, cmd *cli.Command) error {
	b, err := a.books.MarkRead(ctx, cmd.Int64("id"), book.Rating(cmd.Int64("rating")))
	if err != nil {
		return err
	}
	a.logger.Info().Int64("book_id", b.ID).Stringer("rating", b.Rating).Msg("book marked as read")
	return a.print(toBookOutput(b))
}

func (a *app) stats(ctx context.Context, cmd *cli.Command) error {
	s, err := a.recommender.Stats(ctx, cmd.Int64("user"))
	if err != nil {
		return err
	}
	return a.print(toStatsOutput(s))
}

func (a *app) recommend(ctx context.Context, cmd *cli.Command) error {
	r, err := a.recommender.Recommend(ctx, cmd.Int64("user"))
	if err != nil {
		return err
	}
	return a.print(toRecommendationOutput(r))
}

func (a *app) seed(ctx context.Context, cmd *cli.Command) error {
	path := "seed.yaml"
	if cmd.Args().Present() {
		path = cmd.Args().First()
	}
	loader := seed.NewLoader()
	if err := loader.Load(path); err != nil {
		return err
	}
	sum, err := loader.Apply(ctx, a.users, a.books)
	if err != nil {
		return err
	}
	a.logger.Info().
		Int("users_created", sum.UsersCreated).
		Int("books_created", sum.BooksCreated).
		Msg("seed applied")
	return a.print(sum)
}
