package main

import (
	"context"
	"os"

	"github.com/marcelsud/bookshelf/internal/logging"
)

/* cli - operates the bookshelf straight on the configured store.
 * Results go to stdout as JSON, logs to stderr.
 */

func main() {
	logger, _ := logging.NewConsole(os.Stderr, "info")
	a := &app{logger: logger, out: os.Stdout, errOut: os.Stderr}

	if err := a.command().Run(context.Background(), os.Args); err != nil {
		a.logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
