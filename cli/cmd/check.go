package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/vspec/lang"
	"github.com/ardnew/vspec/log"
)

// Check parses sources and reports the first syntax error in each.
type Check struct {
	Sources []string `arg:"" help:"Source input file(s) or '-' for stdin" name:"sources" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	if len(c.Sources) == 0 {
		reader, done, err := openSource(ctx, "")
		if err != nil {
			return err
		}
		defer done()

		_, err = lang.ParseReader(ctx, bufio.NewReader(reader))
		if err != nil {
			return ErrParse.Wrap(err)
		}

		return nil
	}

	var failed bool

	for _, source := range c.Sources {
		reader, done, err := openSource(ctx, source)
		if err != nil {
			return err
		}

		_, err = lang.ParseReader(ctx, bufio.NewReader(reader))

		done()

		if err != nil {
			failed = true

			log.ErrorContext(ctx, "check failed",
				slog.String("source", source),
				slog.Any("error", err),
			)

			fmt.Fprintf(os.Stderr, "%s: %v\n", source, err)
		}
	}

	if failed {
		return ErrParse
	}

	return nil
}
