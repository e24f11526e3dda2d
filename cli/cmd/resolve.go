package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/vspec/lang"
	"github.com/ardnew/vspec/log"
)

// Resolve parses a source, resolves its references, and prints the
// resulting configuration in the chosen format.
type Resolve struct {
	Strict    bool   `default:"false"                                   help:"Fail when any reference remains unresolved."  negatable:""`
	MaxPasses int    `default:"16"                                      help:"Maximum number of resolution passes."`
	Format    string `default:"native" enum:"native,json,yaml,dump"     help:"Output format."                               short:"o"`
	Indent    int    `default:"2"                                       help:"Indent width for formatted output"            short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the resolve command.
func (r *Resolve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	reader, done, err := openSource(ctx, r.Source)
	if err != nil {
		return err
	}
	defer done()

	tree, err := lang.ParseReader(ctx, bufio.NewReader(reader))
	if err != nil {
		return ErrParse.Wrap(err).
			With(slog.String("source", r.Source))
	}

	err = tree.Resolve(ctx,
		lang.WithStrict(r.Strict),
		lang.WithMaxPasses(r.MaxPasses),
		lang.WithResolveLogger(log.Default()),
	)
	if err != nil {
		return ErrResolve.Wrap(err).
			With(slog.String("source", r.Source))
	}

	if remaining := tree.Unresolved(); len(remaining) > 0 {
		log.WarnContext(ctx, "unresolved references remain",
			slog.Int("count", len(remaining)),
		)
	}

	switch r.Format {
	case "native":
		err = tree.Format(os.Stdout, r.Indent)
	case "json":
		err = tree.FormatJSON(os.Stdout, r.Indent)
	case "yaml":
		err = tree.FormatYAML(ctx, os.Stdout, r.Indent)
	case "dump":
		err = tree.Dump(os.Stdout)
	default:
		return ErrBadFormat.With(slog.String("format", r.Format))
	}

	if err != nil {
		return ErrRender.Wrap(err).
			With(slog.String("format", r.Format))
	}

	return nil
}
