package cmd

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/vspec/lang"
)

// Fmt parses input and reprints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native vspec syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Dump   Dump   `cmd:""                    help:"Format as a block/field verification dump."`
}

// Native formats input as native vspec syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	reader, done, err := openSource(ctx, f.Source)
	if err != nil {
		return err
	}
	defer done()

	tree, err := lang.ParseReader(ctx, bufio.NewReader(reader))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "native"))
	}

	return tree.Format(os.Stdout, f.Indent)
}

// JSON reads input, parses it, and outputs as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	reader, done, err := openSource(ctx, j.Source)
	if err != nil {
		return err
	}
	defer done()

	tree, err := lang.ParseReader(ctx, bufio.NewReader(reader))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "json"))
	}

	return tree.FormatJSON(os.Stdout, j.Indent)
}

// YAML reads input, parses it, and outputs as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	reader, done, err := openSource(ctx, y.Source)
	if err != nil {
		return err
	}
	defer done()

	tree, err := lang.ParseReader(ctx, bufio.NewReader(reader))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "yaml"))
	}

	return tree.FormatYAML(ctx, os.Stdout, y.Indent)
}

// Dump formats input as an indented block/field verification dump.
type Dump struct {
	Color bool `default:"true" help:"Colorize output when writing to a terminal." negatable:""`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Styles for colorized dump output.
var (
	blockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	reader, done, err := openSource(ctx, d.Source)
	if err != nil {
		return err
	}
	defer done()

	tree, err := lang.ParseReader(ctx, bufio.NewReader(reader))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "dump"))
	}

	if !d.Color || !isatty.IsTerminal(os.Stdout.Fd()) {
		return tree.Dump(os.Stdout)
	}

	var buf bytes.Buffer
	if err := tree.Dump(&buf); err != nil {
		return err
	}

	for line := range strings.Lines(buf.String()) {
		os.Stdout.WriteString(colorizeDumpLine(line))
	}

	return nil
}

// colorizeDumpLine styles the keyword prefix of one dump line.
func colorizeDumpLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	switch {
	case strings.HasPrefix(trimmed, "Block:"):
		return indent + blockStyle.Render("Block:") +
			strings.TrimPrefix(trimmed, "Block:")
	case strings.HasPrefix(trimmed, "Field:"):
		return indent + fieldStyle.Render("Field:") +
			strings.TrimPrefix(trimmed, "Field:")
	default:
		return line
	}
}
