package cmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/vspec/lang"
	"github.com/ardnew/vspec/log"
)

// View browses a parsed source interactively, toggling between the raw
// and resolved forms of the configuration.
type View struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the view command.
func (v *View) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	reader, done, err := openSource(ctx, v.Source)
	if err != nil {
		return err
	}
	defer done()

	raw, err := lang.ParseReader(ctx, bufio.NewReader(reader))
	if err != nil {
		return ErrParse.Wrap(err).
			With(slog.String("source", v.Source))
	}

	rawText, err := renderTree(raw, v.Indent)
	if err != nil {
		return ErrRender.Wrap(err)
	}

	// Resolution mutates the tree, so render the raw form first.
	if err := raw.Resolve(ctx); err != nil {
		return ErrResolve.Wrap(err)
	}

	resolvedText, err := renderTree(raw, v.Indent)
	if err != nil {
		return ErrRender.Wrap(err)
	}

	log.TraceContext(ctx, "view start",
		slog.String("source", v.Source),
	)

	m := newViewModel(v.Source, rawText, resolvedText)

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	if err != nil {
		return ErrInteractive.Wrap(err)
	}

	return nil
}

// renderTree formats a tree as native syntax text.
func renderTree(tree *lang.Tree, indent int) (string, error) {
	var buf bytes.Buffer
	if err := tree.Format(&buf, indent); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const (
	modeRaw      = "raw"
	modeResolved = "resolved"
)

const defaultWidth = 80

// viewModel is the Bubble Tea model for the view command.
type viewModel struct {
	source   string
	raw      string
	resolved string
	mode     string
	port     viewport.Model
	ready    bool
}

func newViewModel(source, raw, resolved string) viewModel {
	return viewModel{
		source:   source,
		raw:      raw,
		resolved: resolved,
		mode:     modeResolved,
		port:     viewport.New(defaultWidth, 1),
	}
}

func (m viewModel) content() string {
	if m.mode == modeRaw {
		return m.raw
	}

	return m.resolved
}

// Init implements [tea.Model].
func (m viewModel) Init() tea.Cmd { return nil }

// Update implements [tea.Model].
func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "r", "tab":
			if m.mode == modeRaw {
				m.mode = modeResolved
			} else {
				m.mode = modeRaw
			}

			m.port.SetContent(m.content())

			return m, nil

		case "g", "home":
			m.port.GotoTop()

			return m, nil

		case "G", "end":
			m.port.GotoBottom()

			return m, nil
		}

	case tea.WindowSizeMsg:
		// Reserve one line each for the header and footer.
		m.port.Width = msg.Width
		m.port.Height = max(msg.Height-2, 1)

		if !m.ready {
			m.port.SetContent(m.content())
			m.ready = true
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.port, cmd = m.port.Update(msg)

	return m, cmd
}

// View implements [tea.Model].
func (m viewModel) View() string {
	header := titleStyle.Render(m.source) + " " + modeStyle.Render(m.mode)

	footer := statusStyle.Render(fmt.Sprintf(
		"%3.f%%  r:toggle  q:quit",
		m.port.ScrollPercent()*100, //nolint:mnd
	))

	return strings.Join([]string{header, m.port.View(), footer}, "\n")
}
