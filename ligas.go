package main

import (
	"context"
	"errors"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ligas/internal/league"
	"github.com/charmbracelet/ligas/internal/proto"
)

type state int

const (
	startState state = iota
	generateState
	doneState
	errorState
)

// generator runs a single league generation.
type generator interface {
	Generate(ctx context.Context, input string) proto.Result
}

// Ligas is the Bubble Tea model that loads the description, calls the
// generator and shows a spinner meanwhile.
type Ligas struct {
	Input   string
	Output  string
	Kind    proto.ErrorKind
	Missing []league.Field
	Config  *Config

	state  state
	error  *ligasError
	anim   tea.Model
	gen    generator
	stdin  string
	ctx    context.Context
	cancel context.CancelFunc
}

func newLigas(ctx context.Context, cfg *Config, gen generator, stdin string) *Ligas {
	ctx, cancel := context.WithCancel(ctx)
	return &Ligas{
		Config: cfg,
		state:  startState,
		anim:   newEllipsis(stderrStyles()),
		gen:    gen,
		stdin:  stdin,
		ctx:    ctx,
		cancel: cancel,
	}
}

// inputMsg wraps the resolved league description.
type inputMsg struct{ content string }

// resultMsg wraps the outcome of a generation.
type resultMsg struct{ result proto.Result }

// Init implements tea.Model.
func (m *Ligas) Init() tea.Cmd {
	return m.loadCmd()
}

// Update implements tea.Model.
func (m *Ligas) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inputMsg:
		if strings.TrimSpace(msg.content) == "" {
			return m.fail(ligasError{
				err:    newUserErrorf("Pass a description as argument or through stdin."),
				reason: "No league description provided.",
			})
		}
		m.Input = msg.content
		m.state = generateState
		cmds := []tea.Cmd{m.generateCmd(msg.content)}
		if !m.Config.Quiet {
			cmds = append(cmds, m.anim.Init())
		}
		return m, tea.Batch(cmds...)
	case resultMsg:
		m.Kind = msg.result.Kind
		if !msg.result.OK() {
			return m.fail(ligasError{msg.result.Err, league.Reason(msg.result.Kind)})
		}
		m.Output = msg.result.Text
		m.Missing = league.Missing(m.Output)
		m.state = doneState
		return m, m.quit
	case ligasError:
		return m.fail(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m.fail(ligasError{context.Canceled, "Generation canceled."})
		}
	}
	if m.state == generateState && !m.Config.Quiet {
		var cmd tea.Cmd
		m.anim, cmd = m.anim.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Ligas) View() string {
	if m.state == generateState && !m.Config.Quiet {
		return m.anim.View()
	}
	return ""
}

// Err returns the error the generation ended with, if any.
func (m *Ligas) Err() error {
	if m.error == nil {
		return nil
	}
	return *m.error
}

func (m *Ligas) fail(err ligasError) (tea.Model, tea.Cmd) {
	m.error = &err
	m.state = errorState
	return m, m.quit
}

func (m *Ligas) quit() tea.Msg {
	m.cancel()
	return tea.Quit()
}

// loadCmd resolves the description from the arguments and stdin. The
// arguments may point to a file or URL; stdin content is appended to them.
func (m *Ligas) loadCmd() tea.Cmd {
	prefix, stdin := m.Config.Prefix, m.stdin
	ctx := m.ctx
	return func() tea.Msg {
		content, err := loadMsg(ctx, strings.TrimSpace(prefix))
		if err != nil {
			return ligasError{err, "Could not load the league description."}
		}
		if stdin != "" {
			content = strings.TrimSpace(content + "\n\n" + stdin)
		}
		return inputMsg{content}
	}
}

func (m *Ligas) generateCmd(content string) tea.Cmd {
	ctx, gen := m.ctx, m.gen
	return func() tea.Msg {
		return resultMsg{gen.Generate(ctx, content)}
	}
}

// readStdin reads all of stdin when it is not a terminal.
func readStdin(r io.Reader) (string, error) {
	if isInputTTY() {
		return "", nil
	}
	bts, err := io.ReadAll(r)
	if err != nil {
		return "", ligasError{err, "Unable to read stdin."}
	}
	return strings.TrimSpace(string(bts)), nil
}

// errCanceled reports whether err is the result of the user quitting.
func errCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
