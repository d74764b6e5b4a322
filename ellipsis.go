package main

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const spinnerLabel = " Generando liga"

var ellipsisSpinner = spinner.Spinner{
	Frames: []string{"", ".", "..", "..."},
	FPS:    time.Second / 3, //nolint:mnd
}

// ellipsis is the animation displayed while a league is being generated.
type ellipsis struct {
	head spinner.Model
	tail spinner.Model
}

func newEllipsis(s styles) ellipsis {
	return ellipsis{
		head: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Spinner)),
		tail: spinner.New(spinner.WithSpinner(ellipsisSpinner)),
	}
}

func (e ellipsis) Init() tea.Cmd {
	return tea.Batch(e.head.Tick, e.tail.Tick)
}

func (e ellipsis) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 2) //nolint:mnd
	e.head, cmds[0] = e.head.Update(msg)
	e.tail, cmds[1] = e.tail.Update(msg)
	return e, tea.Batch(cmds...)
}

func (e ellipsis) View() string {
	return e.head.View() + spinnerLabel + e.tail.View()
}
