package cli

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/errors"
)

var (
	tuiNameStyle   = lipgloss.NewStyle().Foreground(colorWhite).Width(40)
	tuiDetailStyle = lipgloss.NewStyle().Foreground(colorDim)
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// installFunc resolves one dependency and returns its local path.
type installFunc func(ctx context.Context, dep dependency.Dependency) (string, error)

type installState int

const (
	statePending installState = iota
	stateRunning
	stateDone
	stateFailed
	stateSkipped
)

// =============================================================================
// installModel - batch install progress
// =============================================================================

// installModel installs dependencies one at a time, in order, and stops at
// the first failure. Entries after a failure are shown as skipped.
type installModel struct {
	ctx     context.Context
	deps    []dependency.Dependency
	states  []installState
	details []string
	install installFunc
	current int
	frame   int
	start   time.Time
	err     error
	done    bool
}

type installedMsg struct {
	index int
	path  string
	err   error
}

type tickMsg struct{}

func newInstallModel(ctx context.Context, deps []dependency.Dependency, install installFunc) installModel {
	return installModel{
		ctx:     ctx,
		deps:    deps,
		states:  make([]installState, len(deps)),
		details: make([]string, len(deps)),
		install: install,
		start:   time.Now(),
	}
}

func (m installModel) Init() tea.Cmd {
	if len(m.deps) == 0 {
		return tea.Quit
	}
	return tea.Batch(m.installCurrent(), tick())
}

func (m installModel) installCurrent() tea.Cmd {
	i, dep := m.current, m.deps[m.current]
	return func() tea.Msg {
		path, err := m.install(m.ctx, dep)
		return installedMsg{index: i, path: path, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m installModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.done {
				m.err = context.Canceled
				m.finish()
			}
			return m, tea.Quit
		}

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		if m.states[m.current] == statePending {
			m.states[m.current] = stateRunning
		}
		return m, tick()

	case installedMsg:
		if m.done || msg.index != m.current {
			return m, nil
		}
		if msg.err != nil {
			m.states[msg.index] = stateFailed
			m.details[msg.index] = errors.UserMessage(msg.err)
			m.err = msg.err
			m.finish()
			return m, tea.Quit
		}
		m.states[msg.index] = stateDone
		m.details[msg.index] = msg.path
		m.current++
		if m.current == len(m.deps) {
			m.finish()
			return m, tea.Quit
		}
		return m, m.installCurrent()
	}
	return m, nil
}

// finish marks every entry that never ran as skipped.
func (m *installModel) finish() {
	m.done = true
	for i, s := range m.states {
		if s == statePending || s == stateRunning {
			m.states[i] = stateSkipped
		}
	}
}

func (m installModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Installing dependencies"))
	b.WriteString("\n\n")

	for i, dep := range m.deps {
		var icon string
		switch m.states[i] {
		case statePending:
			icon = StyleDim.Render(iconPending)
		case stateRunning:
			icon = styleIconSpinner.Render(spinnerFrames[m.frame%len(spinnerFrames)])
		case stateDone:
			icon = styleIconSuccess.Render(iconSuccess)
		case stateFailed:
			icon = styleIconError.Render(iconError)
		case stateSkipped:
			icon = StyleDim.Render("-")
		}

		b.WriteString(icon + " " + tuiNameStyle.Render(dep.Name()))
		switch m.states[i] {
		case stateDone:
			b.WriteString(tuiDetailStyle.Render(m.details[i]))
		case stateFailed:
			b.WriteString(tuiErrorStyle.Render(m.details[i]))
		case stateSkipped:
			b.WriteString(tuiDetailStyle.Render("skipped"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(tuiDetailStyle.Render("finished in " + time.Since(m.start).Round(time.Millisecond).String()))
	} else {
		b.WriteString(tuiDetailStyle.Render("q quit"))
	}
	b.WriteString("\n")
	return b.String()
}
