package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kilnbuild/kiln/pkg/scaffold"
)

// newPromptState represents the current step of the project prompt.
type newPromptState int

const (
	stateName newPromptState = iota
	stateVersion
	statePickType
	statePickStandard
	stateDone
	stateCancelled
)

// newPromptKeyMap defines key bindings for the picker steps. The text
// steps handle keys by type so typed characters reach the input.
type newPromptKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Quit   key.Binding
	Escape key.Binding
}

var newPromptKeys = newPromptKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// projectTypes and cStandards are the choices the prompt offers.
var (
	projectTypes = []struct {
		token string
		desc  string
	}{
		{"binary", "an executable program"},
		{"shared", "a shared library (libname.so)"},
		{"static", "a static library (libname.a)"},
	}

	cStandards = []string{"c89", "gnu89", "c99", "gnu99", "c11", "gnu11", "c17", "gnu17", "c23", "gnu23"}
)

// newPromptResult holds the selections after the prompt has finished.
type newPromptResult struct {
	Confirmed bool
	Name      string
	Version   string
	Type      string
	Standard  string
}

// newPromptModel is the Bubble Tea model for the project prompt.
type newPromptModel struct {
	state          newPromptState
	nameInput      textinput.Model
	versionInput   textinput.Model
	typeCursor     int
	standardCursor int
	result         newPromptResult
	width          int
	height         int
}

// newNewPromptModel creates a prompt model prefilled with everything
// already settled by arguments, flags or stored defaults.
func newNewPromptModel(o scaffold.Options) newPromptModel {
	name := textinput.New()
	name.Placeholder = "hello"
	name.CharLimit = 64
	name.SetValue(o.Name)
	name.Focus()

	version := textinput.New()
	version.Placeholder = "0.1.0"
	version.CharLimit = 32
	version.SetValue(o.Version)

	m := newPromptModel{state: stateName, nameInput: name, versionInput: version}
	for i, t := range projectTypes {
		if t.token == o.Type {
			m.typeCursor = i
		}
	}
	for i, s := range cStandards {
		if s == o.Standard {
			m.standardCursor = i
		}
	}
	return m
}

func (m newPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m newPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case stateName:
			return m.updateName(msg)
		case stateVersion:
			return m.updateVersion(msg)
		case statePickType:
			return m.updatePickType(msg)
		case statePickStandard:
			return m.updatePickStandard(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	switch m.state {
	case stateName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case stateVersion:
		m.versionInput, cmd = m.versionInput.Update(msg)
	}
	return m, cmd
}

func (m newPromptModel) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			return m, nil
		}
		m.state = stateVersion
		m.nameInput.Blur()
		return m, m.versionInput.Focus()
	case tea.KeyEsc, tea.KeyCtrlC:
		m.state = stateCancelled
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m newPromptModel) updateVersion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.state = statePickType
		m.versionInput.Blur()
		return m, nil
	case tea.KeyEsc:
		// Go back to the name screen
		m.state = stateName
		m.versionInput.Blur()
		return m, m.nameInput.Focus()
	case tea.KeyCtrlC:
		m.state = stateCancelled
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.versionInput, cmd = m.versionInput.Update(msg)
	return m, cmd
}

func (m newPromptModel) updatePickType(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, newPromptKeys.Up):
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case key.Matches(msg, newPromptKeys.Down):
		if m.typeCursor < len(projectTypes)-1 {
			m.typeCursor++
		}
	case key.Matches(msg, newPromptKeys.Enter):
		m.state = statePickStandard
	case key.Matches(msg, newPromptKeys.Escape):
		m.state = stateVersion
		return m, m.versionInput.Focus()
	case key.Matches(msg, newPromptKeys.Quit):
		m.state = stateCancelled
		return m, tea.Quit
	}
	return m, nil
}

func (m newPromptModel) updatePickStandard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, newPromptKeys.Up):
		if m.standardCursor > 0 {
			m.standardCursor--
		}
	case key.Matches(msg, newPromptKeys.Down):
		if m.standardCursor < len(cStandards)-1 {
			m.standardCursor++
		}
	case key.Matches(msg, newPromptKeys.Enter):
		m.result = newPromptResult{
			Confirmed: true,
			Name:      strings.TrimSpace(m.nameInput.Value()),
			Version:   strings.TrimSpace(m.versionInput.Value()),
			Type:      projectTypes[m.typeCursor].token,
			Standard:  cStandards[m.standardCursor],
		}
		m.state = stateDone
		return m, tea.Quit
	case key.Matches(msg, newPromptKeys.Escape):
		// Go back to the type screen
		m.state = statePickType
	case key.Matches(msg, newPromptKeys.Quit):
		m.state = stateCancelled
		return m, tea.Quit
	}
	return m, nil
}

func (m newPromptModel) View() string {
	var b strings.Builder

	switch m.state {
	case stateName:
		b.WriteString(headerStyle.Render("? Project name:"))
		b.WriteString("\n\n  ")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("enter to continue, esc to cancel"))

	case stateVersion:
		b.WriteString(headerStyle.Render("? Initial version:"))
		b.WriteString("\n\n  ")
		b.WriteString(m.versionInput.View())
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("enter to continue (blank for 0.1.0), esc to go back"))

	case statePickType:
		b.WriteString(headerStyle.Render(fmt.Sprintf("? Project type for %s:", m.nameInput.Value())))
		b.WriteString("\n\n")

		for i, t := range projectTypes {
			if i == m.typeCursor {
				b.WriteString(highlightStyle.Render(fmt.Sprintf("  %s %-8s%s", iconArrow, t.token, t.desc)))
			} else {
				b.WriteString(fmt.Sprintf("    %-8s%s", t.token, t.desc))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("↑/↓ to navigate, enter to select, q to quit"))

	case statePickStandard:
		b.WriteString(headerStyle.Render("? C standard:"))
		b.WriteString("\n\n")

		for i, s := range cStandards {
			if i == m.standardCursor {
				b.WriteString(highlightStyle.Render(fmt.Sprintf("  %s %s", iconArrow, s)))
			} else {
				b.WriteString(fmt.Sprintf("    %s", s))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("↑/↓ to navigate, enter to select, esc to go back"))

	case stateDone:
		b.WriteString("Done.\n")

	case stateCancelled:
		b.WriteString("Cancelled.\n")
	}

	return b.String()
}

// runNewPrompt runs the interactive project prompt and returns the result.
func runNewPrompt(o scaffold.Options) (newPromptResult, error) {
	model := newNewPromptModel(o)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return newPromptResult{}, fmt.Errorf("error running prompt: %w", err)
	}

	if m, ok := finalModel.(newPromptModel); ok {
		return m.result, nil
	}

	return newPromptResult{}, fmt.Errorf("unexpected model type")
}
