package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/scanner"
)

// errAborted is returned by promptDecision when the user quits the prompt.
// The generate flow stops asking but still writes the decisions made so far.
var errAborted = errors.New("prompt aborted")

// action is what the user chose to do with a finding.
type action int

const (
	actionIgnore action = iota
	actionUpdate
	actionSkip
)

// Decision is the outcome of prompting for one finding.
type Decision struct {
	Action action
	Reason string // set when Action is actionIgnore
}

// promptState tracks which screen the model is showing.
type promptState int

const (
	stateChoosing promptState = iota
	stateEditing
)

// promptModel is the bubbletea model asking what to do with one finding.
type promptModel struct {
	finding    scanner.Finding
	chain      string
	suggestion string

	state    promptState
	input    textinput.Model
	decision *Decision
	aborted  bool
}

func newPromptModel(f scanner.Finding, chain, suggestion string) promptModel {
	ti := textinput.New()
	ti.Placeholder = "reason for ignoring"
	ti.CharLimit = 200
	ti.Width = 70
	ti.SetValue(suggestion)
	return promptModel{
		finding:    f,
		chain:      chain,
		suggestion: suggestion,
		input:      ti,
	}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateEditing {
		switch key.String() {
		case "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		case "esc":
			m.state = stateChoosing
			m.input.Blur()
			return m, nil
		case "enter":
			reason := strings.TrimSpace(m.input.Value())
			if reason == "" {
				return m, nil
			}
			m.decision = &Decision{Action: actionIgnore, Reason: reason}
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "i", "enter":
		if m.suggestion == "" {
			m.state = stateEditing
			return m, m.input.Focus()
		}
		m.decision = &Decision{Action: actionIgnore, Reason: m.suggestion}
		return m, tea.Quit
	case "e":
		m.state = stateEditing
		return m, m.input.Focus()
	case "u":
		m.decision = &Decision{Action: actionUpdate}
		return m, tea.Quit
	case "s":
		m.decision = &Decision{Action: actionSkip}
		return m, tea.Quit
	}
	return m, nil
}

func (m promptModel) View() string {
	var b strings.Builder

	f := m.finding
	b.WriteString(StyleTitle.Render(f.ID))
	if f.Severity != "" {
		b.WriteString(" " + StyleWarning.Render("severity "+f.Severity))
	}
	b.WriteString("\n")
	if f.Summary != "" {
		b.WriteString(StyleValue.Render(f.Summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleKey.Render("Package") + " " + StyleHighlight.Render(f.Package+"@"+f.Version) + "\n")
	if len(f.Aliases) > 0 {
		b.WriteString(styleKey.Render("Aliases") + " " + StyleDim.Render(strings.Join(f.Aliases, ", ")) + "\n")
	}
	b.WriteString(styleKey.Render("Chain") + " " + StyleValue.Render(m.chain) + "\n")

	if m.state == stateEditing {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("Ignore reason (enter to confirm, esc to go back):"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		return b.String()
	}

	if m.suggestion != "" {
		b.WriteString(styleKey.Render("Suggested") + " " + StyleSuccess.Render(m.suggestion) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("[i] ignore  [e] edit reason  [u] update package  [s] skip  [q] quit"))
	b.WriteString("\n")
	return b.String()
}

// promptDecision asks the user interactively what to do with one finding.
// It returns errAborted when the user quits instead of deciding.
func promptDecision(f scanner.Finding, chain, suggestion string) (Decision, error) {
	prog := tea.NewProgram(newPromptModel(f, chain, suggestion))
	out, err := prog.Run()
	if err != nil {
		return Decision{}, fmt.Errorf("run prompt: %w", err)
	}
	m, ok := out.(promptModel)
	if !ok || m.aborted || m.decision == nil {
		return Decision{}, errAborted
	}
	return *m.decision, nil
}
