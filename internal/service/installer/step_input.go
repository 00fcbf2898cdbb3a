package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep asks for a single value and stores it with set once validate passes.
type InputStep struct {
	input    textinput.Model
	title    string
	hint     string
	validate func(string) error
	set      func(state *InstallState, value string)
	skip     func(state *InstallState) bool
	err      error
}

type inputOption func(*InputStep)

func withPassword() inputOption {
	return func(s *InputStep) {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
}

func withDefault(v string) inputOption {
	return func(s *InputStep) {
		s.input.SetValue(v)
		s.input.CursorEnd()
	}
}

func withHint(hint string) inputOption {
	return func(s *InputStep) { s.hint = hint }
}

// onlyWithBot skips the step unless the bot channel was selected.
func onlyWithBot() inputOption {
	return func(s *InputStep) {
		s.skip = func(state *InstallState) bool { return !state.WithBot }
	}
}

func NewInputStep(
	title, placeholder string,
	validate func(string) error,
	set func(*InstallState, string),
	opts ...inputOption,
) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder

	s := &InputStep{
		input:    ti,
		title:    title,
		validate: validate,
		set:      set,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(state) {
		return nil, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		value := s.input.Value()
		if s.validate != nil {
			if err := s.validate(value); err != nil {
				s.err = err
				return s, nil
			}
		}
		s.set(state, value)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.err = nil
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	view := fmt.Sprintf("Enter your %s:\n\n%s\n\n", s.title, s.input.View())
	if s.hint != "" {
		view += itemStyle.Render(s.hint) + "\n\n"
	}
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}
