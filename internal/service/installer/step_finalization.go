package installer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/tgsearch/internal/config"
)

// FinalizationStep normalizes values and fills defaults.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	e := &state.Env
	e.APIID = strings.TrimSpace(e.APIID)
	e.APIHash = strings.TrimSpace(e.APIHash)
	e.Group = strings.TrimSpace(e.Group)
	e.SessionFile = strings.TrimSpace(e.SessionFile)
	if e.SessionFile == "" {
		e.SessionFile = config.DefaultSessionFile
	}

	if !state.WithBot {
		e.BotToken = ""
		e.BotOwnerID = ""
	} else {
		e.BotToken = strings.TrimSpace(e.BotToken)
		e.BotOwnerID = strings.TrimSpace(e.BotOwnerID)
	}

	if e.DebugEnabled == "" {
		e.DebugEnabled = "0"
	}
}
