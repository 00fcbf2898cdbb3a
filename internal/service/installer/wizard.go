package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/tgsearch/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step represents a single step in the setup wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps(envPath string) []Step {
	return []Step{
		NewInputStep("Telegram API ID", "1234567", validateAPIID,
			func(s *InstallState, v string) { s.Env.APIID = v },
			withHint("Get it at https://my.telegram.org/apps")),
		NewInputStep("Telegram API hash", "0123456789abcdef...", validateRequired,
			func(s *InstallState, v string) { s.Env.APIHash = v },
			withPassword()),
		NewInputStep("group to search", "@mygroup, t.me/mygroup or -1001234567890", validateRequired,
			func(s *InstallState, v string) { s.Env.Group = v }),
		NewInputStep("session file path", config.DefaultSessionFile, nil,
			func(s *InstallState, v string) { s.Env.SessionFile = v },
			withDefault(config.DefaultSessionFile),
			withHint("A Telethon .session or a gotd session JSON, created by a prior login")),
		NewChannelStep(),
		NewInputStep("Telegram Bot Token", "123456789:ABCDEF...", validateRequired,
			func(s *InstallState, v string) { s.Env.BotToken = v },
			withPassword(), onlyWithBot()),
		NewInputStep("Telegram User ID (Owner)", "123456789", validateOwnerID,
			func(s *InstallState, v string) { s.Env.BotOwnerID = v },
			withHint("Leave empty to answer everyone"), onlyWithBot()),
		NewFinalizationStep(),
		NewSaveEnvStep(envPath),
	}
}

type errMsg error
type nextMsg struct{}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	err         error
	width       int
	height      int
}

func initialModel(envPath string) model {
	return model{
		steps:       getSteps(envPath),
		currentStep: 0,
		state:       NewInstallState(),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 && m.steps[0] != nil {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case errMsg:
		m.err = msg
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)

	if nextStep == nil {
		// Step indicated completion, move to next
		m.currentStep++
		if m.currentStep >= len(m.steps) {
			// All steps completed
			return m, tea.Quit
		}
		// Initialize the next step
		return m, m.steps[m.currentStep].Init()
	}

	// If the step returned a different step (e.g., for branching), update current
	if nextStep != m.steps[m.currentStep] {
		m.steps[m.currentStep] = nextStep
	}

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Configuration cancelled.\n"
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(press ctrl+c to quit)\n"
	}

	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}

	return titleStyle.Render("Configuring tgsearch 🔍") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and writes the result to envPath.
func RunWizard(envPath string) (*InstallState, error) {
	p := tea.NewProgram(initialModel(envPath), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, errors.New("configuration interrupted")
	}

	return finalModel.state, nil
}
