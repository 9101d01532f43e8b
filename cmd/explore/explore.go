package explore

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"golang.org/x/xerrors"

	"github.com/coder/memento/internal/config"
	"github.com/coder/memento/lib/logctx"
	"github.com/coder/memento/lib/memento"
)

const FlagCapacity = "capacity"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	activeStyle   = lipgloss.NewStyle()
	inactiveStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

const helpText = "enter push • ctrl+z rollback • ctrl+y reapply • ctrl+l clear • esc quit"

type model struct {
	history *memento.Buffer[string]
	input   textinput.Model
	status  string
	failed  bool
}

func newModel(capacity int) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type an entry"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	return model{
		history: memento.New[string](capacity),
		input:   ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

//lint:ignore U1000 The Update function is used by the Bubble Tea framework
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		m.history.Push(value)
		m.input.Reset()
		m.setStatus(fmt.Sprintf("pushed %q", value), nil)
		return m, nil

	case tea.KeyCtrlZ:
		value, err := m.history.Rollback()
		m.setStatus(fmt.Sprintf("rolled back %q", value), err)
		return m, nil

	case tea.KeyCtrlY:
		value, err := m.history.Reapply()
		m.setStatus(fmt.Sprintf("reapplied %q", value), err)
		return m, nil

	case tea.KeyCtrlL:
		m.history.Clear()
		m.setStatus("cleared", nil)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) setStatus(status string, err error) {
	m.failed = err != nil
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = status
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("history %d/%d active, capacity %d",
		m.history.ActiveLen(), m.history.Len(), m.history.MaxCapacity())))
	sb.WriteString("\n\n")

	if m.history.Len() == 0 {
		sb.WriteString(helpStyle.Render("  (empty)"))
		sb.WriteString("\n")
	}
	for i, entry := range m.history.All() {
		line := fmt.Sprintf("%3d  %s", i+1, entry.Value)
		if entry.Active {
			sb.WriteString(activeStyle.Render(line))
		} else {
			sb.WriteString(inactiveStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.status != "" {
		if m.failed {
			sb.WriteString(errorStyle.Render(m.status))
		} else {
			sb.WriteString(m.status)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(helpText))
	sb.WriteString("\n")
	return sb.String()
}

var ExploreCmd = &cobra.Command{
	Use:     "explore",
	Short:   "Explore a history buffer interactively",
	Long:    `Push entries, roll them back and reapply them in an interactive terminal session.`,
	Args:    cobra.NoArgs,
	PreRunE: config.BindFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return xerrors.New("explore needs an interactive terminal")
		}
		capacity := viper.GetInt(FlagCapacity)
		if capacity <= 0 {
			return xerrors.Errorf("capacity must be positive, got %d", capacity)
		}

		ctx := cmd.Context()
		logctx.FromOrDiscard(ctx).Info("Starting explorer", "capacity", capacity)
		p := tea.NewProgram(newModel(capacity), tea.WithContext(ctx), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return xerrors.Errorf("failed to run explorer: %w", err)
		}
		if m, ok := final.(model); ok {
			logctx.FromOrDiscard(ctx).Info("Explorer finished",
				"live", m.history.Len(),
				"active", m.history.ActiveLen())
		}
		return nil
	},
}

func init() {
	ExploreCmd.Flags().Int(FlagCapacity, 20, "History capacity")
}
