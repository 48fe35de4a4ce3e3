package tui

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/paneshift/paneshift/internal/config"
	"github.com/paneshift/paneshift/internal/ipc"
)

// model is the root bubbletea model for the preset preview.
type model struct {
	cfg    *config.Config
	client *ipc.Client

	presets     []string // sorted preset names
	selected    int
	windowCount int
	gap         int

	daemonConnected bool
	status          string

	width  int
	height int
}

func newModel(cfg *config.Config) model {
	m := model{
		cfg:         cfg,
		client:      ipc.NewClient(),
		windowCount: 4,
		gap:         cfg.Gap,
	}

	m.presets = make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		m.presets = append(m.presets, name)
	}
	sort.Strings(m.presets)

	for i, name := range m.presets {
		if name == cfg.DefaultPreset {
			m.selected = i
			break
		}
	}

	if err := m.client.Ping(); err == nil {
		m.daemonConnected = true
	}

	return m
}

func (m model) selectedPreset() string {
	if len(m.presets) == 0 {
		return ""
	}
	return m.presets[m.selected]
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "down", "j", "tab":
			if len(m.presets) > 0 {
				m.selected = (m.selected + 1) % len(m.presets)
			}
			m.status = ""

		case "up", "k", "shift+tab":
			if len(m.presets) > 0 {
				m.selected = (m.selected - 1 + len(m.presets)) % len(m.presets)
			}
			m.status = ""

		case "right", "l", "+":
			if msg.String() == "+" {
				m.gap++
			} else if m.windowCount < 16 {
				m.windowCount++
			}

		case "left", "h", "-":
			if msg.String() == "-" {
				if m.gap > 0 {
					m.gap--
				}
			} else if m.windowCount > 1 {
				m.windowCount--
			}

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.windowCount = int(msg.String()[0] - '0')

		case "enter":
			m.apply()
		}
	}
	return m, nil
}

// apply asks the daemon to run the selected preset for real.
func (m *model) apply() {
	if !m.daemonConnected {
		m.status = "daemon not running; start it with `paneshift daemon`"
		return
	}
	gap := m.gap
	data, err := m.client.Arrange(ipc.ArrangePayload{
		Preset: m.selectedPreset(),
		Gap:    &gap,
	})
	if err != nil {
		m.status = fmt.Sprintf("arrange failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("arranged on %s: %d moved, %d skipped, %d failed",
		data.Monitor, data.Moved, data.Skipped, data.Failed)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m model) View() string {
	if m.width < 20 || m.height < 10 {
		return "terminal too small"
	}

	header := titleStyle.Render("paneshift preview")

	name := m.selectedPreset()
	var layoutSpec string
	if pc, ok := m.cfg.Presets[name]; ok {
		layoutSpec = pc.Layout
	}
	info := fmt.Sprintf("%s (%s)  windows: %d  gap: %d",
		selectedStyle.Render(name), layoutSpec, m.windowCount, m.gap)

	canvasH := m.height - 6
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width
	if canvasW > 100 {
		canvasW = 100
	}

	canvas := renderPreview(m.cfg, name, m.windowCount, m.gap, canvasW, canvasH)

	var statusLine string
	switch {
	case m.status != "":
		statusLine = statusStyle.Width(m.width).Render(m.status)
	case m.daemonConnected:
		statusLine = statusStyle.Width(m.width).Render("● daemon connected, enter applies the preset")
	default:
		statusLine = statusStyle.Width(m.width).Render("○ daemon not running, preview only")
	}

	help := dimStyle.Render("j/k: preset  1-9/h/l: windows  +/-: gap  enter: apply  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		info,
		lipgloss.JoinVertical(lipgloss.Left, canvas...),
		statusLine,
		help,
	)
}

// Run starts the interactive preset preview.
func Run(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("preview requires an interactive terminal")
	}

	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
