package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/latticesim/internal/config"
)

var presetInfo = map[string]string{
	"small":    "8x8 thermal jitter",
	"membrane": "128x128 membrane",
	"chain":    "1-D chain normal mode",
	"pulse":    "centre displacement",
	"morton":   "256x256 z-order float32",
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸")
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var paramNames = []string{"rows", "cols", "stiffness", "dt", "sigma"}

// picker lets the user choose a preset, tune it, then hands over to Model.
type picker struct {
	state, cursor int
	presets       []string
	selected      string
	params        map[string]float64
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	liveModel     Model
	live          bool
}

func newPicker() picker {
	return picker{state: stateMenu, presets: config.ListPresets(), params: map[string]float64{}}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		cfg := config.GetPreset(m.selected)
		m.params = map[string]float64{
			"rows": float64(cfg.Rows), "cols": float64(cfg.Cols),
			"stiffness": cfg.Stiffness, "dt": cfg.Dt, "sigma": cfg.Sigma,
		}
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m picker) configKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	name := paramNames[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err == nil {
				m.params[name] = val
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
				m.editBuf += s
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", m.params[name])
	case "left", "h":
		m.params[name] = nudge(name, m.params[name], -1)
	case "right", "l":
		m.params[name] = nudge(name, m.params[name], 1)
	case "s":
		return m.start()
	}
	return m, nil
}

// nudge steps integer parameters by one and the rest by 10%.
func nudge(name string, v float64, dir int) float64 {
	if name == "rows" || name == "cols" {
		return max(1, v+float64(dir))
	}
	if dir > 0 {
		return v * 1.1
	}
	return v / 1.1
}

func (m picker) config() *config.Config {
	cfg := config.GetPreset(m.selected)
	cfg.Rows, cfg.Cols = int(m.params["rows"]), int(m.params["cols"])
	cfg.Stiffness, cfg.Dt, cfg.Sigma = m.params["stiffness"], m.params["dt"], m.params["sigma"]
	cfg.Probe.Row = min(cfg.Probe.Row, cfg.Rows-1)
	cfg.Probe.Col = min(cfg.Probe.Col, cfg.Cols-1)
	return cfg
}

func (m picker) start() (picker, tea.Cmd) {
	live, err := NewModel(m.config())
	if err != nil {
		m.err = err
		return m, nil
	}
	m.liveModel, m.live, m.state = live, true, stateSim
	return m, m.liveModel.Init()
}

func (m picker) View() string {
	switch m.state {
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return m.viewMenu()
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + offStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m picker) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("LATTICESIM") + "\n    " + subStyle.Render("mass-spring lattice") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorMark, selStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", offStyle.Render(fmt.Sprintf("  %-12s", name)), offStyle.Render(presetInfo[name])))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m picker) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.selected)) + "\n    " + subStyle.Render(presetInfo[m.selected]) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range paramNames {
		valStr := fmt.Sprintf("%10.4g", m.params[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorMark, selStyle.Render(fmt.Sprintf("%-10s", name)), descStyle.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", offStyle.Render(fmt.Sprintf("  %-10s", name)), offStyle.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusRecord.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive shows the preset picker and then the live view.
func RunInteractive() error {
	final, err := tea.NewProgram(newPicker(), tea.WithAltScreen()).Run()
	if p, ok := final.(picker); ok && p.live {
		p.liveModel.Close()
	}
	return err
}
