package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rcrouch/pitboard"
	"github.com/rcrouch/pitboard/config"
)

// --- STYLES ---
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#575B7E")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Bold(true).Width(12)

	connectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28")).
			Padding(0, 1)
	disconnectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("124")).
				Padding(0, 1)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

const (
	fieldIP = iota
	fieldKey
	fieldCount
)

// Model is the settings form plus live status readout.
type Model struct {
	board *pitboard.Pitboard
	loop  *pitboard.Loop
	store *config.Store

	inputs  []textinput.Model
	focused int
	status  string
}

func NewModel(board *pitboard.Pitboard, loop *pitboard.Loop, store *config.Store) Model {
	s := store.Get()

	ip := textinput.New()
	ip.Placeholder = "192.168.1.50"
	ip.SetValue(s.DeviceIP)
	ip.Focus()

	key := textinput.New()
	key.Placeholder = "device API key"
	key.SetValue(s.APIKey)
	key.EchoMode = textinput.EchoPassword
	key.EchoCharacter = '*'

	return Model{
		board:  board,
		loop:   loop,
		store:  store,
		inputs: []textinput.Model{ip, key},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "enter", "shift+tab":
			if msg.String() == "shift+tab" {
				m.focused = (m.focused + fieldCount - 1) % fieldCount
			} else {
				m.focused = (m.focused + 1) % fieldCount
			}
			for i := range m.inputs {
				if i == m.focused {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, nil
		case "ctrl+s":
			m.save()
			return m, nil
		case "ctrl+t":
			m.apply()
			m.loop.SendTest()
			m.status = "test notification requested"
			return m, nil
		case "ctrl+p":
			if m.loop.Polling() {
				m.loop.StopPolling()
				m.status = "polling stopped"
			} else {
				m.apply()
				m.loop.StartPolling()
				m.status = "polling started"
			}
			return m, nil
		}
	case tickMsg:
		return m, tick()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// apply copies the form fields into the settings store without writing
// the file.
func (m *Model) apply() {
	s := m.store.Get()
	s.DeviceIP = strings.TrimSpace(m.inputs[fieldIP].Value())
	s.APIKey = strings.TrimSpace(m.inputs[fieldKey].Value())
	m.store.Set(s)
}

func (m *Model) save() {
	m.apply()
	if err := m.store.Save(); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "settings saved to " + m.store.Path()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("LaMetric Racing Data Sender"))
	b.WriteString("  ")
	st := m.board.Status()
	if st.SimConnected {
		b.WriteString(connectedStyle.Render("iRacing connected"))
	} else {
		b.WriteString(disconnectedStyle.Render("waiting for iRacing"))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Device IP") + m.inputs[fieldIP].View() + "\n")
	b.WriteString(labelStyle.Render("API Key") + m.inputs[fieldKey].View() + "\n\n")

	if st.HaveSnapshot {
		b.WriteString(labelStyle.Render("Driver") + st.Snapshot.DisplayName + "\n")
		b.WriteString(labelStyle.Render("iRating") + fmt.Sprintf("%d", st.Snapshot.IRating) + "\n")
		b.WriteString(labelStyle.Render("License") +
			fmt.Sprintf("%s %.2f", st.Snapshot.LicenseClass, st.Snapshot.SafetyRating) + "\n")
		b.WriteString(labelStyle.Render("Best Lap") + formatLapTime(st.Snapshot.BestLapTime) + "\n")
	} else {
		b.WriteString(dimStyle.Render("no driver data yet") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Polling"))
	if m.loop.Polling() {
		b.WriteString(okStyle.Render("active"))
	} else {
		b.WriteString("idle")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Last send") + renderResult(m.loop.LastResult()) + "\n")
	if m.status != "" {
		b.WriteString(labelStyle.Render("Status") + m.status + "\n")
	}

	b.WriteString("\n" + dimStyle.Render(
		"tab: next field | ctrl+s: save | ctrl+t: send test | ctrl+p: start/stop polling | esc: quit"))
	return b.String()
}

// formatLapTime renders a lap time in seconds as m:ss.mmm. The sim
// reports no completed lap as a non-positive value.
func formatLapTime(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds * float64(time.Second)).Round(time.Millisecond)
	mins := int(d / time.Minute)
	d -= time.Duration(mins) * time.Minute
	return fmt.Sprintf("%d:%06.3f", mins, d.Seconds())
}

func renderResult(r pitboard.Result) string {
	switch r.Kind {
	case pitboard.ResultNone:
		return dimStyle.Render("none yet")
	case pitboard.ResultOK:
		return okStyle.Render("ok at " + r.At.Format("15:04:05"))
	case pitboard.ResultConfigMissing:
		return warnStyle.Render("device IP and API key required")
	case pitboard.ResultSimUnavailable:
		return warnStyle.Render("iRacing not running")
	default:
		return errStyle.Render(fmt.Sprintf("failed at %s: %v", r.At.Format("15:04:05"), r.Err))
	}
}
