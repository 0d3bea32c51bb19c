package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timvisee/qr2term/pkg/errors"
)

// Form styles
var (
	formSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// wifiModel - Interactive Wi-Fi credential form
// =============================================================================

// Form field indices, top to bottom.
const (
	fieldSSID = iota
	fieldPassword
	fieldSecurity
	fieldHidden
	fieldSubmit
	fieldCount
)

// securityModes are the choices cycled by the security field.
var securityModes = []string{securityWPA, securityWEP, securityNone}

// wifiForm holds the values collected by the form.
type wifiForm struct {
	ssid     string
	password string
	security string
	hidden   bool
}

// wifiModel is the bubbletea model for the Wi-Fi credential form.
type wifiModel struct {
	form     wifiForm
	focus    int
	secIdx   int
	showPass bool
	errMsg   string
	done     bool
	canceled bool
}

// newWifiModel creates a fresh form with WPA preselected.
func newWifiModel() wifiModel {
	return wifiModel{form: wifiForm{security: securityWPA}}
}

func (m wifiModel) Init() tea.Cmd {
	return nil
}

func (m wifiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.errMsg = ""

	switch key.String() {
	case "ctrl+c", "esc":
		m.canceled = true
		return m, tea.Quit
	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, nil
	case "ctrl+r":
		m.showPass = !m.showPass
		return m, nil
	case "enter":
		if m.focus != fieldSubmit {
			m.focus++
			return m, nil
		}
		m.form.security = securityModes[m.secIdx]
		if problem := m.validate(); problem != "" {
			m.errMsg = problem
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	switch m.focus {
	case fieldSSID:
		m.form.ssid = editText(m.form.ssid, key)
	case fieldPassword:
		m.form.password = editText(m.form.password, key)
	case fieldSecurity:
		switch key.String() {
		case "left":
			m.secIdx = (m.secIdx + len(securityModes) - 1) % len(securityModes)
		case "right", " ":
			m.secIdx = (m.secIdx + 1) % len(securityModes)
		}
	case fieldHidden:
		switch key.String() {
		case "left", "right", " ":
			m.form.hidden = !m.form.hidden
		}
	}
	return m, nil
}

// validate reports why the form cannot be submitted yet, or "".
func (m wifiModel) validate() string {
	if m.form.ssid == "" {
		return "network name is required"
	}
	if m.form.security != securityNone && m.form.password == "" {
		return "a password is required unless security is nopass"
	}
	return ""
}

func (m wifiModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Share a Wi-Fi Network"))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("tab/↑/↓ move  ←/→ change  ctrl+r reveal  ⏎ confirm  esc cancel"))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(fieldSSID, "Network", m.form.ssid))

	pass := m.form.password
	if !m.showPass {
		pass = strings.Repeat("•", len([]rune(pass)))
	}
	b.WriteString(m.renderField(fieldPassword, "Password", pass))

	sec := securityModes[m.secIdx]
	if m.focus == fieldSecurity {
		sec = "‹ " + sec + " ›"
	}
	b.WriteString(m.renderField(fieldSecurity, "Security", sec))

	hidden := "no"
	if m.form.hidden {
		hidden = "yes"
	}
	b.WriteString(m.renderField(fieldHidden, "Hidden", hidden))

	b.WriteString("\n")
	if m.focus == fieldSubmit {
		b.WriteString(formSelectedStyle.Render("▸ Render code"))
	} else {
		b.WriteString(formDimStyle.Render("  Render code"))
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("! " + m.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

// renderField renders one labeled form line with a cursor on the focused row.
func (m wifiModel) renderField(idx int, label, value string) string {
	cursor := "  "
	if m.focus == idx {
		cursor = "▸ "
	}

	line := fmt.Sprintf("%s%-10s %s", cursor, label, value)
	if m.focus == idx {
		return formSelectedStyle.Render(line) + "\n"
	}
	return formNormalStyle.Render(line) + "\n"
}

// editText applies a key press to a text field.
func editText(s string, key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeyBackspace:
		if s == "" {
			return s
		}
		runes := []rune(s)
		return string(runes[:len(runes)-1])
	case tea.KeySpace:
		return s + " "
	case tea.KeyRunes:
		return s + string(key.Runes)
	}
	return s
}

// runWifiForm runs the interactive form. It returns nil without error when
// the user cancels.
func runWifiForm() (*wifiForm, error) {
	p := tea.NewProgram(newWifiModel())
	finalModel, err := p.Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "interactive form failed")
	}

	m, ok := finalModel.(wifiModel)
	if !ok || !m.done || m.canceled {
		return nil, nil
	}
	return &m.form, nil
}
