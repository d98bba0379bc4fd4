package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Beastly713/steg/pkg/config"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // Green
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Orange
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // Red
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

const (
	fieldCarrier = iota
	fieldSecret
	fieldEncodeOutput
	fieldStego
	fieldDecodeOutput
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldCarrier:      "Carrier image",
	fieldSecret:       "Secret file",
	fieldEncodeOutput: "Output image",
	fieldStego:        "Stego image",
	fieldDecodeOutput: "Output file",
}

type model struct {
	inputs   []textinput.Model
	focus    int
	status   string
	busy     bool
	quitting bool

	// browser is non-nil while a file is being picked for a field.
	browser *browser
}

type statusMsg string

func initialModel(c *config.Config) model {
	m := model{
		inputs: make([]textinput.Model, fieldCount),
		status: "Ready.",
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 4096
		ti.Width = 48
		m.inputs[i] = ti
	}
	m.inputs[fieldCarrier].Placeholder = "cat.png"
	m.inputs[fieldSecret].Placeholder = "diary.txt"
	m.inputs[fieldStego].Placeholder = "output.png"
	m.inputs[fieldEncodeOutput].SetValue(c.EncodeOutput)
	m.inputs[fieldDecodeOutput].SetValue(c.DecodeOutput)

	m.inputs[fieldCarrier].Focus()
	m.inputs[fieldCarrier].PromptStyle = focusedStyle
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.browser != nil {
			return m.updateBrowser(msg)
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab", "down":
			cmd := m.setFocus((m.focus + 1) % fieldCount)
			return m, cmd

		case "shift+tab", "up":
			cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, cmd

		case "ctrl+o":
			if _, ok := browseExts[m.focus]; !ok {
				m.status = "Error: " + strings.ToLower(fieldLabels[m.focus]) + " is a new file, type its path"
				return m, nil
			}
			b, err := newBrowser(m.focus, m.value(m.focus))
			if err != nil {
				m.status = "Error: " + err.Error()
				return m, nil
			}
			m.browser = b
			return m, nil

		case "ctrl+e":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Encoding..."
			return m, m.encode()

		case "ctrl+d":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Decoding..."
			return m, m.decode()
		}

	case statusMsg:
		m.status = string(msg)
		m.busy = false
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.inputs[m.focus].PromptStyle = blurredStyle
	m.focus = i
	m.inputs[m.focus].PromptStyle = focusedStyle
	return m.inputs[m.focus].Focus()
}

func (m model) value(field int) string {
	return strings.TrimSpace(m.inputs[field].Value())
}

func (m model) encode() tea.Cmd {
	carrier, secret, out := m.value(fieldCarrier), m.value(fieldSecret), m.value(fieldEncodeOutput)
	return func() tea.Msg {
		if carrier == "" || secret == "" || out == "" {
			return statusMsg("Error: carrier image, secret file and output image are required")
		}
		_, err := encodeFile(carrier, secret, out)
		return statusMsg(statusLine("Data encoded and saved to "+out, err))
	}
}

// decode always overwrites: the output path was typed by hand.
func (m model) decode() tea.Cmd {
	src, out := m.value(fieldStego), m.value(fieldDecodeOutput)
	return func() tea.Msg {
		if src == "" || out == "" {
			return statusMsg("Error: stego image and output file are required")
		}
		_, err := decodeFile(src, out, true)
		return statusMsg(statusLine("Decoded data saved to "+out, err))
	}
}

func renderStatus(status string) string {
	switch {
	case strings.HasPrefix(status, "Success"):
		return successStyle.Render(status)
	case strings.HasPrefix(status, "Warning"):
		return warningStyle.Render(status)
	case strings.HasPrefix(status, "Error"):
		return errorStyle.Render(status)
	default:
		return status
	}
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	if m.browser != nil {
		return docStyle.Render(m.browser.View() + "\n\n" + renderStatus(m.status))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Encode") + "\n")
	for i := fieldCarrier; i <= fieldEncodeOutput; i++ {
		fmt.Fprintf(&b, "%-14s %s\n", fieldLabels[i], m.inputs[i].View())
	}
	b.WriteString("\n" + titleStyle.Render("Decode") + "\n")
	for i := fieldStego; i <= fieldDecodeOutput; i++ {
		fmt.Fprintf(&b, "%-14s %s\n", fieldLabels[i], m.inputs[i].View())
	}

	b.WriteString("\n" + renderStatus(m.status) + "\n\n")
	b.WriteString(blurredStyle.Render("tab: next field | ctrl+o: browse | ctrl+e: encode | ctrl+d: decode | esc: quit"))

	return docStyle.Render(b.String())
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive terminal UI for encoding and decoding",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(initialModel(cfg))
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
