package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginLeft(2)
	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("160")).
			Padding(0, 1).
			MarginLeft(2)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(2)
)

// Rows reserved around the preview for header, toast and footer.
const chromeRows = 6

// previewWidth is 0 until the terminal size is known, which lets the
// sticker leaves fall back to their own defaults.
func (m Model) previewWidth() int {
	if m.width <= 4 {
		return 0
	}
	return m.width - 4
}

func (m Model) previewHeight() int {
	if m.height <= chromeRows {
		return 0
	}
	return m.height - chromeRows
}

// View renders the UI based on the current state
func (m Model) View() string {
	switch m.state {
	case stateInitializing, stateSearching:
		return fmt.Sprintf("%s Searching openlibrary.org for '%s'...\n",
			spinnerStyle.Render(m.spinner.View()), m.query)

	case stateSelectingBook:
		return m.bookSelector.View()

	case statePreviewing:
		return m.previewView()

	case stateSettings:
		if m.settings == nil {
			return m.previewView()
		}
		return headerStyle.Render("Shelf dividers") + "\n\n" + m.settings.Form.View()

	case stateError:
		return errorStyle.Render(fmt.Sprintf("✗ Error: %v\n", m.err))

	default:
		return ""
	}
}

func (m Model) previewView() string {
	var b strings.Builder

	title := m.title
	if title == "" {
		title = "Sticker preview"
	}
	b.WriteString(headerStyle.Render(title))
	if m.selected != nil && len(m.selected.Authors) > 0 {
		b.WriteString(" " + infoStyle.Render(strings.Join(m.selected.Authors, ", ")))
	}
	b.WriteString("\n\n")

	b.WriteString(m.preview.View())
	b.WriteString("\n")

	if t, ok := m.toasts.latest(); ok {
		b.WriteString(toastStyle.Render(t.text))
		b.WriteString("\n")
	}

	d := m.store.Dividers()
	status := fmt.Sprintf("dividers: %s • %s", d.Orientation, m.preview.State())
	b.WriteString(successStyle.MarginLeft(2).Render(status))
	b.WriteString("\n")

	b.WriteString(footerStyle.Render(previewKeys.help(m.fromSearch)))
	b.WriteString("\n")
	return b.String()
}
