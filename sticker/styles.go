package sticker

import "github.com/charmbracelet/lipgloss"

var (
	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("238"))

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86"))

	animationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("196"))

	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

const (
	defaultWidth  = 32
	defaultHeight = 12
)

// box renders content inside style, sized so the border fills w×h cells.
func box(style lipgloss.Style, w, h int, content string) string {
	innerW := max(w-style.GetHorizontalFrameSize(), 1)
	innerH := max(h-style.GetVerticalFrameSize(), 1)
	return style.
		Width(innerW).
		Height(innerH).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func normalizeSize(w, h int) (int, int) {
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
