package sticker

import "strings"

// DefaultErrorMessage is shown when no message is given to ErrorView.
const DefaultErrorMessage = "Error loading sticker"

// ErrorView renders the terminal error placeholder at w×h cells.
func ErrorView(message string, w, h int) string {
	if strings.TrimSpace(message) == "" {
		message = DefaultErrorMessage
	}
	w, h = normalizeSize(w, h)
	return box(errorStyle, w, h, "✗ "+message)
}
