package tui

import "github.com/hsbacot/shelfkit/client"

// Message types for Bubble Tea state transitions

type searchCompleteMsg struct {
	result client.SearchResult
}

type toastExpiredMsg struct {
	id int
}
