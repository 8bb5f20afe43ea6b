package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/hsbacot/shelfkit/client"
	"github.com/hsbacot/shelfkit/shelf"
	"github.com/hsbacot/shelfkit/sticker"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.state == statePreviewing {
		return tea.Batch(m.spinner.Tick, m.preview.Init())
	}
	return tea.Batch(
		m.spinner.Tick,
		m.searchBooks(),
	)
}

// Update handles messages and state transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.preview.SetSize(m.previewWidth(), m.previewHeight())
		if m.state == stateSelectingBook {
			var cmd tea.Cmd
			m.bookSelector, cmd = m.bookSelector.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case stateSelectingBook:
			return m.updateSelector(msg)
		case stateSettings:
			return m.updateSettings(msg)
		case statePreviewing:
			return m.handlePreviewKey(msg)
		}

	case tea.MouseMsg:
		// The toast overlay takes clicks; sticker leaves never see them.
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.toasts.dismiss()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchCompleteMsg:
		m.result = msg.result
		records := msg.result.Records
		m.logger.Debug("Search completed", "query", m.query, "results", len(records), "total", msg.result.TotalFound)

		if len(records) == 0 {
			m.err = fmt.Errorf("no books found for %q", m.query)
			m.state = stateError
			return m, tea.Quit
		}

		m.fromSearch = len(records) > 1
		if len(records) == 1 {
			// Single result, preview it directly
			return m.startPreview(records[0])
		}

		m.state = stateSelectingBook
		m.bookSelector = newBookSelector(msg.result)
		if m.width > 0 {
			m.bookSelector.list.SetSize(m.width, m.height-2)
		}
		return m, nil

	case toastExpiredMsg:
		m.toasts.remove(msg.id)
		return m, nil
	}

	if m.state == stateSettings {
		return m.updateSettings(msg)
	}
	if m.state == statePreviewing {
		return m.updatePreview(msg)
	}
	return m, nil
}

func (m Model) updateSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.bookSelector, cmd = m.bookSelector.Update(msg)

	if !m.bookSelector.done {
		return m, cmd
	}
	if m.bookSelector.choice == nil {
		// User cancelled
		m.err = fmt.Errorf("cancelled")
		m.state = stateError
		return m, tea.Quit
	}
	return m.startPreview(*m.bookSelector.choice)
}

func (m Model) startPreview(rec client.BookRecord) (tea.Model, tea.Cmd) {
	m.selected = &rec
	m.title = rec.Title

	url := client.CoverURLAt(m.coversURL, rec.CoverID, m.coverSize)
	if url == client.PlaceholderPath {
		// The web placeholder asset has no terminal rendition.
		url = ""
	}
	m.logger.Debug("Previewing cover", "book", rec.ID, "url", url)

	m.preview = sticker.New(sticker.ImageAsset{URL: url}, m.stickerOptions())
	m.state = statePreviewing
	return m, m.preview.Init()
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, previewKeys.Settings):
		return m.openSettings()
	case key.Matches(msg, previewKeys.Dismiss):
		m.toasts.dismiss()
		return m, nil
	case key.Matches(msg, previewKeys.Back):
		if m.fromSearch {
			// Back to the result list
			m.bookSelector.done = false
			m.bookSelector.choice = nil
			m.state = stateSelectingBook
			return m, nil
		}
		return m, tea.Quit
	}
	return m.updatePreview(msg)
}

func (m Model) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	cmds := append([]tea.Cmd{cmd}, m.toasts.expiryCmds()...)
	return m, tea.Batch(cmds...)
}

// openSettings is the settings trigger of the preview screen.
func (m Model) openSettings() (tea.Model, tea.Cmd) {
	m.settings = shelf.NewDividersForm(m.store)
	m.state = stateSettings
	return m, m.settings.Form.Init()
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.settings == nil {
		m.state = statePreviewing
		return m, nil
	}

	var previewCmd tea.Cmd
	if km, isKey := msg.(tea.KeyMsg); isKey {
		if km.String() == "esc" {
			// Close without applying
			m.settings = nil
			m.state = statePreviewing
			return m, nil
		}
	} else {
		// Keep the preview animating behind the form
		m.preview, previewCmd = m.preview.Update(msg)
	}

	form, cmd := m.settings.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.settings.Form = f
	}
	return m.afterSettings(tea.Batch(previewCmd, cmd))
}

func (m Model) afterSettings(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch m.settings.Form.State {
	case huh.StateCompleted:
		if err := m.settings.Apply(m.store); err != nil {
			m.logger.Warn("Divider settings rejected", "error", err)
			m.toasts.push(fmt.Sprintf("Settings not saved: %v", err))
		} else {
			d := m.store.Dividers()
			m.logger.Debug("Divider settings updated", "orientation", d.Orientation, "booksPerSection", d.BooksPerSection, "booksPerRow", d.BooksPerRow)
		}
		m.settings = nil
		m.state = statePreviewing
	case huh.StateAborted:
		m.settings = nil
		m.state = statePreviewing
	}
	return m, tea.Batch(append([]tea.Cmd{cmd}, m.toasts.expiryCmds()...)...)
}

// Command functions (run async)

func (m Model) searchBooks() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return searchCompleteMsg{}
		}
		return searchCompleteMsg{result: m.client.SearchResult(m.ctx, m.query)}
	}
}
