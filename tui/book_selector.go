package tui

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hsbacot/shelfkit/client"
)

type bookItem struct {
	rec client.BookRecord
}

func (i bookItem) Title() string {
	// Primary line: Title + first publish year
	if i.rec.FirstPublishYear != nil {
		return fmt.Sprintf("%s  📅 %d", i.rec.Title, *i.rec.FirstPublishYear)
	}
	return i.rec.Title
}

func (i bookItem) Description() string {
	authors := "unknown author"
	if len(i.rec.Authors) > 0 {
		authors = wrapText(strings.Join(i.rec.Authors, ", "), 70)
	}
	cover := "no cover"
	if i.rec.CoverID != nil {
		cover = fmt.Sprintf("cover %d", *i.rec.CoverID)
	}
	return fmt.Sprintf("%s\n%s • %s", authors, i.rec.ID, cover)
}

func (i bookItem) FilterValue() string {
	return i.rec.Title + " " + strings.Join(i.rec.Authors, " ") + " " + i.rec.ID
}

type sortMode int

const (
	sortByRelevance sortMode = iota
	sortByTitle
	sortByYear
	sortByAuthor
)

var sortLabels = []string{"Relevance", "Title", "Year", "Author"}

type bookSelectorModel struct {
	list         list.Model
	books        []client.BookRecord
	allBooks     []client.BookRecord // Keep original for filtering
	totalFound   int
	choice       *client.BookRecord
	done         bool
	sortMode     sortMode
	filterActive bool
	filterInput  string
}

func newBookSelector(result client.SearchResult) bookSelectorModel {
	books := make([]client.BookRecord, len(result.Records))
	copy(books, result.Records)

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(1)
	delegate.SetHeight(3)

	// Show up to 6 books at once
	itemCount := min(len(books), 6)
	listHeight := itemCount*4 + 4

	l := list.New(toItems(books), delegate, 80, listHeight)
	l.Title = selectorTitle(len(books), result.TotalFound)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false) // We'll handle filtering ourselves
	l.SetShowHelp(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		MarginLeft(2)

	return bookSelectorModel{
		list:       l,
		books:      books,
		allBooks:   books,
		totalFound: result.TotalFound,
		sortMode:   sortByRelevance,
	}
}

func (m bookSelectorModel) Update(msg tea.Msg) (bookSelectorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle filter input first so letters reach the filter
		if m.filterActive {
			switch msg.String() {
			case "esc", "/":
				m.filterActive = false
				m.filterInput = ""
				return m.applyFilter(), nil
			case "enter":
				m.filterActive = false
				return m, nil
			case "backspace":
				if len(m.filterInput) > 0 {
					_, size := utf8.DecodeLastRuneInString(m.filterInput)
					m.filterInput = m.filterInput[:len(m.filterInput)-size]
					m = m.applyFilter()
				}
				return m, nil
			case "ctrl+c":
				m.done = true
				return m, tea.Quit
			}
			if len(msg.Runes) > 0 {
				m.filterInput += string(msg.Runes)
				m = m.applyFilter()
			}
			return m, nil
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(bookItem); ok {
				rec := item.rec
				m.choice = &rec
				m.done = true
				return m, nil
			}
		case "/":
			m.filterActive = true
			return m, nil
		case "s":
			// Cycle through sort modes
			m.sortMode = (m.sortMode + 1) % sortMode(len(sortLabels))
			m = m.resort()
			return m, nil
		case "q", "esc":
			m.done = true
			return m, nil
		case "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m bookSelectorModel) View() string {
	view := m.list.View()

	if m.filterActive {
		filterStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
		view += "\n" + filterStyle.Render(fmt.Sprintf("Filter: %s_", m.filterInput))
	}

	sortStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	view += "\n" + sortStyle.Render(fmt.Sprintf("Sort: %s ▼", sortLabels[m.sortMode]))

	return "\n" + view
}

func (m bookSelectorModel) resort() bookSelectorModel {
	sorted := make([]client.BookRecord, len(m.books))
	copy(sorted, m.books)
	if m.sortMode == sortByRelevance {
		sorted = relevanceOrder(m.allBooks, sorted)
	}
	sortBooks(sorted, m.sortMode)

	m.list.SetItems(toItems(sorted))
	m.books = sorted
	return m
}

func (m bookSelectorModel) applyFilter() bookSelectorModel {
	if m.filterInput == "" {
		m.books = m.allBooks
		m.list.Title = selectorTitle(len(m.allBooks), m.totalFound)
		return m.resort()
	}

	needle := strings.ToLower(m.filterInput)
	filtered := []client.BookRecord{}
	for _, rec := range m.allBooks {
		if strings.Contains(strings.ToLower(bookItem{rec: rec}.FilterValue()), needle) {
			filtered = append(filtered, rec)
		}
	}

	m.books = filtered
	m.list.Title = selectorTitle(len(filtered), m.totalFound)
	return m.resort()
}

func toItems(books []client.BookRecord) []list.Item {
	items := make([]list.Item, len(books))
	for i, rec := range books {
		items[i] = bookItem{rec: rec}
	}
	return items
}

func selectorTitle(shown, total int) string {
	if total > shown {
		return fmt.Sprintf("📚 Book Search (%d of %d matches)", shown, total)
	}
	return fmt.Sprintf("📚 Book Search (%d results)", shown)
}

// relevanceOrder restores the catalog order for the books in subset.
func relevanceOrder(all, subset []client.BookRecord) []client.BookRecord {
	keep := make(map[string]int, len(subset))
	for _, rec := range subset {
		keep[rec.ID]++
	}
	out := make([]client.BookRecord, 0, len(subset))
	for _, rec := range all {
		if keep[rec.ID] > 0 {
			keep[rec.ID]--
			out = append(out, rec)
		}
	}
	return out
}

func sortBooks(books []client.BookRecord, mode sortMode) {
	switch mode {
	case sortByTitle:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
		})
	case sortByYear:
		// Newest first, undated last
		sort.SliceStable(books, func(i, j int) bool {
			yi, yj := books[i].FirstPublishYear, books[j].FirstPublishYear
			if yi == nil || yj == nil {
				return yi != nil && yj == nil
			}
			return *yi > *yj
		})
	case sortByAuthor:
		sort.SliceStable(books, func(i, j int) bool {
			return firstAuthor(books[i]) < firstAuthor(books[j])
		})
	}
}

func firstAuthor(rec client.BookRecord) string {
	if len(rec.Authors) == 0 {
		// Sorts after every real name
		return "\uffff"
	}
	return strings.ToLower(rec.Authors[0])
}

func wrapText(text string, width int) string {
	if len(text) <= width {
		return text
	}

	words := strings.Fields(text)
	var lines []string
	var currentLine string

	for _, word := range words {
		if len(currentLine)+len(word)+1 <= width {
			if currentLine != "" {
				currentLine += " "
			}
			currentLine += word
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	// Authors get a single line
	if len(lines) > 1 {
		lines = lines[:1]
		lines[0] += "..."
	}

	return strings.Join(lines, "\n")
}
