package tui

import (
	"context"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hsbacot/shelfkit/client"
	"github.com/hsbacot/shelfkit/shelf"
	"github.com/hsbacot/shelfkit/sticker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	result  client.SearchResult
	queries []string
}

func (f *fakeSearcher) SearchResult(_ context.Context, query string) client.SearchResult {
	f.queries = append(f.queries, query)
	return f.result
}

func intPtr(v int) *int { return &v }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return model, cmd
}

func searchModel(t *testing.T, records ...client.BookRecord) (Model, *fakeSearcher) {
	t.Helper()
	fake := &fakeSearcher{result: client.SearchResult{TotalFound: len(records), Records: records}}
	m := NewModel("dune", Options{
		Client:    fake,
		CoversURL: "https://covers.example",
		Loader: sticker.LoaderFunc(func(context.Context, string) (sticker.Size, error) {
			return sticker.Size{Width: 180, Height: 270}, nil
		}),
	})
	m, _ = step(t, m, m.searchBooks()())
	return m, fake
}

func TestSearch_NoResultsIsError(t *testing.T) {
	m, fake := searchModel(t)

	assert.Equal(t, []string{"dune"}, fake.queries)
	assert.Equal(t, stateError, m.state)
	require.Error(t, m.Err())
	assert.Contains(t, m.Err().Error(), "no books found")
	assert.Contains(t, m.View(), "no books found")
}

func TestSearch_NilClientBehavesAsEmpty(t *testing.T) {
	m := NewModel("dune", Options{})
	m, _ = step(t, m, m.searchBooks()())
	assert.Equal(t, stateError, m.state)
}

func TestSearch_SingleResultPreviewsDirectly(t *testing.T) {
	m, _ := searchModel(t, client.BookRecord{ID: "/works/OL1W", Title: "Dune", Authors: []string{"Frank Herbert"}})

	assert.Equal(t, statePreviewing, m.state)
	assert.False(t, m.fromSearch)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "/works/OL1W", m.Selected().ID)

	// No cover id maps to the neutral missing state, not a failure.
	assert.True(t, m.preview.Missing())
	assert.Equal(t, sticker.StatePending, m.preview.State())

	view := m.View()
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Frank Herbert")
	assert.Contains(t, view, "No image")
	assert.NotContains(t, view, sticker.DefaultErrorMessage)
}

func TestSearch_ManyResultsOpenSelector(t *testing.T) {
	m, _ := searchModel(t,
		client.BookRecord{ID: "/works/OL1W", Title: "Dune", CoverID: intPtr(42)},
		client.BookRecord{ID: "/works/OL2W", Title: "Dune Messiah"},
	)
	require.Equal(t, stateSelectingBook, m.state)
	assert.Contains(t, m.View(), "Book Search")

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, statePreviewing, m.state)
	assert.True(t, m.fromSearch)
	assert.Equal(t, "Dune", m.title)
	require.NotNil(t, cmd)

	m, _ = step(t, m, cmd())
	assert.Equal(t, sticker.StateDisplayed, m.preview.State())
	assert.Contains(t, m.View(), "42-M.jpg")

	// q returns to the list instead of quitting
	m, cmd = step(t, m, keyRunes("q"))
	assert.Equal(t, stateSelectingBook, m.state)
	assert.Nil(t, cmd)
}

func TestSelector_CancelIsError(t *testing.T) {
	m, _ := searchModel(t,
		client.BookRecord{ID: "a", Title: "A"},
		client.BookRecord{ID: "b", Title: "B"},
	)
	m, cmd := step(t, m, keyRunes("q"))
	assert.Equal(t, stateError, m.state)
	assert.EqualError(t, m.Err(), "cancelled")
	assert.NotNil(t, cmd)
}

func TestPreview_AnimationFailureRaisesOneToast(t *testing.T) {
	m := NewModel("", Options{
		Sticker:      sticker.AnimationAsset{Data: []byte("not an animation")},
		StickerTitle: "broken.json",
	})
	require.Equal(t, statePreviewing, m.state)

	failed := m.preview.Init()()
	require.IsType(t, sticker.LoadFailedMsg{}, failed)

	m, cmd := step(t, m, failed)
	assert.NotNil(t, cmd, "toast expiry is scheduled")
	for i := 0; i < 3; i++ {
		m, _ = step(t, m, failed)
		_ = m.View()
	}

	assert.Equal(t, sticker.StateFailed, m.preview.State())
	assert.Equal(t, 1, m.toasts.len())
	view := m.View()
	assert.Contains(t, view, sticker.AnimationFailedNotice)
	assert.Contains(t, view, sticker.DefaultErrorMessage)

	m, _ = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Zero(t, m.toasts.len())
	assert.NotContains(t, m.View(), sticker.AnimationFailedNotice)
}

func TestPreview_ToastExpires(t *testing.T) {
	m := NewModel("", Options{Sticker: sticker.AnimationAsset{Data: []byte("{}")}})
	m, _ = step(t, m, m.preview.Init()())
	tst, ok := m.toasts.latest()
	require.True(t, ok)

	m, _ = step(t, m, toastExpiredMsg{id: tst.id})
	assert.Zero(t, m.toasts.len())
}

func TestPreview_SettingsOpenAndClose(t *testing.T) {
	store := shelf.NewStore(shelf.DefaultStyling())
	m := NewModel("", Options{Store: store, Sticker: sticker.ImageAsset{}})
	assert.Same(t, store, m.Store())

	m, cmd := step(t, m, keyRunes("s"))
	require.Equal(t, stateSettings, m.state)
	require.NotNil(t, m.settings)
	_ = cmd
	assert.Contains(t, m.View(), "Shelf dividers")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, statePreviewing, m.state)
	assert.Nil(t, m.settings)
	assert.Equal(t, shelf.DefaultStyling(), store.Styling())
}

func TestPreview_QuitWhenNotFromSearch(t *testing.T) {
	m := NewModel("", Options{Sticker: sticker.ImageAsset{}})
	_, cmd := step(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSizeReachesPreview(t *testing.T) {
	m := NewModel("", Options{Sticker: sticker.ImageAsset{}})
	assert.Zero(t, m.previewWidth())
	assert.Zero(t, m.previewHeight())

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 84, Height: 30})
	assert.Equal(t, 80, m.previewWidth())
	assert.Equal(t, 30-chromeRows, m.previewHeight())
}

func TestToastQueue(t *testing.T) {
	q := &toastQueue{}
	_, ok := q.latest()
	assert.False(t, ok)
	assert.False(t, q.dismiss())

	q.push("one")
	q.push("two")
	assert.Len(t, q.expiryCmds(), 2)
	assert.Empty(t, q.expiryCmds(), "expiry is scheduled once per toast")

	latest, _ := q.latest()
	assert.Equal(t, "two", latest.text)

	q.remove(latest.id)
	latest, _ = q.latest()
	assert.Equal(t, "one", latest.text)

	assert.True(t, q.dismiss())
	assert.Zero(t, q.len())
}

func TestSortBooks(t *testing.T) {
	books := []client.BookRecord{
		{ID: "1", Title: "beta", FirstPublishYear: intPtr(1990), Authors: []string{"Zed"}},
		{ID: "2", Title: "Alpha"},
		{ID: "3", Title: "gamma", FirstPublishYear: intPtr(2001), Authors: []string{"adams"}},
	}
	ids := func(bs []client.BookRecord) []string {
		out := make([]string, len(bs))
		for i, b := range bs {
			out[i] = b.ID
		}
		return out
	}

	tests := []struct {
		mode sortMode
		want []string
	}{
		{sortByTitle, []string{"2", "1", "3"}},
		{sortByYear, []string{"3", "1", "2"}},
		{sortByAuthor, []string{"3", "1", "2"}},
	}
	for _, tt := range tests {
		t.Run(sortLabels[tt.mode], func(t *testing.T) {
			sorted := append([]client.BookRecord(nil), books...)
			sortBooks(sorted, tt.mode)
			assert.Equal(t, tt.want, ids(sorted))
		})
	}

	subset := []client.BookRecord{books[2], books[0]}
	assert.Equal(t, []string{"1", "3"}, ids(relevanceOrder(books, subset)))
}

func TestSelectorFilter(t *testing.T) {
	sel := newBookSelector(client.SearchResult{TotalFound: 50, Records: []client.BookRecord{
		{ID: "a", Title: "Dune", Authors: []string{"Frank Herbert"}},
		{ID: "b", Title: "Hyperion", Authors: []string{"Dan Simmons"}},
	}})
	assert.Equal(t, "📚 Book Search (2 of 50 matches)", sel.list.Title)

	sel, _ = sel.Update(keyRunes("/"))
	require.True(t, sel.filterActive)
	sel, _ = sel.Update(keyRunes("herb"))
	require.Len(t, sel.books, 1)
	assert.Equal(t, "a", sel.books[0].ID)

	sel, _ = sel.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, sel.filterActive)
	assert.Len(t, sel.books, 2)
}

func TestSelectorFilter_BackspaceRemovesWholeRune(t *testing.T) {
	sel := newBookSelector(client.SearchResult{Records: []client.BookRecord{
		{ID: "a", Title: "Cien años de soledad", Authors: []string{"Gabriel García Márquez"}},
		{ID: "b", Title: "Dune", Authors: []string{"Frank Herbert"}},
	}})

	sel, _ = sel.Update(keyRunes("/"))
	sel, _ = sel.Update(keyRunes("garcí"))
	require.Len(t, sel.books, 1)

	sel, _ = sel.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "garc", sel.filterInput)
	assert.True(t, utf8.ValidString(sel.filterInput))
	require.Len(t, sel.books, 1)
	assert.Equal(t, "a", sel.books[0].ID)

	sel, _ = sel.Update(keyRunes("ı"))
	sel, _ = sel.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "garc", sel.filterInput)
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 10))
	assert.Equal(t, "one two...", wrapText("one two three four", 8))
}

func TestPreviewKeyHelp(t *testing.T) {
	assert.Equal(t, "s settings • x dismiss • q quit", previewKeys.help(false))
	assert.Equal(t, "s settings • x dismiss • q back", previewKeys.help(true))
}
