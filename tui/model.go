package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/hsbacot/shelfkit/client"
	"github.com/hsbacot/shelfkit/shelf"
	"github.com/hsbacot/shelfkit/sticker"
)

type state int

const (
	stateInitializing state = iota
	stateSearching
	stateSelectingBook
	statePreviewing
	stateSettings
	stateError
)

// Searcher is the part of the catalog client the TUI needs
type Searcher interface {
	SearchResult(ctx context.Context, query string) client.SearchResult
}

// Options contains configuration for the Model
type Options struct {
	Context   context.Context
	Logger    *log.Logger
	Client    Searcher
	Store     *shelf.Store
	CoversURL string
	CoverSize client.CoverSize
	Loader    sticker.Loader

	// Sticker, when set, skips the search and previews this asset directly.
	Sticker      sticker.Descriptor
	StickerTitle string
}

// Model is the Bubble Tea model for shelfkit
type Model struct {
	// Configuration
	ctx       context.Context
	query     string
	coversURL string
	coverSize client.CoverSize
	loader    sticker.Loader

	// State
	state state
	err   error

	// Data
	result     client.SearchResult
	selected   *client.BookRecord
	title      string
	fromSearch bool

	// UI Components
	spinner      spinner.Model
	bookSelector bookSelectorModel
	preview      sticker.Renderer
	settings     *shelf.DividersForm
	toasts       *toastQueue
	width        int
	height       int
	logger       *log.Logger

	// Services
	client Searcher
	store  *shelf.Store
}

// NewModel creates a new Bubble Tea model
func NewModel(query string, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = shelf.NewStore(shelf.DefaultStyling())
	}

	m := Model{
		ctx:       ctx,
		query:     query,
		coversURL: opts.CoversURL,
		coverSize: opts.CoverSize,
		loader:    opts.Loader,
		state:     stateSearching,
		spinner:   s,
		toasts:    &toastQueue{},
		logger:    opts.Logger,
		client:    opts.Client,
		store:     store,
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if opts.Sticker != nil {
		m.title = opts.StickerTitle
		m.preview = sticker.New(opts.Sticker, m.stickerOptions())
		m.state = statePreviewing
	}
	return m
}

// Err returns the error if one occurred
func (m Model) Err() error {
	return m.err
}

// Selected returns the book chosen in the selector, if any
func (m Model) Selected() *client.BookRecord {
	return m.selected
}

// Store returns the shelf styling store the settings form edits
func (m Model) Store() *shelf.Store {
	return m.store
}

func (m Model) stickerOptions() sticker.Options {
	return sticker.Options{
		Context:  m.ctx,
		Loader:   m.loader,
		Notifier: m.toasts.push,
		Width:    m.previewWidth(),
		Height:   m.previewHeight(),
	}
}
