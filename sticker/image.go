package sticker

import (
	"context"
	"fmt"
	"math"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// cellAspect is how many pixels tall a terminal cell is per pixel of width.
const cellAspect = 2.0

// ImageModel is the image leaf. An empty URL renders the neutral
// "no image" placeholder and never loads anything.
type ImageModel struct {
	id     string
	url    string
	state  RenderState
	size   Size
	err    error
	width  int
	height int

	ctx    context.Context
	loader Loader
}

// NewImage creates an image leaf for url.
func NewImage(url string, opts Options) ImageModel {
	opts = opts.withDefaults()
	return ImageModel{
		id:     uuid.NewString(),
		url:    strings.TrimSpace(url),
		state:  StatePending,
		width:  opts.Width,
		height: opts.Height,
		ctx:    opts.Context,
		loader: opts.Loader,
	}
}

// ID returns the leaf instance ID used to route load messages.
func (m ImageModel) ID() string { return m.id }

// State returns the current load state.
func (m ImageModel) State() RenderState { return m.state }

// Missing reports whether there is no URL to display.
func (m ImageModel) Missing() bool { return m.url == "" }

// Err returns the load error once the leaf has failed.
func (m ImageModel) Err() error { return m.err }

// SetSize sets the container size in cells.
func (m *ImageModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

// Init starts the asynchronous load.
func (m ImageModel) Init() tea.Cmd {
	if m.Missing() || m.loader == nil {
		return nil
	}
	id, url, loader, ctx := m.id, m.url, m.loader, m.ctx
	return func() tea.Msg {
		size, err := loader.Load(ctx, url)
		if err != nil {
			return LoadFailedMsg{ID: id, Err: err}
		}
		return LoadedMsg{ID: id, Size: size}
	}
}

// Update applies load results addressed to this leaf. Only Pending can
// transition; late or duplicate results are ignored.
func (m ImageModel) Update(msg tea.Msg) (ImageModel, tea.Cmd) {
	if m.state != StatePending || m.Missing() {
		return m, nil
	}
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.ID == m.id {
			m.state = StateDisplayed
			m.size = msg.Size
		}
	case LoadFailedMsg:
		if msg.ID == m.id {
			m.state = StateFailed
			m.err = msg.Err
		}
	}
	return m, nil
}

// View renders the placeholder, the contain-fit image box, or the error view.
func (m ImageModel) View() string {
	w, h := normalizeSize(m.width, m.height)
	switch {
	case m.Missing():
		return box(placeholderStyle, w, h, "No image")
	case m.state == StateFailed:
		return ErrorView("", w, h)
	}

	bw, bh := containFit(w, h, m.size)
	label := path.Base(m.url)
	if m.size.Width > 0 && m.size.Height > 0 {
		label = lipgloss.JoinVertical(lipgloss.Center, label, sizeLabel(m.size))
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box(imageStyle, bw, bh, label))
}

// containFit scales an image of the given pixel size to the largest box that
// fits in a w×h cell container without cropping. Unknown sizes fill it.
func containFit(w, h int, size Size) (int, int) {
	if size.Width <= 0 || size.Height <= 0 {
		return w, h
	}
	pxW := float64(w)
	pxH := float64(h) * cellAspect
	scale := math.Min(pxW/float64(size.Width), pxH/float64(size.Height))

	bw := int(math.Round(float64(size.Width) * scale))
	bh := int(math.Round(float64(size.Height) * scale / cellAspect))
	return clamp(bw, 1, w), clamp(bh, 1, h)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func sizeLabel(s Size) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("%d×%d", s.Width, s.Height))
}
