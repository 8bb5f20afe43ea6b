package sticker

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// AnimationFailedNotice is the notification text sent when an animation
// cannot be played.
const AnimationFailedNotice = "Failed to load sticker animation"

// maxFPS caps the redraw rate of the terminal animation.
const maxFPS = 30

// AnimationModel is the animation leaf. It autoplays in a loop once decoded
// and never handles mouse input, so overlays above it receive every click.
type AnimationModel struct {
	id     string
	data   []byte
	state  RenderState
	meta   Lottie
	frame  int
	err    error
	width  int
	height int

	notify Notifier
}

// NewAnimation creates an animation leaf for a Lottie payload.
func NewAnimation(data []byte, opts Options) AnimationModel {
	opts = opts.withDefaults()
	return AnimationModel{
		id:     uuid.NewString(),
		data:   data,
		state:  StatePending,
		width:  opts.Width,
		height: opts.Height,
		notify: opts.Notifier,
	}
}

// ID returns the leaf instance ID used to route load messages.
func (m AnimationModel) ID() string { return m.id }

// State returns the current load state.
func (m AnimationModel) State() RenderState { return m.state }

// Missing reports whether there is no payload to play.
func (m AnimationModel) Missing() bool { return len(m.data) == 0 }

// Err returns the decode error once the leaf has failed.
func (m AnimationModel) Err() error { return m.err }

// Frame returns the current frame within the loop.
func (m AnimationModel) Frame() int { return m.frame }

// SetSize sets the container size in cells.
func (m *AnimationModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

// Init decodes the payload off the event loop.
func (m AnimationModel) Init() tea.Cmd {
	if m.Missing() {
		return nil
	}
	id, data := m.id, m.data
	return func() tea.Msg {
		meta, err := DecodeLottie(data)
		if err != nil {
			return LoadFailedMsg{ID: id, Err: err}
		}
		return animationReadyMsg{id: id, meta: meta}
	}
}

// Update handles decode results and playback ticks addressed to this leaf.
func (m AnimationModel) Update(msg tea.Msg) (AnimationModel, tea.Cmd) {
	switch msg := msg.(type) {
	case animationReadyMsg:
		if msg.id != m.id || m.state != StatePending {
			return m, nil
		}
		m.state = StateDisplayed
		m.meta = msg.meta
		return m, m.tick()

	case LoadFailedMsg:
		if msg.ID != m.id || m.state != StatePending {
			return m, nil
		}
		m.state = StateFailed
		m.err = msg.Err
		if m.notify != nil {
			m.notify(AnimationFailedNotice)
		}
		return m, nil

	case frameMsg:
		if msg.id != m.id || m.state != StateDisplayed {
			return m, nil
		}
		m.frame = (m.frame + 1) % m.meta.Frames()
		return m, m.tick()
	}
	return m, nil
}

func (m AnimationModel) tick() tea.Cmd {
	interval := m.meta.FrameInterval()
	if floor := time.Second / maxFPS; interval < floor {
		interval = floor
	}
	id := m.id
	return tea.Tick(interval, func(_ time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

// View renders the current frame, the placeholder, or the error view.
func (m AnimationModel) View() string {
	w, h := normalizeSize(m.width, m.height)
	switch {
	case m.Missing():
		return box(placeholderStyle, w, h, "No animation")
	case m.state == StateFailed:
		return ErrorView("", w, h)
	case m.state == StatePending:
		return box(animationStyle, w, h, "…")
	}

	name := m.meta.Name
	if name == "" {
		name = "sticker"
	}
	total := m.meta.Frames()
	barWidth := max(w-6, 4)
	filled := (m.frame + 1) * barWidth / total
	bar := progressStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)

	content := lipgloss.JoinVertical(lipgloss.Center,
		"▶ "+name,
		fmt.Sprintf("frame %d/%d", m.frame+1, total),
		bar,
	)
	return box(animationStyle, w, h, content)
}
