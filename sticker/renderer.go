package sticker

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Notifier shows a user-visible notification such as a toast. Only the
// animation leaf calls it.
type Notifier func(message string)

// Options configures leaves created by a Renderer.
type Options struct {
	Context  context.Context
	Loader   Loader
	Notifier Notifier
	Width    int
	Height   int
}

func (o Options) withDefaults() Options {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Loader == nil {
		o.Loader = HTTPLoader{}
	}
	return o
}

// Renderer dispatches a Descriptor to exactly one leaf. It holds no load
// state itself.
type Renderer struct {
	kind      Kind
	image     *ImageModel
	animation *AnimationModel
}

// New builds the leaf for desc. A nil descriptor is an image with no URL.
func New(desc Descriptor, opts Options) Renderer {
	switch d := desc.(type) {
	case AnimationAsset:
		leaf := NewAnimation(d.Data, opts)
		return Renderer{kind: KindAnimation, animation: &leaf}
	case ImageAsset:
		leaf := NewImage(d.URL, opts)
		return Renderer{kind: KindImage, image: &leaf}
	default:
		leaf := NewImage("", opts)
		return Renderer{kind: KindImage, image: &leaf}
	}
}

// Kind returns the kind of the mounted leaf.
func (r Renderer) Kind() Kind { return r.kind }

// Image returns the image leaf, or nil when an animation is mounted.
func (r Renderer) Image() *ImageModel { return r.image }

// Animation returns the animation leaf, or nil when an image is mounted.
func (r Renderer) Animation() *AnimationModel { return r.animation }

// State reports the mounted leaf's load state.
func (r Renderer) State() RenderState {
	if r.animation != nil {
		return r.animation.State()
	}
	if r.image != nil {
		return r.image.State()
	}
	return StatePending
}

// Missing reports whether the mounted leaf has no content.
func (r Renderer) Missing() bool {
	if r.animation != nil {
		return r.animation.Missing()
	}
	return r.image == nil || r.image.Missing()
}

// SetSize resizes the mounted leaf.
func (r *Renderer) SetSize(w, h int) {
	if r.animation != nil {
		r.animation.SetSize(w, h)
	}
	if r.image != nil {
		r.image.SetSize(w, h)
	}
}

// Init implements tea.Model.
func (r Renderer) Init() tea.Cmd {
	if r.animation != nil {
		return r.animation.Init()
	}
	if r.image != nil {
		return r.image.Init()
	}
	return nil
}

// Update forwards msg to the mounted leaf.
func (r Renderer) Update(msg tea.Msg) (Renderer, tea.Cmd) {
	var cmd tea.Cmd
	if r.animation != nil {
		leaf, c := r.animation.Update(msg)
		r.animation, cmd = &leaf, c
	}
	if r.image != nil {
		leaf, c := r.image.Update(msg)
		r.image, cmd = &leaf, c
	}
	return r, cmd
}

// View implements tea.Model.
func (r Renderer) View() string {
	if r.animation != nil {
		return r.animation.View()
	}
	if r.image != nil {
		return r.image.View()
	}
	return ErrorView("", 0, 0)
}
