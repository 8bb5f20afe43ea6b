// Package sticker renders sticker and cover assets inside a Bubble Tea
// program. A Renderer picks the image or animation leaf for a Descriptor;
// each leaf tracks its own load state and falls back to the error view when
// its asset fails to load.
package sticker

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPayload is returned when an asset has no usable content.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrInvalidAnimation wraps every animation decode failure.
	ErrInvalidAnimation = errors.New("invalid animation")
)

// Kind is the declared content kind of a sticker.
type Kind int

const (
	KindImage Kind = iota
	KindAnimation
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAnimation:
		return "animation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Descriptor identifies what a Renderer should show. The only
// implementations are ImageAsset and AnimationAsset.
type Descriptor interface {
	Kind() Kind
	descriptor()
}

// ImageAsset is a still image addressed by URL or local path.
type ImageAsset struct {
	URL string
}

func (ImageAsset) Kind() Kind  { return KindImage }
func (ImageAsset) descriptor() {}

// AnimationAsset carries a Lottie JSON document.
type AnimationAsset struct {
	Data []byte
}

func (AnimationAsset) Kind() Kind  { return KindAnimation }
func (AnimationAsset) descriptor() {}

// RenderState is the load state of a single leaf.
type RenderState int

const (
	StatePending RenderState = iota
	StateDisplayed
	StateFailed
)

func (s RenderState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDisplayed:
		return "displayed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s RenderState) Terminal() bool {
	return s == StateDisplayed || s == StateFailed
}
