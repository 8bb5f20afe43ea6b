package sticker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Lottie holds the header fields of a Lottie document needed for playback.
type Lottie struct {
	Version   string            `json:"v"`
	Name      string            `json:"nm"`
	FrameRate float64           `json:"fr"`
	InPoint   float64           `json:"ip"`
	OutPoint  float64           `json:"op"`
	Width     int               `json:"w"`
	Height    int               `json:"h"`
	Layers    []json.RawMessage `json:"layers"`
}

// DecodeLottie parses and validates a Lottie payload.
func DecodeLottie(data []byte) (Lottie, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Lottie{}, fmt.Errorf("%w: %w", ErrInvalidAnimation, ErrEmptyPayload)
	}
	var l Lottie
	if err := json.Unmarshal(data, &l); err != nil {
		return Lottie{}, fmt.Errorf("%w: %w", ErrInvalidAnimation, err)
	}
	switch {
	case l.FrameRate <= 0:
		return Lottie{}, fmt.Errorf("%w: frame rate %v", ErrInvalidAnimation, l.FrameRate)
	case l.OutPoint <= l.InPoint:
		return Lottie{}, fmt.Errorf("%w: out point %v not after in point %v", ErrInvalidAnimation, l.OutPoint, l.InPoint)
	case l.Width <= 0 || l.Height <= 0:
		return Lottie{}, fmt.Errorf("%w: canvas %dx%d", ErrInvalidAnimation, l.Width, l.Height)
	case l.Layers == nil:
		return Lottie{}, fmt.Errorf("%w: no layers", ErrInvalidAnimation)
	}
	return l, nil
}

// Frames is the number of frames in one loop.
func (l Lottie) Frames() int {
	return max(int(math.Ceil(l.OutPoint-l.InPoint)), 1)
}

// FrameInterval is the wall time between frames.
func (l Lottie) FrameInterval() time.Duration {
	if l.FrameRate <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / l.FrameRate)
}
