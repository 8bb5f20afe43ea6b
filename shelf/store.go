// Package shelf owns the shelf styling settings shared by the divider
// controls. A single Store is created by the caller and handed to every
// control that reads or writes it.
package shelf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownSetting = errors.New("unknown divider setting")
	ErrOutOfRange     = errors.New("value out of range")
	ErrAxisDisabled   = errors.New("setting disabled for current orientation")
)

// Orientation selects which divider axes are drawn.
type Orientation string

const (
	OrientationNone       Orientation = "none"
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
	OrientationBoth       Orientation = "both"
)

// Orientations lists every orientation in display order.
func Orientations() []Orientation {
	return []Orientation{OrientationNone, OrientationVertical, OrientationHorizontal, OrientationBoth}
}

// Vertical reports whether vertical dividers (sections within a row) are on.
func (o Orientation) Vertical() bool {
	return o == OrientationVertical || o == OrientationBoth
}

// Horizontal reports whether horizontal dividers (between rows) are on.
func (o Orientation) Horizontal() bool {
	return o == OrientationHorizontal || o == OrientationBoth
}

// Setting keys accepted by UpdateDividersSetting.
const (
	KeyOrientation     = "orientation"
	KeyBooksPerSection = "booksPerSection"
	KeyBooksPerRow     = "booksPerRow"
)

// Dividers are the divider settings of a shelf.
type Dividers struct {
	Orientation     Orientation `toml:"orientation" json:"orientation" validate:"oneof=none vertical horizontal both"`
	BooksPerSection int         `toml:"books_per_section" json:"booksPerSection" validate:"min=2,max=10"`
	BooksPerRow     int         `toml:"books_per_row" json:"booksPerRow" validate:"min=1,max=10"`
}

// Styling is the full shelf styling state.
type Styling struct {
	Dividers Dividers `toml:"dividers" json:"dividers"`
}

// DefaultStyling returns the styling used when nothing is configured.
func DefaultStyling() Styling {
	return Styling{Dividers: Dividers{
		Orientation:     OrientationNone,
		BooksPerSection: 5,
		BooksPerRow:     5,
	}}
}

var validate = validator.New()

// Validate checks all range constraints.
func (s Styling) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return nil
}

// Store guards a Styling value for concurrent readers and writers.
type Store struct {
	mu      sync.RWMutex
	styling Styling
}

// NewStore creates a store seeded with initial, or the defaults if initial
// fails validation.
func NewStore(initial Styling) *Store {
	if err := initial.Validate(); err != nil {
		initial = DefaultStyling()
	}
	return &Store{styling: initial}
}

// Styling returns a copy of the current styling.
func (s *Store) Styling() Styling {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.styling
}

// Dividers returns a copy of the current divider settings.
func (s *Store) Dividers() Dividers {
	return s.Styling().Dividers
}

// UpdateDividersSetting sets one divider field. Numeric fields accept int or
// a decimal string. A field whose axis is off for the current orientation
// cannot be changed.
func (s *Store) UpdateDividersSetting(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.styling
	d := &next.Dividers
	switch key {
	case KeyOrientation:
		o, err := toOrientation(value)
		if err != nil {
			return err
		}
		d.Orientation = o
	case KeyBooksPerSection:
		if !d.Orientation.Vertical() {
			return fmt.Errorf("%w: %s", ErrAxisDisabled, key)
		}
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		d.BooksPerSection = n
	case KeyBooksPerRow:
		if !d.Orientation.Horizontal() {
			return fmt.Errorf("%w: %s", ErrAxisDisabled, key)
		}
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		d.BooksPerRow = n
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	if err := validate.Struct(next); err != nil {
		return fmt.Errorf("%w: %s=%v", ErrOutOfRange, key, value)
	}
	s.styling = next
	return nil
}

func toOrientation(value any) (Orientation, error) {
	var raw string
	switch v := value.(type) {
	case Orientation:
		raw = string(v)
	case string:
		raw = v
	default:
		return "", fmt.Errorf("orientation: unsupported type %T", value)
	}
	return Orientation(strings.ToLower(strings.TrimSpace(raw))), nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}
