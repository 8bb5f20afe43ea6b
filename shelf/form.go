package shelf

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

const (
	minBooksPerSection = 2
	maxBooksPerSection = 10
	minBooksPerRow     = 1
	maxBooksPerRow     = 10
)

// DividersForm edits the divider settings of a Store. Inputs for an axis
// the chosen orientation does not draw are hidden.
type DividersForm struct {
	Form *huh.Form

	orientation Orientation
	perSection  string
	perRow      string
}

// NewDividersForm builds a form seeded from the store's current settings.
func NewDividersForm(store *Store) *DividersForm {
	d := store.Dividers()
	f := &DividersForm{
		orientation: d.Orientation,
		perSection:  strconv.Itoa(d.BooksPerSection),
		perRow:      strconv.Itoa(d.BooksPerRow),
	}

	options := make([]huh.Option[Orientation], 0, len(Orientations()))
	for _, o := range Orientations() {
		options = append(options, huh.NewOption(string(o), o))
	}

	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Orientation]().
				Title("Divider orientation").
				Options(options...).
				Value(&f.orientation),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Books per section").
				Description(fmt.Sprintf("%d–%d", minBooksPerSection, maxBooksPerSection)).
				Value(&f.perSection).
				Validate(rangeValidator(minBooksPerSection, maxBooksPerSection)),
		).WithHideFunc(func() bool { return !f.orientation.Vertical() }),
		huh.NewGroup(
			huh.NewInput().
				Title("Books per row").
				Description(fmt.Sprintf("%d–%d", minBooksPerRow, maxBooksPerRow)).
				Value(&f.perRow).
				Validate(rangeValidator(minBooksPerRow, maxBooksPerRow)),
		).WithHideFunc(func() bool { return !f.orientation.Horizontal() }),
	)
	return f
}

// Apply writes the form values through the store's mutator. Orientation is
// applied first so the enabled axes match the new mode.
func (f *DividersForm) Apply(store *Store) error {
	if err := store.UpdateDividersSetting(KeyOrientation, f.orientation); err != nil {
		return err
	}
	if f.orientation.Vertical() {
		if err := store.UpdateDividersSetting(KeyBooksPerSection, f.perSection); err != nil {
			return err
		}
	}
	if f.orientation.Horizontal() {
		if err := store.UpdateDividersSetting(KeyBooksPerRow, f.perRow); err != nil {
			return err
		}
	}
	return nil
}

func rangeValidator(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := toInt(s)
		if err != nil {
			return err
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
