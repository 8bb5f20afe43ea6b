package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hsbacot/shelfkit/client"
)

// SelectBook presents an interactive selection menu for choosing a book
func SelectBook(records []client.BookRecord) (*client.BookRecord, error) {
	if len(records) == 0 {
		return nil, errors.New("no books to select from")
	}

	var selected int
	options := make([]huh.Option[int], len(records))
	for i, rec := range records {
		options[i] = huh.NewOption(BookLabel(rec), i)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Multiple books found - choose one:").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	if selected < 0 || selected >= len(records) {
		return nil, errors.New("selection not found")
	}
	return &records[selected], nil
}

// BookLabel is the one-line description of a book used in menus
func BookLabel(rec client.BookRecord) string {
	label := rec.Title
	if label == "" {
		label = rec.ID
	}
	if len(rec.Authors) > 0 {
		authors := strings.Join(rec.Authors, ", ")
		// Truncate long author lists
		if r := []rune(authors); len(r) > 60 {
			authors = string(r[:57]) + "..."
		}
		label = fmt.Sprintf("%s - %s", label, authors)
	}
	if rec.FirstPublishYear != nil {
		label = fmt.Sprintf("%s (%d)", label, *rec.FirstPublishYear)
	}
	return label
}
