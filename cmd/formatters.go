package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hsbacot/shelfkit/client"
	"github.com/hsbacot/shelfkit/shelf"
)

// PrintResults writes a search result as a table or as JSON
func PrintResults(w io.Writer, result client.SearchResult, covers string, size client.CoverSize, jsonOutput bool) error {
	if jsonOutput {
		books := make([]bookOutput, len(result.Records))
		for i, rec := range result.Records {
			books[i] = bookOutput{BookRecord: rec, CoverURL: client.CoverURLAt(covers, rec.CoverID, size)}
		}
		return printJSON(w, map[string]interface{}{
			"totalFound":  result.TotalFound,
			"startOffset": result.StartOffset,
			"books":       books,
		})
	}

	if len(result.Records) == 0 {
		fmt.Fprintln(w, "No books found")
		return nil
	}

	printHeader(w, fmt.Sprintf("Showing %d of %s matches", len(result.Records), humanize.Comma(int64(result.TotalFound))))
	for i, rec := range result.Records {
		fmt.Fprintf(w, "%2d. %-40s %6s  %s\n", i+1, truncate(rec.Title, 40), formatYear(rec.FirstPublishYear), formatAuthors(rec.Authors))
		fmt.Fprintf(w, "    └─ %s\n", client.CoverURLAt(covers, rec.CoverID, size))
	}
	return nil
}

type bookOutput struct {
	client.BookRecord
	CoverURL string `json:"coverUrl"`
}

// printDividers writes divider settings as a table or as JSON
func printDividers(w io.Writer, d shelf.Dividers, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(w, d)
	}

	printHeader(w, "Shelf Dividers")
	fmt.Fprintf(w, "Orientation:       %s\n", d.Orientation)
	fmt.Fprintf(w, "Books per section: %s\n", formatAxis(d.BooksPerSection, d.Orientation.Vertical()))
	fmt.Fprintf(w, "Books per row:     %s\n", formatAxis(d.BooksPerRow, d.Orientation.Horizontal()))
	return nil
}

func formatAxis(n int, enabled bool) string {
	if !enabled {
		return fmt.Sprintf("%d (off)", n)
	}
	return fmt.Sprintf("%d", n)
}

func formatYear(year *int) string {
	if year == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *year)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return "unknown author"
	case 1, 2:
		return strings.Join(authors, ", ")
	default:
		return fmt.Sprintf("%s and %d more", authors[0], len(authors)-1)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printHeader prints a styled header
func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("━", len([]rune(title))))
	fmt.Fprintln(w)
}

// printJSON marshals data to JSON and prints it
func printJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
