package client

import (
	"fmt"
	"strings"
)

const (
	DefaultCoversURL = "https://covers.openlibrary.org"
	PlaceholderPath  = "/placeholder.svg"
)

// CoverSize selects the size suffix of a cover image. The zero value is Medium.
type CoverSize int

const (
	CoverMedium CoverSize = iota
	CoverSmall
	CoverLarge
)

func (s CoverSize) suffix() string {
	switch s {
	case CoverSmall:
		return "-S"
	case CoverLarge:
		return "-L"
	default:
		return "-M"
	}
}

func (s CoverSize) String() string {
	switch s {
	case CoverSmall:
		return "small"
	case CoverLarge:
		return "large"
	default:
		return "medium"
	}
}

// ParseCoverSize accepts S/M/L or small/medium/large in any case.
func ParseCoverSize(value string) (CoverSize, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "m", "medium":
		return CoverMedium, nil
	case "s", "small":
		return CoverSmall, nil
	case "l", "large":
		return CoverLarge, nil
	}
	return CoverMedium, fmt.Errorf("unknown cover size %q", value)
}

// CoverURL derives the cover image URL for coverID on the public covers host.
// A nil coverID yields PlaceholderPath.
func CoverURL(coverID *int, size CoverSize) string {
	return CoverURLAt(DefaultCoversURL, coverID, size)
}

// CoverURLAt is CoverURL against an explicit covers host.
func CoverURLAt(base string, coverID *int, size CoverSize) string {
	if coverID == nil {
		return PlaceholderPath
	}
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultCoversURL
	}
	return fmt.Sprintf("%s/b/id/%d%s.jpg", base, *coverID, size.suffix())
}
