// Package config loads shelfkit settings from a TOML file. A missing file is
// not an error: every field has a default.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hsbacot/shelfkit/client"
	"github.com/hsbacot/shelfkit/shelf"
)

const defaultConfigPath = "~/.config/shelfkit/config.toml"

// Config holds the resolved settings.
type Config struct {
	CatalogURL string
	CoversURL  string
	CoverSize  client.CoverSize
	UserAgent  string
	Styling    shelf.Styling
}

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{
		CatalogURL: client.DefaultCatalogURL,
		CoversURL:  client.DefaultCoversURL,
		CoverSize:  client.CoverMedium,
		Styling:    shelf.DefaultStyling(),
	}
}

type rawConfig struct {
	CatalogURL string       `toml:"catalog_url"`
	CoversURL  string       `toml:"covers_url"`
	CoverSize  string       `toml:"cover_size"`
	UserAgent  string       `toml:"user_agent"`
	Dividers   *rawDividers `toml:"dividers"`
}

// rawDividers keeps unset keys nil so they fall back to the defaults.
type rawDividers struct {
	Orientation     *string `toml:"orientation"`
	BooksPerSection *int    `toml:"books_per_section"`
	BooksPerRow     *int    `toml:"books_per_row"`
}

// Load reads the config at path, or the default location when path is empty.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.CatalogURL); v != "" {
		cfg.CatalogURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.CoversURL); v != "" {
		cfg.CoversURL = strings.TrimRight(v, "/")
	}
	cfg.UserAgent = strings.TrimSpace(raw.UserAgent)

	size, err := client.ParseCoverSize(raw.CoverSize)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.CoverSize = size

	if raw.Dividers != nil {
		styling := shelf.Styling{Dividers: raw.Dividers.overlay(cfg.Styling.Dividers)}
		if err := styling.Validate(); err != nil {
			return Config{}, fmt.Errorf("parse config: dividers: %w", err)
		}
		cfg.Styling = styling
	}

	return cfg, nil
}

func (r rawDividers) overlay(d shelf.Dividers) shelf.Dividers {
	if r.Orientation != nil {
		d.Orientation = shelf.Orientation(strings.ToLower(strings.TrimSpace(*r.Orientation)))
	}
	if r.BooksPerSection != nil {
		d.BooksPerSection = *r.BooksPerSection
	}
	if r.BooksPerRow != nil {
		d.BooksPerRow = *r.BooksPerRow
	}
	return d
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
