package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsbacot/shelfkit/client"
	"github.com/hsbacot/shelfkit/shelf"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, client.DefaultCatalogURL, cfg.CatalogURL)
}

func TestLoad_ParsesAndTrims(t *testing.T) {
	path := writeConfig(t, `
catalog_url = "  http://catalog.local/  "
covers_url = "http://covers.local/"
cover_size = "L"
user_agent = " shelf-test/1 "

[dividers]
orientation = "both"
books_per_section = 3
books_per_row = 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://catalog.local", cfg.CatalogURL)
	assert.Equal(t, "http://covers.local", cfg.CoversURL)
	assert.Equal(t, client.CoverLarge, cfg.CoverSize)
	assert.Equal(t, "shelf-test/1", cfg.UserAgent)
	assert.Equal(t, shelf.Dividers{Orientation: shelf.OrientationBoth, BooksPerSection: 3, BooksPerRow: 8}, cfg.Styling.Dividers)
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
catalog_url = "   "
cover_size = ""
`))
	require.NoError(t, err)
	assert.Equal(t, client.DefaultCatalogURL, cfg.CatalogURL)
	assert.Equal(t, client.DefaultCoversURL, cfg.CoversURL)
	assert.Equal(t, client.CoverMedium, cfg.CoverSize)
	assert.Equal(t, shelf.DefaultStyling(), cfg.Styling)
}

func TestLoad_PartialDividersKeepDefaults(t *testing.T) {
	defaults := shelf.DefaultStyling().Dividers
	tests := []struct {
		name string
		body string
		want shelf.Dividers
	}{
		{
			name: "orientation only",
			body: "[dividers]\norientation = \"Vertical\"\n",
			want: shelf.Dividers{Orientation: shelf.OrientationVertical, BooksPerSection: defaults.BooksPerSection, BooksPerRow: defaults.BooksPerRow},
		},
		{
			name: "row count only",
			body: "[dividers]\nbooks_per_row = 2\n",
			want: shelf.Dividers{Orientation: defaults.Orientation, BooksPerSection: defaults.BooksPerSection, BooksPerRow: 2},
		},
		{
			name: "empty table",
			body: "[dividers]\n",
			want: defaults,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Styling.Dividers)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid toml":          `catalog_url = [`,
		"bad cover size":        `cover_size = "huge"`,
		"dividers out of range": "[dividers]\norientation = \"vertical\"\nbooks_per_section = 40\nbooks_per_row = 1\n",
		"partial out of range":  "[dividers]\nbooks_per_row = 0\n",
		"unknown orientation":   "[dividers]\norientation = \"diagonal\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse config")
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "a/b"), got)

	_, err = expandPath("   ")
	assert.Error(t, err)
}
