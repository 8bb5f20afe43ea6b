package sticker

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/webp"
)

// Size is the intrinsic pixel size of a loaded image. A zero Size means the
// dimensions are unknown and the image fills its container.
type Size struct {
	Width  int
	Height int
}

// Loader fetches an image and reports its intrinsic size.
type Loader interface {
	Load(ctx context.Context, url string) (Size, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, url string) (Size, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, url string) (Size, error) {
	return f(ctx, url)
}

// HTTPLoader loads http(s) URLs with an http.Client and anything else from
// the local filesystem. Only the image header is decoded.
type HTTPLoader struct {
	Client *http.Client
}

// Load implements Loader.
func (l HTTPLoader) Load(ctx context.Context, url string) (Size, error) {
	if strings.TrimSpace(url) == "" {
		return Size{}, ErrEmptyPayload
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return l.loadRemote(ctx, url)
	}
	return loadFile(url)
}

func (l HTTPLoader) loadRemote(ctx context.Context, url string) (Size, error) {
	hc := l.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Size{}, fmt.Errorf("create image request: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Size{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Size{}, fmt.Errorf("image request failed with status %d", resp.StatusCode)
	}
	return decodeSize(resp.Body, url)
}

func loadFile(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return decodeSize(f, path)
}

func decodeSize(r io.Reader, name string) (Size, error) {
	// SVG has no raster header; accept it at container size.
	if strings.HasSuffix(strings.ToLower(name), ".svg") {
		return Size{}, nil
	}
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return Size{}, fmt.Errorf("decode image: %w", err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}
