package sticker

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestHTTPLoader_Remote(t *testing.T) {
	img := pngBytes(t, 12, 30)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Write(img)
		case "/garbage.jpg":
			w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	l := HTTPLoader{Client: server.Client()}

	size, err := l.Load(context.Background(), server.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 12, Height: 30}, size)

	_, err = l.Load(context.Background(), server.URL+"/missing.png")
	assert.ErrorContains(t, err, "status 404")

	_, err = l.Load(context.Background(), server.URL+"/garbage.jpg")
	assert.ErrorContains(t, err, "decode image")
}

func TestHTTPLoader_LocalFiles(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "sticker.png")
	require.NoError(t, os.WriteFile(pngPath, pngBytes(t, 5, 7), 0o600))
	svgPath := filepath.Join(dir, "placeholder.svg")
	require.NoError(t, os.WriteFile(svgPath, []byte("<svg/>"), 0o600))

	var l HTTPLoader
	size, err := l.Load(context.Background(), pngPath)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 5, Height: 7}, size)

	size, err = l.Load(context.Background(), svgPath)
	require.NoError(t, err)
	assert.Equal(t, Size{}, size)

	_, err = l.Load(context.Background(), filepath.Join(dir, "nope.png"))
	assert.ErrorContains(t, err, "open image")

	_, err = l.Load(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestDecodeLottie(t *testing.T) {
	l, err := DecodeLottie([]byte(validLottie))
	require.NoError(t, err)
	assert.Equal(t, 4, l.Frames())
	assert.Equal(t, "wave", l.Name)

	bad := map[string]string{
		"empty":          "  ",
		"not json":       "{",
		"no frame rate":  `{"fr":0,"ip":0,"op":10,"w":1,"h":1,"layers":[]}`,
		"reversed range": `{"fr":30,"ip":10,"op":10,"w":1,"h":1,"layers":[]}`,
		"no canvas":      `{"fr":30,"ip":0,"op":10,"w":0,"h":1,"layers":[]}`,
		"no layers":      `{"fr":30,"ip":0,"op":10,"w":1,"h":1}`,
	}
	for name, payload := range bad {
		_, err := DecodeLottie([]byte(payload))
		assert.ErrorIs(t, err, ErrInvalidAnimation, name)
	}
}
