package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, w, h int, fill func(x, y int) color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill(x, y))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRejectsNonImages(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"text", []byte("hello, not an image")},
		{"json", []byte(`{"config":{}}`)},
		{"empty", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeBytes(c.name, c.data)
			if err == nil {
				t.Fatalf("expected error")
			}
			if c.name != "empty" && !errors.Is(err, ErrNotImage) {
				t.Fatalf("expected ErrNotImage, got %v", err)
			}
		})
	}
}

func TestDecodeAndRelease(t *testing.T) {
	b := encodePNG(t, 64, 32, func(x, y int) color.Color { return color.RGBA{R: 255, A: 255} })
	img, err := DecodeBytes("t.png", b)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if w, h := img.Size(); w != 64 || h != 32 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if img.Format != "png" {
		t.Fatalf("format = %q", img.Format)
	}

	freed := 0
	img.OnRelease(func() { freed++ })
	img.Release()
	img.Release()
	if freed != 1 || !img.Released() || img.Image() != nil {
		t.Fatalf("release should run hooks once and drop pixels (freed=%d)", freed)
	}
	if w, h := img.Size(); w != 0 || h != 0 {
		t.Fatalf("released image should report zero size")
	}
}

func TestImageTile(t *testing.T) {
	b := encodePNG(t, 64, 64, func(x, y int) color.Color {
		if x >= 32 && y >= 32 {
			return color.RGBA{G: 200, A: 255}
		}
		return color.RGBA{B: 200, A: 255}
	})
	img, err := DecodeBytes("t.png", b)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	tile, ok := img.Tile(1, 1, 32)
	if !ok {
		t.Fatalf("expected tile")
	}
	if tile.Bounds() != image.Rect(0, 0, 32, 32) {
		t.Fatalf("tile bounds %v", tile.Bounds())
	}
	if c := tile.RGBAAt(0, 0); c.G != 200 {
		t.Fatalf("tile copied from wrong place: %+v", c)
	}
	if _, ok := img.Tile(2, 0, 32); ok {
		t.Fatalf("tile outside image should fail")
	}
}

func TestDefaultTileset(t *testing.T) {
	img, err := LoadDefaultTileset()
	if err != nil {
		t.Fatalf("LoadDefaultTileset: %v", err)
	}
	if w, h := img.Size(); w != 256 || h != 256 {
		t.Fatalf("unexpected default tileset size %dx%d", w, h)
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"b.png", "a.JPG", "notes.txt", filepath.Join("sub", "c.webp")} {
		if err := os.WriteFile(filepath.Join(dir, p), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	var names []string
	for _, a := range got {
		names = append(names, a.Name)
	}
	want := []string{"a.JPG", "b.png", "c.webp"}
	if len(names) != len(want) {
		t.Fatalf("got %v want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v want %v", names, want)
		}
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"tileset.png", "tileset.png"},
		{"assets/tileset.png", "tileset.png"},
		{"/home/me/proj/assets/tileset.png", "tileset.png"},
		{"", ""},
	}
	for _, c := range cases {
		if got := cleanAssetPath(c.in); got != c.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
