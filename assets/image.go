package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("not an image")

// Image is a decoded tileset image. It satisfies tilemap.ImageSource.
type Image struct {
	Name   string
	Format string

	img      image.Image
	released bool
	onFree   []func()
}

func NewImage(name string, img image.Image) *Image {
	return &Image{Name: name, img: img}
}

// Decode reads a whole image from r. Anything the registered decoders do not
// recognise is rejected with ErrNotImage.
func Decode(name string, r io.Reader) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("assets: decode %s: %w", name, ErrNotImage)
		}
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("assets: decode %s: empty image: %w", name, ErrNotImage)
	}
	return &Image{Name: name, Format: format, img: img}, nil
}

func DecodeBytes(name string, b []byte) (*Image, error) {
	return Decode(name, bytes.NewReader(b))
}

func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(filepath.Base(path), f)
}

func (i *Image) Size() (int, int) {
	if i.img == nil {
		return 0, 0
	}
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the decoded pixels, or nil once released.
func (i *Image) Image() image.Image {
	return i.img
}

// OnRelease registers fn to run when the image is released, so GPU copies
// made by a renderer go away with it.
func (i *Image) OnRelease(fn func()) {
	i.onFree = append(i.onFree, fn)
}

func (i *Image) Release() {
	if i.released {
		return
	}
	i.released = true
	for _, fn := range i.onFree {
		fn()
	}
	i.onFree = nil
	i.img = nil
}

func (i *Image) Released() bool {
	return i.released
}

// Tile copies the tile at column x, row y into a new image whose bounds start
// at the origin.
func (i *Image) Tile(x, y, tileSize int) (*image.RGBA, bool) {
	if i.img == nil || tileSize <= 0 || x < 0 || y < 0 {
		return nil, false
	}
	b := i.img.Bounds()
	r := image.Rect(x*tileSize, y*tileSize, (x+1)*tileSize, (y+1)*tileSize).Add(b.Min)
	if !r.In(b) {
		return nil, false
	}
	dst := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	draw.Draw(dst, dst.Bounds(), i.img, r.Min, draw.Src)
	return dst, true
}
