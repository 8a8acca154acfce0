package tilemap

import "fmt"

const DefaultTilesetTileSize = 32

// ImageSource is a decoded tileset image owned by the registry. Release is
// called once the image is replaced.
type ImageSource interface {
	Size() (w, h int)
	Release()
}

type Tileset struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	TileSize int    `json:"tileSize"`
	Columns  int    `json:"columns"`
	Rows     int    `json:"rows"`
}

// Contains reports whether (x, y) addresses a tile of the tileset grid.
func (t Tileset) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.Columns && y < t.Rows
}

// SourceTile is a position on the tileset grid.
type SourceTile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Registry holds the single loaded tileset and the tile picked for painting.
type Registry struct {
	src      ImageSource
	tileset  Tileset
	loaded   bool
	selected *SourceTile
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Load replaces the current tileset with src. On error the registry is left
// untouched.
func (r *Registry) Load(name string, src ImageSource, tileSize int) (Tileset, error) {
	if src == nil {
		return Tileset{}, fmt.Errorf("tilemap: load tileset %q: nil image: %w", name, ErrInvalidTileset)
	}
	if tileSize <= 0 {
		return Tileset{}, fmt.Errorf("tilemap: load tileset %q: tile size %d: %w", name, tileSize, ErrInvalidTileset)
	}
	w, h := src.Size()
	if w <= 0 || h <= 0 {
		return Tileset{}, fmt.Errorf("tilemap: load tileset %q: empty image: %w", name, ErrInvalidTileset)
	}
	if r.src != nil && r.src != src {
		r.src.Release()
	}
	r.src = src
	r.tileset = Tileset{
		Name:     name,
		Width:    w,
		Height:   h,
		TileSize: tileSize,
		Columns:  w / tileSize,
		Rows:     h / tileSize,
	}
	r.loaded = true
	r.selected = nil
	return r.tileset, nil
}

func (r *Registry) Tileset() (Tileset, bool) {
	return r.tileset, r.loaded
}

// Image returns the image backing the current tileset, or nil.
func (r *Registry) Image() ImageSource {
	return r.src
}

func (r *Registry) Select(x, y int) error {
	if !r.loaded {
		return fmt.Errorf("tilemap: select tile (%d,%d): %w", x, y, ErrNoTileset)
	}
	if !r.tileset.Contains(x, y) {
		return fmt.Errorf("tilemap: select tile (%d,%d) of %dx%d: %w", x, y, r.tileset.Columns, r.tileset.Rows, ErrOutOfBounds)
	}
	r.selected = &SourceTile{X: x, Y: y}
	return nil
}

func (r *Registry) Selected() (SourceTile, bool) {
	if r.selected == nil {
		return SourceTile{}, false
	}
	return *r.selected, true
}

// Close releases the current image.
func (r *Registry) Close() {
	if r.src != nil {
		r.src.Release()
	}
	r.src = nil
	r.loaded = false
	r.selected = nil
	r.tileset = Tileset{}
}
