package tilemap

import "fmt"

const (
	DefaultWidth    = 20
	DefaultHeight   = 20
	DefaultTileSize = 32

	// Upper bounds for a map. MaxPixels caps each side of the rendered map
	// (Width*TileSize and Height*TileSize).
	MaxMapSize  = 4096
	MaxTileSize = 512
	MaxPixels   = 16384
)

// MapConfig describes the grid of a map document. It never changes after the
// document is created; a new map replaces the whole document.
type MapConfig struct {
	Width    int `json:"width" yaml:"width"`
	Height   int `json:"height" yaml:"height"`
	TileSize int `json:"tileSize" yaml:"tile_size"`
}

func DefaultMapConfig() MapConfig {
	return MapConfig{Width: DefaultWidth, Height: DefaultHeight, TileSize: DefaultTileSize}
}

func (c MapConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("tilemap: width %d: %w", c.Width, ErrInvalidConfig)
	case c.Height <= 0:
		return fmt.Errorf("tilemap: height %d: %w", c.Height, ErrInvalidConfig)
	case c.TileSize <= 0:
		return fmt.Errorf("tilemap: tile size %d: %w", c.TileSize, ErrInvalidConfig)
	case c.Width > MaxMapSize || c.Height > MaxMapSize:
		return fmt.Errorf("tilemap: %dx%d exceeds %d tiles per side: %w", c.Width, c.Height, MaxMapSize, ErrInvalidConfig)
	case c.TileSize > MaxTileSize:
		return fmt.Errorf("tilemap: tile size %d exceeds %d: %w", c.TileSize, MaxTileSize, ErrInvalidConfig)
	case c.Width*c.TileSize > MaxPixels || c.Height*c.TileSize > MaxPixels:
		return fmt.Errorf("tilemap: %dx%d tiles of %dpx exceeds %dpx per side: %w",
			c.Width, c.Height, c.TileSize, MaxPixels, ErrInvalidConfig)
	}
	return nil
}

func (c MapConfig) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// CellAt converts a pixel position in map space to a grid cell.
func (c MapConfig) CellAt(px, py float64) Cell {
	ts := float64(c.TileSize)
	x, y := int(px/ts), int(py/ts)
	if px < 0 {
		x = -1
	}
	if py < 0 {
		y = -1
	}
	return Cell{X: x, Y: y}
}
