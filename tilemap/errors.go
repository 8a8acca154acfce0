package tilemap

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid map config")
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrUnknownLayer   = errors.New("unknown layer")
	ErrNoTileset      = errors.New("no tileset loaded")
	ErrNoSourceTile   = errors.New("no source tile selected")
	ErrInvalidTileset = errors.New("invalid tileset")
	ErrInvalidName    = errors.New("invalid name")
)
