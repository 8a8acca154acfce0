package tilemap

// Layer holds at most one tile per cell.
type Layer struct {
	ID      string
	Name    string
	Visible bool

	tiles map[Cell]PlacedTile
}

func newLayer(id, name string) *Layer {
	return &Layer{ID: id, Name: name, Visible: true, tiles: make(map[Cell]PlacedTile)}
}

func (l *Layer) At(x, y int) (PlacedTile, bool) {
	t, ok := l.tiles[Cell{X: x, Y: y}]
	return t, ok
}

func (l *Layer) Len() int {
	return len(l.tiles)
}

// Tiles returns the layer's tiles in row-major order.
func (l *Layer) Tiles() []PlacedTile {
	out := make([]PlacedTile, 0, len(l.tiles))
	for _, t := range l.tiles {
		out = append(out, t)
	}
	sortTiles(out)
	return out
}

func (l *Layer) put(t PlacedTile) {
	t.LayerID = l.ID
	l.tiles[t.Cell()] = t
}

// removeExact deletes the tile at t's cell only when every field matches.
func (l *Layer) removeExact(t PlacedTile) bool {
	cur, ok := l.tiles[t.Cell()]
	if !ok || cur != t {
		return false
	}
	delete(l.tiles, t.Cell())
	return true
}
