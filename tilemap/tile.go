package tilemap

import "sort"

// Cell is a position on the map grid.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlacedTile is a tileset tile painted onto one cell of one layer.
type PlacedTile struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	TileX   int    `json:"tileX"`
	TileY   int    `json:"tileY"`
	LayerID string `json:"layerId"`
}

func (t PlacedTile) Cell() Cell {
	return Cell{X: t.X, Y: t.Y}
}

func sortTiles(tiles []PlacedTile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}
