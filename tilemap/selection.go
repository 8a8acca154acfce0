package tilemap

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic"
)

type Tool int

const (
	ToolSelect Tool = iota
	ToolPlace
	ToolErase
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolPlace:
		return "place"
	case ToolErase:
		return "erase"
	default:
		return "unknown"
	}
}

func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select":
		return ToolSelect, nil
	case "place", "brush", "paint":
		return ToolPlace, nil
	case "erase", "eraser":
		return ToolErase, nil
	}
	return 0, fmt.Errorf("tilemap: unknown tool %q", s)
}

// SelectedCell is a selected map cell together with the tile drawn there
// when it was selected.
type SelectedCell struct {
	Cell
	Tile PlacedTile `json:"tile"`
}

// Selection tracks the selected cells of the select tool and the drag
// gesture that is building them. Pointer positions are always passed in.
type Selection struct {
	cells map[Cell]PlacedTile

	pressed bool
	moved   bool
	anchor  Cell
	current Cell
	before  map[Cell]PlacedTile
}

func NewSelection() *Selection {
	return &Selection{cells: make(map[Cell]PlacedTile)}
}

func (s *Selection) Len() int { return len(s.cells) }

func (s *Selection) Has(c Cell) bool {
	_, ok := s.cells[c]
	return ok
}

// Cells returns the selection in row-major order.
func (s *Selection) Cells() []SelectedCell {
	keys := make([]Cell, 0, len(s.cells))
	for c := range s.cells {
		keys = append(keys, c)
	}
	sortCells(keys)
	out := make([]SelectedCell, len(keys))
	for i, c := range keys {
		out[i] = SelectedCell{Cell: c, Tile: s.cells[c]}
	}
	return out
}

func (s *Selection) Clear() {
	s.cells = make(map[Cell]PlacedTile)
}

// Dragging reports whether a pointer gesture is in progress.
func (s *Selection) Dragging() bool { return s.pressed }

// Rect returns the live drag rectangle, inclusive on both corners.
func (s *Selection) Rect() (x0, y0, x1, y1 int, ok bool) {
	if !s.pressed || !s.moved {
		return 0, 0, 0, 0, false
	}
	x0, x1 = generic.Min(s.anchor.X, s.current.X), generic.Max(s.anchor.X, s.current.X)
	y0, y1 = generic.Min(s.anchor.Y, s.current.Y), generic.Max(s.anchor.Y, s.current.Y)
	return x0, y0, x1, y1, true
}

func (s *Selection) PointerDown(d *Document, c Cell, additive bool) {
	if !d.cfg.InBounds(c.X, c.Y) {
		return
	}
	s.pressed = true
	s.moved = false
	s.anchor = c
	s.current = c
	if !additive {
		s.Clear()
	}
	// A drag that turns additive later unions with what survived the press.
	s.before = copyCells(s.cells)
}

func (s *Selection) PointerMove(d *Document, c Cell, additive bool) {
	if !s.pressed {
		return
	}
	c = d.clamp(c)
	if !s.moved && c == s.anchor {
		return
	}
	s.moved = true
	s.current = c

	next := make(map[Cell]PlacedTile)
	if additive {
		next = copyCells(s.before)
	}
	x0, y0, x1, y1, _ := s.Rect()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if t, ok := d.TopTileAt(x, y); ok {
				next[Cell{X: x, Y: y}] = t
			}
		}
	}
	s.cells = next
}

// PointerUp ends the gesture. A gesture that never left its first cell is a
// click: it selects just that tile, or toggles it when additive.
func (s *Selection) PointerUp(d *Document, c Cell, additive bool) {
	if !s.pressed {
		return
	}
	if !s.moved {
		t, occupied := d.TopTileAt(s.anchor.X, s.anchor.Y)
		if additive {
			s.cells = copyCells(s.before)
			if _, ok := s.cells[s.anchor]; ok {
				delete(s.cells, s.anchor)
			} else if occupied {
				s.cells[s.anchor] = t
			}
		} else {
			s.Clear()
			if occupied {
				s.cells[s.anchor] = t
			}
		}
	}
	s.pressed = false
	s.moved = false
	s.before = nil
}

// Cancel abandons a gesture in progress and keeps the current cells.
func (s *Selection) Cancel() {
	s.pressed = false
	s.moved = false
	s.before = nil
}

// Refresh drops selected cells that are no longer occupied and updates the
// cached tiles of the rest.
func (s *Selection) Refresh(d *Document) {
	for c := range s.cells {
		if t, ok := d.TopTileAt(c.X, c.Y); ok {
			s.cells[c] = t
		} else {
			delete(s.cells, c)
		}
	}
}

func (d *Document) clamp(c Cell) Cell {
	return Cell{
		X: generic.Clamp(c.X, 0, d.cfg.Width-1),
		Y: generic.Clamp(c.Y, 0, d.cfg.Height-1),
	}
}

func copyCells(m map[Cell]PlacedTile) map[Cell]PlacedTile {
	out := make(map[Cell]PlacedTile, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t Tool) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
