package tilemap

import (
	"reflect"
	"testing"
)

func cellsOf(s *Selection) []Cell {
	out := []Cell{}
	for _, c := range s.Cells() {
		out = append(out, c.Cell)
	}
	return out
}

// 3x3 map with tiles at (0,0), (1,1) and (2,2).
func newSelectionFixture(t *testing.T) (*Document, *Selection) {
	t.Helper()
	d := newTestDoc(t, 3, 3)
	for _, c := range []Cell{{0, 0}, {1, 1}, {2, 2}} {
		if err := d.PlaceTile("layer-1", c.X, c.Y, 0, 0); err != nil {
			t.Fatalf("PlaceTile: %v", err)
		}
	}
	return d, NewSelection()
}

func TestSelectionDragRectangle(t *testing.T) {
	d, s := newSelectionFixture(t)
	s.PointerDown(d, Cell{0, 0}, false)
	s.PointerMove(d, Cell{1, 1}, false)
	s.PointerUp(d, Cell{1, 1}, false)

	if want := []Cell{{0, 0}, {1, 1}}; !reflect.DeepEqual(cellsOf(s), want) {
		t.Fatalf("got %v want %v", cellsOf(s), want)
	}
	if s.Has(Cell{1, 0}) {
		t.Fatalf("empty cell must not be selected")
	}
}

func TestSelectionDragClampsToMap(t *testing.T) {
	d, s := newSelectionFixture(t)
	s.PointerDown(d, Cell{1, 1}, false)
	s.PointerMove(d, Cell{10, 10}, false)
	x0, y0, x1, y1, ok := s.Rect()
	if !ok || x0 != 1 || y0 != 1 || x1 != 2 || y1 != 2 {
		t.Fatalf("unexpected rect %d,%d %d,%d ok=%v", x0, y0, x1, y1, ok)
	}
	s.PointerUp(d, Cell{10, 10}, false)
	if want := []Cell{{1, 1}, {2, 2}}; !reflect.DeepEqual(cellsOf(s), want) {
		t.Fatalf("got %v want %v", cellsOf(s), want)
	}
	if _, _, _, _, ok := s.Rect(); ok {
		t.Fatalf("rect should be gone after pointer up")
	}
}

func TestSelectionAdditiveDragUnion(t *testing.T) {
	d, s := newSelectionFixture(t)
	s.PointerDown(d, Cell{2, 2}, false)
	s.PointerUp(d, Cell{2, 2}, false)

	s.PointerDown(d, Cell{0, 0}, true)
	s.PointerMove(d, Cell{1, 0}, true)
	s.PointerMove(d, Cell{0, 1}, true)
	s.PointerUp(d, Cell{0, 1}, true)

	if want := []Cell{{0, 0}, {2, 2}}; !reflect.DeepEqual(cellsOf(s), want) {
		t.Fatalf("got %v want %v", cellsOf(s), want)
	}
}

func TestSelectionDragReplacesWithoutModifier(t *testing.T) {
	d, s := newSelectionFixture(t)
	s.PointerDown(d, Cell{2, 2}, false)
	s.PointerUp(d, Cell{2, 2}, false)

	s.PointerDown(d, Cell{0, 0}, false)
	s.PointerMove(d, Cell{1, 1}, false)
	s.PointerUp(d, Cell{1, 1}, false)
	if want := []Cell{{0, 0}, {1, 1}}; !reflect.DeepEqual(cellsOf(s), want) {
		t.Fatalf("got %v want %v", cellsOf(s), want)
	}
}

func TestSelectionClick(t *testing.T) {
	cases := []struct {
		name     string
		start    []Cell
		click    Cell
		additive bool
		want     []Cell
	}{
		{"plain_occupied", []Cell{{0, 0}}, Cell{1, 1}, false, []Cell{{1, 1}}},
		{"plain_empty_clears", []Cell{{0, 0}}, Cell{1, 0}, false, []Cell{}},
		{"toggle_on", []Cell{{0, 0}}, Cell{1, 1}, true, []Cell{{0, 0}, {1, 1}}},
		{"toggle_off", []Cell{{0, 0}, {1, 1}}, Cell{1, 1}, true, []Cell{{0, 0}}},
		{"toggle_empty_ignored", []Cell{{0, 0}}, Cell{2, 0}, true, []Cell{{0, 0}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, s := newSelectionFixture(t)
			for _, cell := range c.start {
				s.PointerDown(d, cell, true)
				s.PointerUp(d, cell, true)
			}
			s.PointerDown(d, c.click, c.additive)
			s.PointerMove(d, c.click, c.additive)
			s.PointerUp(d, c.click, c.additive)
			if got := cellsOf(s); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("got %v want %v", got, c.want)
			}
		})
	}
}

func TestSelectionModifierAfterPlainPress(t *testing.T) {
	d, s := newSelectionFixture(t)
	s.PointerDown(d, Cell{0, 0}, false)
	s.PointerUp(d, Cell{0, 0}, false)

	// Shift goes down between press and release.
	s.PointerDown(d, Cell{2, 2}, false)
	s.PointerUp(d, Cell{2, 2}, true)
	if want := []Cell{{2, 2}}; !reflect.DeepEqual(cellsOf(s), want) {
		t.Fatalf("click: got %v want %v", cellsOf(s), want)
	}

	// Same for a drag.
	s.PointerDown(d, Cell{1, 1}, false)
	s.PointerMove(d, Cell{1, 0}, true)
	s.PointerUp(d, Cell{1, 0}, true)
	if want := []Cell{{1, 1}}; !reflect.DeepEqual(cellsOf(s), want) {
		t.Fatalf("drag: got %v want %v", cellsOf(s), want)
	}
}

func TestSelectionIgnoresOutOfBoundsPress(t *testing.T) {
	d, s := newSelectionFixture(t)
	s.PointerDown(d, Cell{0, 0}, false)
	s.PointerUp(d, Cell{0, 0}, false)

	s.PointerDown(d, Cell{-1, 5}, false)
	s.PointerUp(d, Cell{-1, 5}, false)
	if s.Dragging() || s.Len() != 1 {
		t.Fatalf("press outside the map must be ignored, len=%d", s.Len())
	}
}

func TestSelectionRefresh(t *testing.T) {
	d, s := newSelectionFixture(t)
	s.PointerDown(d, Cell{0, 0}, false)
	s.PointerMove(d, Cell{2, 2}, false)
	s.PointerUp(d, Cell{2, 2}, false)
	_ = d.EraseTile("layer-1", 1, 1)
	s.Refresh(d)
	if want := []Cell{{0, 0}, {2, 2}}; !reflect.DeepEqual(cellsOf(s), want) {
		t.Fatalf("got %v want %v", cellsOf(s), want)
	}
}

func TestParseTool(t *testing.T) {
	cases := []struct {
		in   string
		want Tool
		ok   bool
	}{
		{"select", ToolSelect, true},
		{"Place", ToolPlace, true},
		{" erase ", ToolErase, true},
		{"fill", 0, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseTool(c.in)
			if (err == nil) != c.ok || (c.ok && got != c.want) {
				t.Fatalf("ParseTool(%q) = %v, %v", c.in, got, err)
			}
		})
	}
}
