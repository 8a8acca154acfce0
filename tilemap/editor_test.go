package tilemap

import (
	"errors"
	"testing"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	e, err := NewEditor(MapConfig{Width: 4, Height: 4, TileSize: 32})
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	if _, err := e.LoadTileset("tiles.png", &fakeImage{w: 128, h: 128}, 32); err != nil {
		t.Fatalf("LoadTileset: %v", err)
	}
	return e
}

func TestEditorPlaceRequiresSourceTile(t *testing.T) {
	e := newTestEditor(t)
	if err := e.PointerDown(Cell{0, 0}); !errors.Is(err, ErrNoSourceTile) {
		t.Fatalf("expected ErrNoSourceTile, got %v", err)
	}
	e.PointerUp(Cell{0, 0})
	if e.Snapshot().HistoryLen != 0 {
		t.Fatalf("nothing should be recorded")
	}
}

func TestEditorDragPaint(t *testing.T) {
	e := newTestEditor(t)
	_ = e.SelectSourceTile(1, 2)
	_ = e.PointerDown(Cell{0, 0})
	_ = e.PointerMove(Cell{0, 0})
	_ = e.PointerMove(Cell{1, 0})
	_ = e.PointerMove(Cell{9, 9})
	_ = e.PointerMove(Cell{2, 0})
	e.PointerUp(Cell{2, 0})
	_ = e.PointerMove(Cell{3, 0})

	snap := e.Snapshot()
	if n := len(snap.Layers[0].Tiles); n != 3 {
		t.Fatalf("expected 3 painted tiles, got %d", n)
	}
	if snap.HistoryLen != 3 {
		t.Fatalf("expected one action per painted cell, got %d", snap.HistoryLen)
	}
	for _, tile := range snap.Layers[0].Tiles {
		if tile.TileX != 1 || tile.TileY != 2 {
			t.Fatalf("wrong source tile painted: %+v", tile)
		}
	}
}

func TestEditorEraseTool(t *testing.T) {
	e := newTestEditor(t)
	_ = e.SelectSourceTile(0, 0)
	_ = e.PointerDown(Cell{1, 1})
	e.PointerUp(Cell{1, 1})

	e.SetTool(ToolErase)
	_ = e.PointerDown(Cell{1, 1})
	e.PointerUp(Cell{1, 1})
	if len(e.Snapshot().Layers[0].Tiles) != 0 {
		t.Fatalf("tile should be erased")
	}
	e.Undo()
	if len(e.Snapshot().Layers[0].Tiles) != 1 {
		t.Fatalf("undo should restore erased tile")
	}
}

func TestEditorShiftSelectAndDelete(t *testing.T) {
	e := newTestEditor(t)
	_ = e.SelectSourceTile(0, 0)
	for _, c := range []Cell{{0, 0}, {3, 3}} {
		_ = e.PointerDown(c)
		e.PointerUp(c)
	}

	e.SetTool(ToolSelect)
	_ = e.PointerDown(Cell{0, 0})
	e.PointerUp(Cell{0, 0})
	e.KeyDown(KeyShift)
	_ = e.PointerDown(Cell{3, 3})
	e.PointerUp(Cell{3, 3})
	e.KeyUp(KeyShift)

	if got := len(e.Snapshot().Selection); got != 2 {
		t.Fatalf("expected 2 selected cells, got %d", got)
	}
	before := e.Snapshot().HistoryLen
	e.KeyDown(KeyBackspace)
	snap := e.Snapshot()
	if len(snap.Layers[0].Tiles) != 0 || len(snap.Selection) != 0 {
		t.Fatalf("selection should be deleted and cleared: %+v", snap)
	}
	if snap.HistoryLen != before+1 {
		t.Fatalf("expected a single delete action, got %d", snap.HistoryLen-before)
	}

	e.KeyDown(KeyDelete)
	if e.Snapshot().HistoryLen != before+1 {
		t.Fatalf("deleting an empty selection must not record")
	}
}

func TestEditorOutOfBoundsIgnored(t *testing.T) {
	e := newTestEditor(t)
	_ = e.SelectSourceTile(0, 0)
	if err := e.PointerDown(Cell{-1, 2}); err != nil {
		t.Fatalf("out of bounds press should be ignored, got %v", err)
	}
	if e.Snapshot().HistoryLen != 0 {
		t.Fatalf("nothing should be recorded")
	}
}

func TestEditorNewMapResets(t *testing.T) {
	e := newTestEditor(t)
	_ = e.SelectSourceTile(0, 0)
	_ = e.PointerDown(Cell{0, 0})
	e.PointerUp(Cell{0, 0})
	e.AddLayer()

	if err := e.NewMap(MapConfig{Width: 0, Height: 1, TileSize: 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if len(e.Snapshot().Layers) != 2 {
		t.Fatalf("rejected new map must keep the document")
	}

	if err := e.NewMap(MapConfig{Width: 8, Height: 6, TileSize: 16}); err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	snap := e.Snapshot()
	if len(snap.Layers) != 1 || snap.CanUndo || snap.Config.Width != 8 {
		t.Fatalf("new map should start clean: %+v", snap)
	}
	if snap.Tileset == nil || snap.SourceTile == nil {
		t.Fatalf("tileset should survive a new map")
	}
}

func TestEditorUndoRefreshesSelection(t *testing.T) {
	e := newTestEditor(t)
	_ = e.SelectSourceTile(0, 0)
	_ = e.PointerDown(Cell{2, 2})
	e.PointerUp(Cell{2, 2})
	e.SetTool(ToolSelect)
	_ = e.PointerDown(Cell{2, 2})
	e.PointerUp(Cell{2, 2})
	e.Undo()
	if len(e.Snapshot().Selection) != 0 {
		t.Fatalf("selection should drop cells emptied by undo")
	}
}
