package tilemap

import (
	"errors"
	"reflect"
	"testing"
)

func newTestDoc(t *testing.T, w, h int) *Document {
	t.Helper()
	d, err := NewDocument(MapConfig{Width: w, Height: h, TileSize: 32})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return d
}

func mustLayer(t *testing.T, d *Document, id string) *Layer {
	t.Helper()
	l, err := d.Layer(id)
	if err != nil {
		t.Fatalf("Layer(%q): %v", id, err)
	}
	return l
}

func TestNewDocumentRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  MapConfig
	}{
		{"zero_width", MapConfig{0, 5, 32}},
		{"negative_height", MapConfig{5, -1, 32}},
		{"zero_tile", MapConfig{5, 5, 0}},
		{"too_wide", MapConfig{MaxMapSize + 1, 1, 1}},
		{"too_tall", MapConfig{1, MaxMapSize + 1, 1}},
		{"tile_too_big", MapConfig{1, 1, MaxTileSize + 1}},
		{"too_many_pixels", MapConfig{MaxPixels/32 + 1, 5, 32}},
		{"huge", MapConfig{1 << 20, 1 << 20, 1 << 12}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewDocument(c.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewDocumentAcceptsLimits(t *testing.T) {
	for _, cfg := range []MapConfig{
		{MaxMapSize, MaxMapSize, MaxPixels / MaxMapSize},
		{MaxPixels / MaxTileSize, 1, MaxTileSize},
	} {
		if _, err := NewDocument(cfg); err != nil {
			t.Fatalf("NewDocument(%+v): %v", cfg, err)
		}
	}
}

func TestNewDocumentHasOneLayer(t *testing.T) {
	d := newTestDoc(t, 5, 5)
	ls := d.Layers()
	if len(ls) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(ls))
	}
	l := ls[0]
	if l.ID != "layer-1" || l.Name != "Layer 1" || !l.Visible || l.Len() != 0 {
		t.Fatalf("unexpected first layer %+v", l)
	}
	if d.ActiveLayer() != "layer-1" {
		t.Fatalf("expected layer-1 active, got %q", d.ActiveLayer())
	}
}

func TestPlaceUndoRedo(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	if err := d.PlaceTile("layer-1", 1, 1, 0, 0); err != nil {
		t.Fatalf("PlaceTile: %v", err)
	}
	l := mustLayer(t, d, "layer-1")
	want := []PlacedTile{{X: 1, Y: 1, TileX: 0, TileY: 0, LayerID: "layer-1"}}
	if got := l.Tiles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after place: got %+v want %+v", got, want)
	}
	if !d.Undo() {
		t.Fatalf("Undo should report true")
	}
	if l.Len() != 0 {
		t.Fatalf("after undo: expected no tiles, got %+v", l.Tiles())
	}
	if !d.Redo() {
		t.Fatalf("Redo should report true")
	}
	if got := l.Tiles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after redo: got %+v want %+v", got, want)
	}
}

func TestPlaceOverwriteUndoRestoresPrevious(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	l := mustLayer(t, d, "layer-1")
	_ = d.PlaceTile("layer-1", 2, 0, 1, 1)
	_ = d.PlaceTile("layer-1", 2, 0, 3, 4)

	if l.Len() != 1 {
		t.Fatalf("expected exactly one tile at the cell, got %d", l.Len())
	}
	if tile, _ := l.At(2, 0); tile.TileX != 3 || tile.TileY != 4 {
		t.Fatalf("expected newest tile, got %+v", tile)
	}

	d.Undo()
	tile, ok := l.At(2, 0)
	if !ok || tile.TileX != 1 || tile.TileY != 1 {
		t.Fatalf("undo should restore replaced tile, got %+v ok=%v", tile, ok)
	}

	d.Redo()
	if tile, _ := l.At(2, 0); tile.TileX != 3 || tile.TileY != 4 {
		t.Fatalf("redo should reapply overwrite, got %+v", tile)
	}
}

func TestPlaceSameTileRecordsNothing(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	_ = d.PlaceTile("layer-1", 0, 0, 1, 1)
	_ = d.PlaceTile("layer-1", 0, 0, 1, 1)
	if n := d.History().Len(); n != 1 {
		t.Fatalf("expected 1 history entry, got %d", n)
	}
}

func TestPlaceValidation(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	cases := []struct {
		name  string
		layer string
		x, y  int
		want  error
	}{
		{"left", "layer-1", -1, 0, ErrOutOfBounds},
		{"right", "layer-1", 3, 0, ErrOutOfBounds},
		{"below", "layer-1", 0, 3, ErrOutOfBounds},
		{"layer", "nope", 0, 0, ErrUnknownLayer},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := d.PlaceTile(c.layer, c.x, c.y, 0, 0); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
	if d.History().Len() != 0 {
		t.Fatalf("rejected placements must not be recorded")
	}
}

func TestEraseTile(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	l := mustLayer(t, d, "layer-1")

	if err := d.EraseTile("layer-1", 1, 1); err != nil {
		t.Fatalf("EraseTile on empty cell: %v", err)
	}
	if d.History().Len() != 0 {
		t.Fatalf("erasing an empty cell must not be recorded")
	}

	_ = d.PlaceTile("layer-1", 1, 1, 2, 2)
	_ = d.EraseTile("layer-1", 1, 1)
	if l.Len() != 0 {
		t.Fatalf("tile should be erased")
	}
	if d.History().Len() != 2 {
		t.Fatalf("expected 2 history entries, got %d", d.History().Len())
	}
	d.Undo()
	if _, ok := l.At(1, 1); !ok {
		t.Fatalf("undo of erase should restore the tile")
	}
}

func TestDeleteTilesPerLayerActions(t *testing.T) {
	d := newTestDoc(t, 4, 4)
	_ = d.PlaceTile("layer-1", 0, 0, 0, 0)
	_ = d.PlaceTile("layer-1", 1, 0, 0, 0)
	top := d.AddLayer()
	_ = d.PlaceTile(top.ID, 0, 0, 5, 5)
	_ = d.PlaceTile(top.ID, 3, 3, 5, 5)
	before := d.History().Len()

	n := d.DeleteTiles([]Cell{{0, 0}, {1, 0}, {2, 2}})
	if n != 3 {
		t.Fatalf("expected 3 removed tiles, got %d", n)
	}
	if got := d.History().Len() - before; got != 2 {
		t.Fatalf("expected one action per affected layer (2), got %d", got)
	}
	if l := mustLayer(t, d, top.ID); l.Len() != 1 {
		t.Fatalf("untouched tile on top layer should remain, got %+v", l.Tiles())
	}

	d.Undo()
	if _, ok := mustLayer(t, d, top.ID).At(0, 0); !ok {
		t.Fatalf("undo should restore top layer tile")
	}
	if mustLayer(t, d, "layer-1").Len() != 0 {
		t.Fatalf("second undo step should still be pending for layer-1")
	}
	d.Undo()
	if mustLayer(t, d, "layer-1").Len() != 2 {
		t.Fatalf("layer-1 tiles should be restored")
	}
}

func TestDeleteTilesEmptySelection(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	_ = d.PlaceTile("layer-1", 0, 0, 0, 0)
	before := d.History().Len()
	if n := d.DeleteTiles(nil); n != 0 {
		t.Fatalf("expected nothing removed, got %d", n)
	}
	if n := d.DeleteTiles([]Cell{{2, 2}}); n != 0 {
		t.Fatalf("expected nothing removed for empty cell, got %d", n)
	}
	if d.History().Len() != before {
		t.Fatalf("no history entry expected")
	}
}

func TestNewActionTruncatesRedo(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	_ = d.PlaceTile("layer-1", 0, 0, 0, 0)
	_ = d.PlaceTile("layer-1", 1, 0, 0, 0)
	d.Undo()
	if !d.History().CanRedo() {
		t.Fatalf("expected redo to be available")
	}
	_ = d.PlaceTile("layer-1", 2, 0, 0, 0)
	if d.History().CanRedo() {
		t.Fatalf("recording must discard redo history")
	}
	if d.Redo() {
		t.Fatalf("Redo should be a no-op")
	}
	if _, ok := mustLayer(t, d, "layer-1").At(1, 0); ok {
		t.Fatalf("discarded action must not come back")
	}
	if d.History().Len() != 2 || d.History().Cursor() != 1 {
		t.Fatalf("unexpected history len=%d cursor=%d", d.History().Len(), d.History().Cursor())
	}
}

func TestUndoRedoAtBoundaries(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	if d.Undo() || d.Redo() {
		t.Fatalf("undo/redo on empty history should be no-ops")
	}
	if d.History().Cursor() != -1 {
		t.Fatalf("expected cursor -1, got %d", d.History().Cursor())
	}
}

func TestUndoMatchesByValue(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	l := mustLayer(t, d, "layer-1")
	_ = d.PlaceTile("layer-1", 0, 0, 1, 1)

	// Replace the tile behind the log's back; undo must not remove it.
	l.put(PlacedTile{X: 0, Y: 0, TileX: 9, TileY: 9})
	d.Undo()
	if tile, ok := l.At(0, 0); !ok || tile.TileX != 9 {
		t.Fatalf("undo removed a tile that does not match the recorded one: %+v ok=%v", tile, ok)
	}
}

func TestLayerManagement(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	l2 := d.AddLayer()
	l3 := d.AddLayer()
	if l2.ID != "layer-2" || l3.Name != "Layer 3" {
		t.Fatalf("unexpected layer naming %q %q", l2.ID, l3.Name)
	}
	if d.ActiveLayer() != l3.ID {
		t.Fatalf("new layer should become active")
	}
	if err := d.SelectLayer("layer-1"); err != nil {
		t.Fatalf("SelectLayer: %v", err)
	}
	if err := d.SelectLayer("missing"); !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
	if err := d.RenameLayer(l2.ID, "  "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if err := d.RenameLayer(l2.ID, "Ground"); err != nil || l2.Name != "Ground" {
		t.Fatalf("rename failed: %v %q", err, l2.Name)
	}
	if err := d.SetLayerVisible(l2.ID, false); err != nil || l2.Visible {
		t.Fatalf("visibility not applied: %v", err)
	}

	_ = d.MoveLayerUp("layer-1")
	_ = d.MoveLayerUp(l3.ID)
	order := []string{}
	for _, l := range d.Layers() {
		order = append(order, l.ID)
	}
	if want := []string{"layer-2", "layer-1", "layer-3"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("order %v want %v", order, want)
	}
	_ = d.MoveLayerDown("layer-2")
	if d.Layers()[0].ID != "layer-2" {
		t.Fatalf("moving the bottom layer down should be a no-op")
	}
}

func TestTopTileAt(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	_ = d.PlaceTile("layer-1", 1, 1, 0, 0)
	top := d.AddLayer()
	_ = d.PlaceTile(top.ID, 1, 1, 7, 7)
	got, ok := d.TopTileAt(1, 1)
	if !ok || got.LayerID != top.ID {
		t.Fatalf("expected tile from top layer, got %+v", got)
	}
	if _, ok := d.TopTileAt(0, 0); ok {
		t.Fatalf("empty cell should not hit")
	}
}
