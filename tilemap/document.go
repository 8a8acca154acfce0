package tilemap

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Document is one map: its grid config, the layer stack and the undo log.
// Layers are ordered bottom to top.
type Document struct {
	cfg       MapConfig
	layers    []*Layer
	active    string
	history   *History
	nextLayer int
}

func NewDocument(cfg MapConfig) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Document{cfg: cfg, history: NewHistory()}
	d.AddLayer()
	return d, nil
}

func (d *Document) Config() MapConfig { return d.cfg }
func (d *Document) History() *History { return d.history }
func (d *Document) ActiveLayer() string { return d.active }

func (d *Document) Layers() []*Layer {
	return append([]*Layer(nil), d.layers...)
}

func (d *Document) Layer(id string) (*Layer, error) {
	if i := d.layerIndex(id); i >= 0 {
		return d.layers[i], nil
	}
	return nil, fmt.Errorf("tilemap: layer %q: %w", id, ErrUnknownLayer)
}

func (d *Document) layerIndex(id string) int {
	for i, l := range d.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// AddLayer appends an empty layer on top and makes it active.
func (d *Document) AddLayer() *Layer {
	d.nextLayer++
	l := newLayer(fmt.Sprintf("layer-%d", d.nextLayer), fmt.Sprintf("Layer %d", d.nextLayer))
	d.layers = append(d.layers, l)
	d.active = l.ID
	return l
}

func (d *Document) SelectLayer(id string) error {
	if _, err := d.Layer(id); err != nil {
		return err
	}
	d.active = id
	return nil
}

func (d *Document) SetLayerVisible(id string, visible bool) error {
	l, err := d.Layer(id)
	if err != nil {
		return err
	}
	l.Visible = visible
	return nil
}

func (d *Document) RenameLayer(id, name string) error {
	l, err := d.Layer(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("tilemap: rename %q: %w", id, ErrInvalidName)
	}
	l.Name = name
	return nil
}

// MoveLayerUp moves the layer one step towards the top of the stack.
func (d *Document) MoveLayerUp(id string) error {
	i := d.layerIndex(id)
	if i < 0 {
		return fmt.Errorf("tilemap: layer %q: %w", id, ErrUnknownLayer)
	}
	if i < len(d.layers)-1 {
		d.layers[i], d.layers[i+1] = d.layers[i+1], d.layers[i]
	}
	return nil
}

func (d *Document) MoveLayerDown(id string) error {
	i := d.layerIndex(id)
	if i < 0 {
		return fmt.Errorf("tilemap: layer %q: %w", id, ErrUnknownLayer)
	}
	if i > 0 {
		d.layers[i], d.layers[i-1] = d.layers[i-1], d.layers[i]
	}
	return nil
}

// PlaceTile paints the source tile (srcX, srcY) at (x, y), replacing any
// tile already there. Repainting an identical tile records nothing.
func (d *Document) PlaceTile(layerID string, x, y, srcX, srcY int) error {
	l, err := d.Layer(layerID)
	if err != nil {
		return err
	}
	if !d.cfg.InBounds(x, y) {
		return fmt.Errorf("tilemap: place (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	t := PlacedTile{X: x, Y: y, TileX: srcX, TileY: srcY, LayerID: l.ID}
	a := Action{Type: ActionAdd, LayerID: l.ID, Tiles: []PlacedTile{t}}
	if old, ok := l.At(x, y); ok {
		if old == t {
			return nil
		}
		a.Replaced = []PlacedTile{old}
	}
	l.put(t)
	d.history.Record(a)
	return nil
}

// EraseTile removes the tile at (x, y). An empty cell is left alone and
// nothing is recorded.
func (d *Document) EraseTile(layerID string, x, y int) error {
	l, err := d.Layer(layerID)
	if err != nil {
		return err
	}
	if !d.cfg.InBounds(x, y) {
		return fmt.Errorf("tilemap: erase (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	t, ok := l.At(x, y)
	if !ok {
		return nil
	}
	l.removeExact(t)
	d.history.Record(Action{Type: ActionDelete, LayerID: l.ID, Tiles: []PlacedTile{t}})
	return nil
}

// DeleteTiles removes every tile on any layer whose cell is in cells. Each
// affected layer gets its own Delete action. It returns the number of tiles
// removed.
func (d *Document) DeleteTiles(cells []Cell) int {
	if len(cells) == 0 {
		return 0
	}
	set := mapset.Of(cells...)
	removed := 0
	for _, l := range d.layers {
		var gone []PlacedTile
		for _, t := range l.Tiles() {
			if set.Has(t.Cell()) {
				gone = append(gone, t)
			}
		}
		if len(gone) == 0 {
			continue
		}
		for _, t := range gone {
			l.removeExact(t)
		}
		d.history.Record(Action{Type: ActionDelete, LayerID: l.ID, Tiles: gone})
		removed += len(gone)
	}
	return removed
}

// Undo reverts the most recent action. It reports false when there is
// nothing to undo.
func (d *Document) Undo() bool {
	a, ok := d.history.undo()
	if !ok {
		return false
	}
	if l, err := d.Layer(a.LayerID); err == nil {
		revert(l, a)
	}
	return true
}

func (d *Document) Redo() bool {
	a, ok := d.history.redo()
	if !ok {
		return false
	}
	if l, err := d.Layer(a.LayerID); err == nil {
		apply(l, a)
	}
	return true
}

// TopTileAt returns the tile drawn at (x, y): the one on the highest layer.
func (d *Document) TopTileAt(x, y int) (PlacedTile, bool) {
	for i := len(d.layers) - 1; i >= 0; i-- {
		if t, ok := d.layers[i].At(x, y); ok {
			return t, true
		}
	}
	return PlacedTile{}, false
}
