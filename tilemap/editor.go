package tilemap

import (
	"fmt"
	"strings"
)

// Key is a keyboard key the editor reacts to.
type Key int

const (
	KeyShift Key = iota
	KeyDelete
	KeyBackspace
)

// Editor ties a document to the tileset registry, the selection and the
// active tool, and routes pointer and key events between them. It is not
// safe for concurrent use.
type Editor struct {
	doc      *Document
	tiles    *Registry
	sel      *Selection
	tool     Tool
	shift    bool
	painting bool
	lastCell Cell
}

func NewEditor(cfg MapConfig) (*Editor, error) {
	doc, err := NewDocument(cfg)
	if err != nil {
		return nil, err
	}
	return &Editor{
		doc:   doc,
		tiles: NewRegistry(),
		sel:   NewSelection(),
		tool:  ToolPlace,
	}, nil
}

func (e *Editor) Document() *Document { return e.doc }
func (e *Editor) Registry() *Registry { return e.tiles }
func (e *Editor) Selection() *Selection { return e.sel }
func (e *Editor) Tool() Tool { return e.tool }
func (e *Editor) Shift() bool { return e.shift }

// NewMap replaces the document. Layers, history and selection are dropped;
// the tileset and tool are kept.
func (e *Editor) NewMap(cfg MapConfig) error {
	doc, err := NewDocument(cfg)
	if err != nil {
		return err
	}
	e.doc = doc
	e.sel = NewSelection()
	e.painting = false
	return nil
}

func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.sel.Cancel()
	e.painting = false
	e.tool = t
}

func (e *Editor) LoadTileset(name string, src ImageSource, tileSize int) (Tileset, error) {
	return e.tiles.Load(name, src, tileSize)
}

func (e *Editor) SelectSourceTile(x, y int) error {
	return e.tiles.Select(x, y)
}

// PointerDown starts a gesture at cell c. Cells off the map are ignored.
func (e *Editor) PointerDown(c Cell) error {
	if !e.doc.cfg.InBounds(c.X, c.Y) {
		return nil
	}
	switch e.tool {
	case ToolSelect:
		e.sel.PointerDown(e.doc, c, e.shift)
		return nil
	case ToolPlace, ToolErase:
		e.painting = true
		e.lastCell = c
		return e.paint(c)
	}
	return nil
}

// PointerMove continues a gesture. Place and erase paint every new cell the
// pointer enters while the button is held.
func (e *Editor) PointerMove(c Cell) error {
	switch e.tool {
	case ToolSelect:
		e.sel.PointerMove(e.doc, c, e.shift)
	case ToolPlace, ToolErase:
		if !e.painting || c == e.lastCell || !e.doc.cfg.InBounds(c.X, c.Y) {
			return nil
		}
		e.lastCell = c
		return e.paint(c)
	}
	return nil
}

func (e *Editor) PointerUp(c Cell) {
	if e.tool == ToolSelect {
		e.sel.PointerUp(e.doc, c, e.shift)
	}
	e.painting = false
}

func (e *Editor) paint(c Cell) error {
	if e.tool == ToolErase {
		return e.Erase(c.X, c.Y)
	}
	src, ok := e.tiles.Selected()
	if !ok {
		e.painting = false
		return ErrNoSourceTile
	}
	return e.Place(c.X, c.Y, src.X, src.Y)
}

// KeyDown handles a key press. Delete and Backspace remove the selected
// tiles; Shift makes selection additive until it is released.
func (e *Editor) KeyDown(k Key) {
	switch k {
	case KeyShift:
		e.shift = true
	case KeyDelete, KeyBackspace:
		e.DeleteSelection()
	}
}

func (e *Editor) KeyUp(k Key) {
	if k == KeyShift {
		e.shift = false
	}
}

// DeleteSelection removes every tile under the selected cells on all layers
// and clears the selection.
func (e *Editor) DeleteSelection() int {
	cells := e.sel.Cells()
	if len(cells) == 0 {
		return 0
	}
	keys := make([]Cell, len(cells))
	for i, c := range cells {
		keys[i] = c.Cell
	}
	n := e.doc.DeleteTiles(keys)
	e.sel.Clear()
	return n
}

// Place paints source tile (srcX, srcY) at (x, y) on the active layer.
func (e *Editor) Place(x, y, srcX, srcY int) error {
	err := e.doc.PlaceTile(e.doc.active, x, y, srcX, srcY)
	e.sel.Refresh(e.doc)
	return err
}

// Erase clears (x, y) on the active layer.
func (e *Editor) Erase(x, y int) error {
	err := e.doc.EraseTile(e.doc.active, x, y)
	e.sel.Refresh(e.doc)
	return err
}

func (e *Editor) DeleteCells(cells []Cell) int {
	n := e.doc.DeleteTiles(cells)
	e.sel.Refresh(e.doc)
	return n
}

func (e *Editor) Undo() bool {
	ok := e.doc.Undo()
	e.sel.Refresh(e.doc)
	return ok
}

func (e *Editor) Redo() bool {
	ok := e.doc.Redo()
	e.sel.Refresh(e.doc)
	return ok
}

func (e *Editor) AddLayer() *Layer { return e.doc.AddLayer() }

func (e *Editor) SelectLayer(id string) error { return e.doc.SelectLayer(id) }

func (e *Editor) SetLayerVisible(id string, visible bool) error {
	return e.doc.SetLayerVisible(id, visible)
}

func (e *Editor) RenameLayer(id, name string) error { return e.doc.RenameLayer(id, name) }

func (e *Editor) MoveLayerUp(id string) error { return e.doc.MoveLayerUp(id) }

func (e *Editor) MoveLayerDown(id string) error { return e.doc.MoveLayerDown(id) }

func (k Key) String() string {
	switch k {
	case KeyShift:
		return "shift"
	case KeyDelete:
		return "delete"
	case KeyBackspace:
		return "backspace"
	default:
		return "unknown"
	}
}

func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shift":
		return KeyShift, nil
	case "delete", "del":
		return KeyDelete, nil
	case "backspace":
		return KeyBackspace, nil
	}
	return 0, fmt.Errorf("tilemap: unknown key %q", s)
}
