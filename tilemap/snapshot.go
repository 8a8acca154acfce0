package tilemap

// LayerSnapshot is a copy of one layer. Tiles is never nil.
type LayerSnapshot struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Visible bool         `json:"visible"`
	Tiles   []PlacedTile `json:"tiles"`
}

type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Config        MapConfig       `json:"config"`
	Layers        []LayerSnapshot `json:"layers"`
	ActiveLayer   string          `json:"activeLayer"`
	Tool          Tool            `json:"tool"`
	Selection     []SelectedCell  `json:"selection"`
	DragRect      *Rect           `json:"dragRect,omitempty"`
	Tileset       *Tileset        `json:"tileset,omitempty"`
	SourceTile    *SourceTile     `json:"sourceTile,omitempty"`
	CanUndo       bool            `json:"canUndo"`
	CanRedo       bool            `json:"canRedo"`
	HistoryCursor int             `json:"historyCursor"`
	HistoryLen    int             `json:"historyLen"`
}

func (d *Document) layerSnapshots() []LayerSnapshot {
	out := make([]LayerSnapshot, len(d.layers))
	for i, l := range d.layers {
		out[i] = LayerSnapshot{ID: l.ID, Name: l.Name, Visible: l.Visible, Tiles: l.Tiles()}
	}
	return out
}

func (e *Editor) Snapshot() Snapshot {
	h := e.doc.history
	s := Snapshot{
		Config:        e.doc.cfg,
		Layers:        e.doc.layerSnapshots(),
		ActiveLayer:   e.doc.active,
		Tool:          e.tool,
		Selection:     e.sel.Cells(),
		CanUndo:       h.CanUndo(),
		CanRedo:       h.CanRedo(),
		HistoryCursor: h.Cursor(),
		HistoryLen:    h.Len(),
	}
	if x0, y0, x1, y1, ok := e.sel.Rect(); ok {
		s.DragRect = &Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
	}
	if ts, ok := e.tiles.Tileset(); ok {
		s.Tileset = &ts
	}
	if st, ok := e.tiles.Selected(); ok {
		s.SourceTile = &st
	}
	return s
}
