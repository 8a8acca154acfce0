package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// LayerEntry is a small value used by the UI list to represent a layer row.
type LayerEntry struct {
	Index   int
	ID      string
	Name    string
	Visible bool
}

// LayerPanel holds the list widget and small helpers used by the editor UI.
type LayerPanel struct {
	list             *widget.List
	entries          []any
	openRenameDialog func(idx int, current string)

	// suppressEvents, when true, keeps programmatic selections from being
	// reported back to the editor as user clicks.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

func (lp *LayerPanel) SetLayers(layers []LayerEntry) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	entries := make([]any, len(layers))
	for i, l := range layers {
		entries[i] = l
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	if idx < 0 || idx >= len(lp.entries) {
		return
	}
	lp.suppressEvents = true
	lp.list.SetSelectedEntry(lp.entries[idx])
	lp.suppressEvents = false
}

// Selected returns the highlighted row.
func (lp *LayerPanel) Selected() (LayerEntry, bool) {
	if lp == nil || lp.list == nil {
		return LayerEntry{}, false
	}
	e, ok := lp.list.SelectedEntry().(LayerEntry)
	return e, ok
}
