package tilemap

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestExportEmptyMap(t *testing.T) {
	d, err := NewDocument(MapConfig{Width: 5, Height: 5, TileSize: 32})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	b, err := d.MarshalExport()
	if err != nil {
		t.Fatalf("MarshalExport: %v", err)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, b); err != nil {
		t.Fatalf("Compact: %v", err)
	}
	want := `{"config":{"width":5,"height":5,"tileSize":32},"layers":[{"id":"layer-1","name":"Layer 1","visible":true,"tiles":[]}]}`
	if compact.String() != want {
		t.Fatalf("got %s\nwant %s", compact.String(), want)
	}
	if !strings.Contains(string(b), "\n  \"config\"") {
		t.Fatalf("export should be indented with two spaces:\n%s", b)
	}
}

func TestExportTilesRowMajor(t *testing.T) {
	d := newTestDoc(t, 3, 3)
	_ = d.PlaceTile("layer-1", 2, 1, 0, 0)
	_ = d.PlaceTile("layer-1", 0, 2, 1, 0)
	_ = d.PlaceTile("layer-1", 1, 0, 0, 1)
	hidden := d.AddLayer()
	_ = d.SetLayerVisible(hidden.ID, false)

	var buf bytes.Buffer
	if err := d.WriteExport(&buf); err != nil {
		t.Fatalf("WriteExport: %v", err)
	}
	var out Export
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out.Layers) != 2 || out.Layers[1].Visible {
		t.Fatalf("hidden layers are still exported: %+v", out.Layers)
	}
	tiles := out.Layers[0].Tiles
	order := [][2]int{{1, 0}, {2, 1}, {0, 2}}
	for i, c := range order {
		if tiles[i].X != c[0] || tiles[i].Y != c[1] || tiles[i].LayerID != "layer-1" {
			t.Fatalf("tile %d = %+v, want cell %v", i, tiles[i], c)
		}
	}
}

func TestExportKeepsMarkupInNames(t *testing.T) {
	d := newTestDoc(t, 2, 2)
	if err := d.RenameLayer("layer-1", "<walls & doors>"); err != nil {
		t.Fatalf("RenameLayer: %v", err)
	}
	b, err := d.MarshalExport()
	if err != nil {
		t.Fatalf("MarshalExport: %v", err)
	}
	var buf bytes.Buffer
	if err := d.WriteExport(&buf); err != nil {
		t.Fatalf("WriteExport: %v", err)
	}
	for name, out := range map[string]string{"marshal": string(b), "write": buf.String()} {
		if !strings.Contains(out, `"name": "<walls & doors>"`) {
			t.Fatalf("%s: layer name was escaped:\n%s", name, out)
		}
	}
	if strings.HasSuffix(string(b), "\n") || buf.String() != string(b)+"\n" {
		t.Fatalf("MarshalExport and WriteExport differ beyond the trailing newline")
	}
}
