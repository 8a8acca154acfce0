package tilemap

import (
	"bytes"
	"encoding/json"
	"io"
)

const DefaultExportName = "tilemap.json"

// Export is the on-disk JSON shape of a map.
type Export struct {
	Config MapConfig       `json:"config"`
	Layers []LayerSnapshot `json:"layers"`
}

func (d *Document) Export() Export {
	return Export{Config: d.cfg, Layers: d.layerSnapshots()}
}

// MarshalExport encodes the document as indented JSON without a trailing
// newline.
func (d *Document) MarshalExport() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteExport(&buf); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteExport writes the document as indented JSON. Markup characters in
// layer names are written as is.
func (d *Document) WriteExport(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d.Export())
}
