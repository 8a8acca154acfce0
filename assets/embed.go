package assets

import (
	"embed"
	"path/filepath"
	"strings"
)

//go:embed tileset.png
var assetsFS embed.FS

// DefaultTilesetName is the embedded 8x8 grid of 32px tiles loaded when no
// tileset has been picked yet.
const DefaultTilesetName = "tileset.png"

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadDefaultTileset decodes the embedded tileset.
func LoadDefaultTileset() (*Image, error) {
	b, err := LoadFile(DefaultTilesetName)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(DefaultTilesetName, b)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
