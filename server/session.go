package server

import (
	"sync"

	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/tilemap"
)

// Session is one editor shared by all requests. Access goes through Do so
// requests are applied one at a time.
type Session struct {
	mu sync.Mutex
	ed *tilemap.Editor
}

// NewSession creates an editor for cfg with the embedded tileset loaded.
func NewSession(cfg tilemap.MapConfig, tilesetTileSize int) (*Session, error) {
	ed, err := tilemap.NewEditor(cfg)
	if err != nil {
		return nil, err
	}
	img, err := assets.LoadDefaultTileset()
	if err != nil {
		return nil, err
	}
	if _, err := ed.LoadTileset(img.Name, img, tilesetTileSize); err != nil {
		return nil, err
	}
	return &Session{ed: ed}, nil
}

func (s *Session) Do(fn func(ed *tilemap.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ed)
}

func (s *Session) Snapshot() tilemap.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ed.Snapshot()
}

// Close releases the loaded tileset.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ed.Registry().Close()
}
