package tilemap

import (
	"errors"
	"testing"
)

type fakeImage struct {
	w, h     int
	released int
}

func (f *fakeImage) Size() (int, int) { return f.w, f.h }
func (f *fakeImage) Release() { f.released++ }

func TestRegistryLoadComputesGrid(t *testing.T) {
	cases := []struct {
		name       string
		w, h, size int
		cols, rows int
	}{
		{"exact", 128, 64, 32, 4, 2},
		{"remainder", 100, 70, 32, 3, 2},
		{"smaller_than_tile", 16, 16, 32, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRegistry()
			ts, err := r.Load("tiles.png", &fakeImage{w: c.w, h: c.h}, c.size)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if ts.Columns != c.cols || ts.Rows != c.rows {
				t.Fatalf("got %dx%d want %dx%d", ts.Columns, ts.Rows, c.cols, c.rows)
			}
		})
	}
}

func TestRegistryReleasesReplacedImage(t *testing.T) {
	r := NewRegistry()
	first := &fakeImage{w: 64, h: 64}
	second := &fakeImage{w: 32, h: 32}
	_, _ = r.Load("a", first, 32)
	_ = r.Select(1, 1)
	_, _ = r.Load("b", second, 32)
	if first.released != 1 {
		t.Fatalf("expected previous image to be released once, got %d", first.released)
	}
	if second.released != 0 {
		t.Fatalf("current image must not be released")
	}
	if _, ok := r.Selected(); ok {
		t.Fatalf("source tile selection should reset on reload")
	}
	r.Close()
	if second.released != 1 {
		t.Fatalf("Close should release the current image")
	}
}

func TestRegistryRejectedLoadKeepsState(t *testing.T) {
	r := NewRegistry()
	img := &fakeImage{w: 64, h: 64}
	_, _ = r.Load("a", img, 32)
	_ = r.Select(0, 1)

	if _, err := r.Load("b", nil, 32); !errors.Is(err, ErrInvalidTileset) {
		t.Fatalf("expected ErrInvalidTileset, got %v", err)
	}
	if _, err := r.Load("c", &fakeImage{w: 64, h: 64}, 0); !errors.Is(err, ErrInvalidTileset) {
		t.Fatalf("expected ErrInvalidTileset, got %v", err)
	}
	ts, _ := r.Tileset()
	if ts.Name != "a" || img.released != 0 {
		t.Fatalf("failed load must not touch the registry")
	}
	if st, ok := r.Selected(); !ok || st != (SourceTile{0, 1}) {
		t.Fatalf("selection lost: %+v %v", st, ok)
	}
}

func TestRegistrySelectBounds(t *testing.T) {
	r := NewRegistry()
	if err := r.Select(0, 0); !errors.Is(err, ErrNoTileset) {
		t.Fatalf("expected ErrNoTileset, got %v", err)
	}
	_, _ = r.Load("a", &fakeImage{w: 96, h: 64}, 32)

	cases := []struct {
		x, y int
		ok   bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 0, false},
		{0, 2, false},
		{-1, 0, false},
	}
	for _, c := range cases {
		err := r.Select(c.x, c.y)
		if c.ok && err != nil {
			t.Fatalf("Select(%d,%d): %v", c.x, c.y, err)
		}
		if !c.ok && !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Select(%d,%d): expected ErrOutOfBounds, got %v", c.x, c.y, err)
		}
	}
	if st, _ := r.Selected(); st != (SourceTile{2, 1}) {
		t.Fatalf("rejected selections must not be stored, got %+v", st)
	}
}
