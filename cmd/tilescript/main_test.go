package main

import (
	"path/filepath"
	"testing"
)

func TestWatchFilterSkipsOutputs(t *testing.T) {
	dir := t.TempDir()
	accept := watchFilter(options{
		out: filepath.Join(dir, "map.json"),
		png: filepath.Join(dir, "preview.png"),
	})

	cases := []struct {
		path string
		want bool
	}{
		{filepath.Join(dir, "level.tengo"), true},
		{filepath.Join(dir, "tiles.png"), true},
		{filepath.Join(dir, "preview.png"), false},
		{filepath.Join(dir, ".", "preview.png"), false},
		{filepath.Join(dir, "map.json"), false},
		{filepath.Join(dir, "notes.txt"), false},
	}
	for _, c := range cases {
		if got := accept(c.path); got != c.want {
			t.Fatalf("accept(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
