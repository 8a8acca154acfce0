package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilepaint/tilemap"
)

func parseMapConfig(values []string) (tilemap.MapConfig, error) {
	names := []string{"width", "height", "tile size"}
	nums := make([]int, len(names))
	for i, name := range names {
		if i >= len(values) {
			return tilemap.MapConfig{}, fmt.Errorf("%s is required", name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(values[i]))
		if err != nil {
			return tilemap.MapConfig{}, fmt.Errorf("%s must be a number", name)
		}
		nums[i] = n
	}
	cfg := tilemap.MapConfig{Width: nums[0], Height: nums[1], TileSize: nums[2]}
	if err := cfg.Validate(); err != nil {
		return tilemap.MapConfig{}, err
	}
	return cfg, nil
}

func newMapDialog(theme *widget.Theme, fontFace *text.Face, onNewMap func(width, height, tileSize int) error) (*formDialog, func(cfg tilemap.MapConfig)) {
	d := newFormDialog(theme, fontFace, "New map", []string{"Width (tiles)", "Height (tiles)", "Tile size (px)"}, func(values []string) error {
		cfg, err := parseMapConfig(values)
		if err != nil {
			return err
		}
		if onNewMap == nil {
			return nil
		}
		return onNewMap(cfg.Width, cfg.Height, cfg.TileSize)
	})
	return d, func(cfg tilemap.MapConfig) {
		d.Open(strconv.Itoa(cfg.Width), strconv.Itoa(cfg.Height), strconv.Itoa(cfg.TileSize))
	}
}
