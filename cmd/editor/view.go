package main

import "github.com/milk9111/tilepaint/tilemap"

const (
	minZoom = 0.25
	maxZoom = 4.0
)

// view maps between screen pixels and map pixels for the canvas area, which
// starts originX pixels from the left edge of the window.
type view struct {
	originX int
	panX    float64
	panY    float64
	zoom    float64
}

func newView(originX int) view {
	return view{originX: originX, panX: 16, panY: 64, zoom: 1}
}

// toMap converts a screen position into map pixel space.
func (v view) toMap(sx, sy int) (float64, float64) {
	return (float64(sx-v.originX) - v.panX) / v.zoom, (float64(sy) - v.panY) / v.zoom
}

// toScreen converts a map pixel position into screen space.
func (v view) toScreen(mx, my float64) (float64, float64) {
	return mx*v.zoom + v.panX + float64(v.originX), my*v.zoom + v.panY
}

func (v view) cellAt(cfg tilemap.MapConfig, sx, sy int) tilemap.Cell {
	return cfg.CellAt(v.toMap(sx, sy))
}

// zoomAt scales by factor while keeping the map point under (sx, sy) fixed.
func (v *view) zoomAt(sx, sy int, factor float64) {
	old := v.zoom
	z := old * factor
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	if z == old {
		return
	}
	mx, my := v.toMap(sx, sy)
	v.zoom = z
	v.panX = float64(sx-v.originX) - mx*z
	v.panY = float64(sy) - my*z
}

func (v *view) pan(dx, dy int) {
	v.panX += float64(dx)
	v.panY += float64(dy)
}
