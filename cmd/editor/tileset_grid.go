package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

var tileHighlight = color.RGBA{255, 220, 60, 255}

// TilesetGrid shows a tileset image and reports clicks as tile coordinates.
// The picked tile is outlined.
type TilesetGrid struct {
	Tileset   *ebiten.Image
	TileSize  int
	Graphic   *widget.Graphic
	Container *widget.Container

	display  *ebiten.Image
	pixel    *ebiten.Image
	selected [2]int
	hasSel   bool
}

func NewTilesetGrid(tileset *ebiten.Image, tileSize int, onSelect func(x, y int)) *TilesetGrid {
	b := tileset.Bounds()
	g := &TilesetGrid{
		Tileset:  tileset,
		TileSize: tileSize,
		display:  ebiten.NewImage(b.Dx(), b.Dy()),
		pixel:    ebiten.NewImage(1, 1),
	}
	g.pixel.Fill(color.White)
	g.redraw()

	g.Container = widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewAnchorLayout(),
		),
	)
	g.Graphic = widget.NewGraphic(
		widget.GraphicOpts.Image(g.display),
		widget.GraphicOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(b.Dx(), b.Dy()),
			widget.WidgetOpts.MouseButtonClickedHandler(func(args *widget.WidgetMouseButtonClickedEventArgs) {
				if args.Button != ebiten.MouseButtonLeft || onSelect == nil {
					return
				}
				r := args.Widget.Rect
				x, y, ok := tileAtOffset(args.OffsetX, args.OffsetY, r.Dx(), r.Dy(), b.Dx(), b.Dy(), tileSize)
				if ok {
					onSelect(x, y)
				}
			}),
		),
	)
	g.Container.AddChild(g.Graphic)
	return g
}

// tileAtOffset maps a click inside a widget of size (rectW, rectH) to a tile
// of an image drawn centered in it.
func tileAtOffset(offX, offY, rectW, rectH, imgW, imgH, tileSize int) (int, int, bool) {
	if tileSize <= 0 {
		return 0, 0, false
	}
	px := offX - (rectW-imgW)/2
	py := offY - (rectH-imgH)/2
	if px < 0 || py < 0 || px >= imgW || py >= imgH {
		return 0, 0, false
	}
	x, y := px/tileSize, py/tileSize
	if x >= imgW/tileSize || y >= imgH/tileSize {
		return 0, 0, false
	}
	return x, y, true
}

func (g *TilesetGrid) SetSelected(x, y int) {
	g.selected = [2]int{x, y}
	g.hasSel = true
	g.redraw()
}

func (g *TilesetGrid) redraw() {
	g.display.Clear()
	g.display.DrawImage(g.Tileset, nil)
	if !g.hasSel {
		return
	}
	ts := float64(g.TileSize)
	x, y := float64(g.selected[0])*ts, float64(g.selected[1])*ts
	g.outline(x, y, ts, 2)
}

func (g *TilesetGrid) outline(x, y, size, width float64) {
	edges := [][4]float64{
		{x, y, size, width},
		{x, y + size - width, size, width},
		{x, y, width, size},
		{x + size - width, y, width, size},
	}
	for _, e := range edges {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(e[2], e[3])
		op.GeoM.Translate(e[0], e[1])
		op.ColorScale.ScaleWithColor(tileHighlight)
		g.display.DrawImage(g.pixel, op)
	}
}

// Dispose frees the images owned by the grid. The tileset itself is not
// owned.
func (g *TilesetGrid) Dispose() {
	g.display.Deallocate()
	g.pixel.Deallocate()
}
