package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilepaint/assets"
)

func buildTilesetPanelUI(
	assetList []assets.AssetInfo,
	width int,
	fontFace *text.Face,
	cb EditorCallbacks,
) *TilesetPanelUI {
	var tileGrid *TilesetGrid

	tilesetPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			),
		),
	)

	tilesetPanel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Tilesets", fontFace, panelLabelColor),
	))

	list := widget.NewList(
		widget.ListOpts.Entries(assetEntries(assetList)),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if asset, ok := e.(assets.AssetInfo); ok {
				return asset.Name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if cb.OnAssetSelected == nil {
				return
			}
			if asset, ok := args.Entry.(assets.AssetInfo); ok {
				cb.OnAssetSelected(asset)
			}
		}),
		widget.ListOpts.ContainerOpts(
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(0, 140),
			),
		),
	)
	tilesetPanel.AddChild(list)

	tileLabel := widget.NewLabel(
		widget.LabelOpts.Text("No tile selected", fontFace, panelLabelColor),
	)
	tilesetPanel.AddChild(tileLabel)

	applyTileset := func(img *ebiten.Image, tileSize int) {
		if tileGrid != nil {
			tilesetPanel.RemoveChild(tileGrid.Container)
			tileGrid.Dispose()
		}
		tileGrid = NewTilesetGrid(img, tileSize, func(x, y int) {
			if cb.OnTileSelected != nil {
				cb.OnTileSelected(x, y)
			}
		})
		tileLabel.Label = "No tile selected"
		tilesetPanel.AddChild(tileGrid.Container)
	}

	setTilesetSelection := func(x, y int) {
		tileLabel.Label = fmt.Sprintf("Tile (%d, %d)", x, y)
		if tileGrid != nil {
			tileGrid.SetSelected(x, y)
		}
	}

	setAssets := func(infos []assets.AssetInfo) {
		list.SetEntries(assetEntries(infos))
	}

	return &TilesetPanelUI{
		Container:           tilesetPanel,
		ApplyTileset:        applyTileset,
		SetTilesetSelection: setTilesetSelection,
		SetAssets:           setAssets,
	}
}

func assetEntries(list []assets.AssetInfo) []any {
	entries := make([]any, 0, len(list))
	for _, a := range list {
		entries = append(entries, a)
	}
	return entries
}
