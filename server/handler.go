package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/render"
	"github.com/milk9111/tilepaint/tilemap"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Session         *Session
	TilesetTileSize int
	ExportName      string
}

var errInvalidJSON = errors.New("invalid json")

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(), accessLog())

	api := s.Group("/api")
	api.GET("/map", h.getMap)
	api.POST("/map", h.newMap)
	api.POST("/tileset", h.uploadTileset)
	api.POST("/tileset/select", h.selectTile)
	api.POST("/tool", h.setTool)
	api.POST("/pointer/down", h.pointerDown)
	api.POST("/pointer/move", h.pointerMove)
	api.POST("/pointer/up", h.pointerUp)
	api.POST("/keys/down", h.keyDown)
	api.POST("/keys/up", h.keyUp)
	api.POST("/selection/delete", h.deleteSelection)
	api.POST("/layers", h.addLayer)
	api.POST("/layers/:id/select", h.selectLayer)
	api.POST("/layers/:id/visible", h.setLayerVisible)
	api.POST("/layers/:id/rename", h.renameLayer)
	api.POST("/layers/:id/up", h.moveLayerUp)
	api.POST("/layers/:id/down", h.moveLayerDown)
	api.POST("/undo", h.undo)
	api.POST("/redo", h.redo)
	api.GET("/export", h.exportJSON)
	api.GET("/export.png", h.exportPNG)
}

type newMapRequest struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

type cellRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// pointerRequest carries either a grid cell or a pixel position in map
// space. Pixels win when both are present.
type pointerRequest struct {
	X  *int     `json:"x"`
	Y  *int     `json:"y"`
	PX *float64 `json:"px"`
	PY *float64 `json:"py"`
}

type toolRequest struct {
	Tool string `json:"tool"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type visibleRequest struct {
	Visible bool `json:"visible"`
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h Handler) getMap(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Session.Snapshot())
}

func (h Handler) newMap(c context.Context, ctx *app.RequestContext) {
	var body newMapRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		return ed.NewMap(tilemap.MapConfig{Width: body.Width, Height: body.Height, TileSize: body.TileSize})
	})
}

func (h Handler) uploadTileset(c context.Context, ctx *app.RequestContext) {
	tileSize := h.TilesetTileSize
	if v := ctx.Query("tile_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_tile_size", "tile_size must be a positive integer")
			return
		}
		tileSize = n
	}
	name := strings.TrimSpace(ctx.Query("name"))
	if name == "" {
		name = "upload"
	}

	img, err := assets.DecodeBytes(name, ctx.Request.Body())
	if err != nil {
		log.Warn().Err(err).Str("name", name).Msg("rejected tileset upload")
		writeError(ctx, err)
		return
	}
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		_, err := ed.LoadTileset(name, img, tileSize)
		return err
	})
}

func (h Handler) selectTile(c context.Context, ctx *app.RequestContext) {
	var body cellRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	if body.X == nil || body.Y == nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_tile", "x and y are required")
		return
	}
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		return ed.SelectSourceTile(*body.X, *body.Y)
	})
}

func (h Handler) setTool(c context.Context, ctx *app.RequestContext) {
	var body toolRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	tool, err := tilemap.ParseTool(body.Tool)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_tool", err.Error())
		return
	}
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		ed.SetTool(tool)
		return nil
	})
}

func (h Handler) pointerDown(c context.Context, ctx *app.RequestContext) {
	h.pointer(ctx, func(ed *tilemap.Editor, cell tilemap.Cell) error {
		return ed.PointerDown(cell)
	})
}

func (h Handler) pointerMove(c context.Context, ctx *app.RequestContext) {
	h.pointer(ctx, func(ed *tilemap.Editor, cell tilemap.Cell) error {
		return ed.PointerMove(cell)
	})
}

func (h Handler) pointerUp(c context.Context, ctx *app.RequestContext) {
	h.pointer(ctx, func(ed *tilemap.Editor, cell tilemap.Cell) error {
		ed.PointerUp(cell)
		return nil
	})
}

func (h Handler) pointer(ctx *app.RequestContext, fn func(ed *tilemap.Editor, cell tilemap.Cell) error) {
	var body pointerRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	if (body.PX == nil || body.PY == nil) && (body.X == nil || body.Y == nil) {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_pointer", "either x,y or px,py is required")
		return
	}
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		var cell tilemap.Cell
		if body.PX != nil && body.PY != nil {
			cell = ed.Document().Config().CellAt(*body.PX, *body.PY)
		} else {
			cell = tilemap.Cell{X: *body.X, Y: *body.Y}
		}
		return fn(ed, cell)
	})
}

func (h Handler) keyDown(c context.Context, ctx *app.RequestContext) {
	h.key(ctx, func(ed *tilemap.Editor, k tilemap.Key) { ed.KeyDown(k) })
}

func (h Handler) keyUp(c context.Context, ctx *app.RequestContext) {
	h.key(ctx, func(ed *tilemap.Editor, k tilemap.Key) { ed.KeyUp(k) })
}

func (h Handler) key(ctx *app.RequestContext, fn func(ed *tilemap.Editor, k tilemap.Key)) {
	var body keyRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	k, err := tilemap.ParseKey(body.Key)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_key", err.Error())
		return
	}
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		fn(ed, k)
		return nil
	})
}

func (h Handler) deleteSelection(c context.Context, ctx *app.RequestContext) {
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		ed.DeleteSelection()
		return nil
	})
}

func (h Handler) addLayer(c context.Context, ctx *app.RequestContext) {
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		ed.AddLayer()
		return nil
	})
}

func (h Handler) selectLayer(c context.Context, ctx *app.RequestContext) {
	id := ctx.Param("id")
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		return ed.SelectLayer(id)
	})
}

func (h Handler) setLayerVisible(c context.Context, ctx *app.RequestContext) {
	var body visibleRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	id := ctx.Param("id")
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		return ed.SetLayerVisible(id, body.Visible)
	})
}

func (h Handler) renameLayer(c context.Context, ctx *app.RequestContext) {
	var body renameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, err)
		return
	}
	id := ctx.Param("id")
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		return ed.RenameLayer(id, body.Name)
	})
}

func (h Handler) moveLayerUp(c context.Context, ctx *app.RequestContext) {
	id := ctx.Param("id")
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		return ed.MoveLayerUp(id)
	})
}

func (h Handler) moveLayerDown(c context.Context, ctx *app.RequestContext) {
	id := ctx.Param("id")
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		return ed.MoveLayerDown(id)
	})
}

func (h Handler) undo(c context.Context, ctx *app.RequestContext) {
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		ed.Undo()
		return nil
	})
}

func (h Handler) redo(c context.Context, ctx *app.RequestContext) {
	h.mutate(ctx, func(ed *tilemap.Editor) error {
		ed.Redo()
		return nil
	})
}

func (h Handler) exportJSON(c context.Context, ctx *app.RequestContext) {
	var b []byte
	err := h.Session.Do(func(ed *tilemap.Editor) error {
		var err error
		b, err = ed.Document().MarshalExport()
		return err
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportName()))
	ctx.Data(consts.StatusOK, "application/json", b)
}

func (h Handler) exportPNG(c context.Context, ctx *app.RequestContext) {
	opts := render.DefaultOptions()
	opts.Grid = ctx.Query("grid") == "1" || ctx.Query("grid") == "true"

	var buf bytes.Buffer
	err := h.Session.Do(func(ed *tilemap.Editor) error {
		var src render.TileSource
		if ts, ok := ed.Registry().Tileset(); ok {
			opts.SourceTileSize = ts.TileSize
			if img, ok := ed.Registry().Image().(render.TileSource); ok {
				src = img
			}
		}
		return render.WritePNG(&buf, ed.Document().Export(), src, opts)
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	name := strings.TrimSuffix(h.exportName(), ".json") + ".png"
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Data(consts.StatusOK, "image/png", buf.Bytes())
}

func (h Handler) exportName() string {
	if h.ExportName == "" {
		return tilemap.DefaultExportName
	}
	return h.ExportName
}

// mutate applies fn to the session and answers with the resulting snapshot.
func (h Handler) mutate(ctx *app.RequestContext, fn func(ed *tilemap.Editor) error) {
	var snap tilemap.Snapshot
	err := h.Session.Do(func(ed *tilemap.Editor) error {
		if err := fn(ed); err != nil {
			return err
		}
		snap = ed.Snapshot()
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Str("path", string(ctx.Path())).Msg("request rejected")
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, snap)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, errInvalidJSON):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
	case errors.Is(err, assets.ErrNotImage):
		writeErrorBody(ctx, consts.StatusUnsupportedMediaType, "not_an_image", err.Error())
	case errors.Is(err, tilemap.ErrInvalidConfig):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_config", err.Error())
	case errors.Is(err, tilemap.ErrOutOfBounds):
		writeErrorBody(ctx, consts.StatusBadRequest, "out_of_bounds", err.Error())
	case errors.Is(err, tilemap.ErrInvalidTileset):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_tileset", err.Error())
	case errors.Is(err, tilemap.ErrInvalidName):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_name", err.Error())
	case errors.Is(err, tilemap.ErrUnknownLayer):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_layer", err.Error())
	case errors.Is(err, tilemap.ErrNoTileset):
		writeErrorBody(ctx, consts.StatusConflict, "no_tileset", err.Error())
	case errors.Is(err, tilemap.ErrNoSourceTile):
		writeErrorBody(ctx, consts.StatusConflict, "no_source_tile", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled request error")
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func accessLog() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		log.Debug().
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", ctx.Response.StatusCode()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
