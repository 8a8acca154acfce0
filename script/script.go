package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilepaint/tilemap"
)

// ModuleName is the import name scripts use for the editor bindings.
const ModuleName = "tilemap"

var stdModules = []string{"fmt", "math", "text", "rand", "enum", "times"}

// Options tune a script run. Vars are exposed as script globals.
type Options struct {
	MaxAllocs int64
	Vars      map[string]any
}

// Run compiles src and runs it against ed. The script stops when ctx is
// done.
func Run(ctx context.Context, ed *tilemap.Editor, src []byte, opts Options) error {
	compiled, err := Compile(ed, src, opts)
	if err != nil {
		return err
	}
	if err := compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("script: run: %w", err)
	}
	return nil
}

// Compile prepares src without running it.
func Compile(ed *tilemap.Editor, src []byte, opts Options) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)

	modules := stdlib.GetModuleMap(stdModules...)
	modules.AddBuiltinModule(ModuleName, Module(ed))
	script.SetImports(modules)
	if opts.MaxAllocs > 0 {
		script.SetMaxAllocs(opts.MaxAllocs)
	}
	if _, ok := opts.Vars["seed"]; !ok {
		_ = script.Add("seed", 0)
	}
	for name, v := range opts.Vars {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("script: var %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return compiled, nil
}

// Module builds the attributes of the tilemap module bound to ed.
func Module(ed *tilemap.Editor) map[string]tengo.Object {
	values := map[string]tengo.Object{}

	values["width"] = &tengo.UserFunction{Name: "width", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ed.Document().Config().Width)}, nil
	}}

	values["height"] = &tengo.UserFunction{Name: "height", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ed.Document().Config().Height)}, nil
	}}

	values["tile_size"] = &tengo.UserFunction{Name: "tile_size", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ed.Document().Config().TileSize)}, nil
	}}

	values["place"] = &tengo.UserFunction{Name: "place", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := intArgs("place", args, "x", "y", "tile_x", "tile_y")
		if err != nil {
			return nil, err
		}
		if err := checkSource(ed, v[2], v[3]); err != nil {
			return errorObject(err), nil
		}
		return result(ed.Place(v[0], v[1], v[2], v[3]))
	}}

	values["erase"] = &tengo.UserFunction{Name: "erase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := intArgs("erase", args, "x", "y")
		if err != nil {
			return nil, err
		}
		return result(ed.Erase(v[0], v[1]))
	}}

	values["fill"] = &tengo.UserFunction{Name: "fill", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := intArgs("fill", args, "x0", "y0", "x1", "y1", "tile_x", "tile_y")
		if err != nil {
			return nil, err
		}
		if err := checkSource(ed, v[4], v[5]); err != nil {
			return errorObject(err), nil
		}
		cfg := ed.Document().Config()
		n := 0
		for _, c := range rectCells(cfg, v[0], v[1], v[2], v[3]) {
			if err := ed.Place(c.X, c.Y, v[4], v[5]); err != nil {
				return errorObject(err), nil
			}
			n++
		}
		return &tengo.Int{Value: int64(n)}, nil
	}}

	values["delete"] = &tengo.UserFunction{Name: "delete", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := intArgs("delete", args, "x0", "y0", "x1", "y1")
		if err != nil {
			return nil, err
		}
		cells := rectCells(ed.Document().Config(), v[0], v[1], v[2], v[3])
		return &tengo.Int{Value: int64(ed.DeleteCells(cells))}, nil
	}}

	values["tile_at"] = &tengo.UserFunction{Name: "tile_at", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := intArgs("tile_at", args, "x", "y")
		if err != nil {
			return nil, err
		}
		t, ok := ed.Document().TopTileAt(v[0], v[1])
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return tileObject(t), nil
	}}

	values["add_layer"] = &tengo.UserFunction{Name: "add_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: ed.AddLayer().ID}, nil
	}}

	values["active_layer"] = &tengo.UserFunction{Name: "active_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: ed.Document().ActiveLayer()}, nil
	}}

	values["layers"] = &tengo.UserFunction{Name: "layers", Value: func(args ...tengo.Object) (tengo.Object, error) {
		arr := &tengo.Array{}
		for _, l := range ed.Document().Layers() {
			arr.Value = append(arr.Value, &tengo.String{Value: l.ID})
		}
		return arr, nil
	}}

	values["select_layer"] = &tengo.UserFunction{Name: "select_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		id, err := stringArg("select_layer", args)
		if err != nil {
			return nil, err
		}
		return result(ed.SelectLayer(id))
	}}

	values["rename_layer"] = &tengo.UserFunction{Name: "rename_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		id, err := stringArg("rename_layer", args[:1])
		if err != nil {
			return nil, err
		}
		name, ok := tengo.ToString(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[1].TypeName()}
		}
		return result(ed.RenameLayer(id, name))
	}}

	values["set_visible"] = &tengo.UserFunction{Name: "set_visible", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		id, err := stringArg("set_visible", args[:1])
		if err != nil {
			return nil, err
		}
		visible, _ := tengo.ToBool(args[1])
		return result(ed.SetLayerVisible(id, visible))
	}}

	values["select_tile"] = &tengo.UserFunction{Name: "select_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := intArgs("select_tile", args, "x", "y")
		if err != nil {
			return nil, err
		}
		return result(ed.SelectSourceTile(v[0], v[1]))
	}}

	values["undo"] = &tengo.UserFunction{Name: "undo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(ed.Undo()), nil
	}}

	values["redo"] = &tengo.UserFunction{Name: "redo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(ed.Redo()), nil
	}}

	return values
}

func intArgs(fn string, args []tengo.Object, names ...string) ([]int, error) {
	if len(args) != len(names) {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]int, len(args))
	for i, a := range args {
		v, ok := tengo.ToInt(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("%s(%s)", fn, names[i]),
				Expected: "int",
				Found:    a.TypeName(),
			}
		}
		out[i] = v
	}
	return out, nil
}

func stringArg(fn string, args []tengo.Object) (string, error) {
	if len(args) != 1 {
		return "", tengo.ErrWrongNumArguments
	}
	s, ok := tengo.ToString(args[0])
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: fn, Expected: "string", Found: args[0].TypeName()}
	}
	return strings.TrimSpace(s), nil
}

// checkSource rejects tileset coordinates outside a loaded tileset.
func checkSource(ed *tilemap.Editor, x, y int) error {
	ts, ok := ed.Registry().Tileset()
	if !ok || ts.Contains(x, y) {
		return nil
	}
	return fmt.Errorf("tilemap: source tile (%d,%d) of %dx%d: %w", x, y, ts.Columns, ts.Rows, tilemap.ErrOutOfBounds)
}

func rectCells(cfg tilemap.MapConfig, x0, y0, x1, y1 int) []tilemap.Cell {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	var cells []tilemap.Cell
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if cfg.InBounds(x, y) {
				cells = append(cells, tilemap.Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

func tileObject(t tilemap.PlacedTile) tengo.Object {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x":       &tengo.Int{Value: int64(t.X)},
		"y":       &tengo.Int{Value: int64(t.Y)},
		"tileX":   &tengo.Int{Value: int64(t.TileX)},
		"tileY":   &tengo.Int{Value: int64(t.TileY)},
		"layerId": &tengo.String{Value: t.LayerID},
	}}
}

func result(err error) (tengo.Object, error) {
	if err != nil {
		return errorObject(err), nil
	}
	return tengo.TrueValue, nil
}

func errorObject(err error) tengo.Object {
	return &tengo.Error{Value: &tengo.String{Value: err.Error()}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
