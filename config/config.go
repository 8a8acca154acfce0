package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/milk9111/tilepaint/tilemap"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Map             tilemap.MapConfig `yaml:"map"`
	TilesetTileSize int               `yaml:"tileset_tile_size"`
	AssetsDir       string            `yaml:"assets_dir"`
	ExportPath      string            `yaml:"export_path"`
	ScriptsDir      string            `yaml:"scripts_dir"`
	LogLevel        string            `yaml:"log_level"`
	Server          ServerConfig      `yaml:"server"`
	Editor          EditorConfig      `yaml:"editor"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// EditorConfig sizes the desktop editor window and panels.
type EditorConfig struct {
	WindowWidth     int  `yaml:"window_width"`
	WindowHeight    int  `yaml:"window_height"`
	LeftPanelWidth  int  `yaml:"left_panel_width"`
	RightPanelWidth int  `yaml:"right_panel_width"`
	WatchAssets     bool `yaml:"watch_assets"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return c
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := c.Map.Validate(); err != nil {
		return err
	}
	if c.TilesetTileSize <= 0 {
		return fmt.Errorf("tileset_tile_size must be positive, got %d", c.TilesetTileSize)
	}
	if c.ExportPath == "" {
		return errors.New("export_path must not be empty")
	}
	return nil
}
