package main

import (
	"flag"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/milk9111/tilepaint/common"
	"github.com/milk9111/tilepaint/config"
	tileserver "github.com/milk9111/tilepaint/server"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "tilepaint.yaml", "path to config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	common.SetupLogging(cfg.LogLevel)
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	session, err := tileserver.NewSession(cfg.Map, cfg.TilesetTileSize)
	if err != nil {
		log.Fatal().Err(err).Msg("create editor session")
	}
	defer session.Close()

	h := tileserver.Handler{
		Session:         session,
		TilesetTileSize: cfg.TilesetTileSize,
		ExportName:      cfg.ExportPath,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	log.Info().
		Str("addr", cfg.Server.Addr).
		Int("width", cfg.Map.Width).
		Int("height", cfg.Map.Height).
		Msg("tile server listening")
	s.Spin()
}
