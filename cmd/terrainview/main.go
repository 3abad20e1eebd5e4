// Package main is the entry point for the terrain viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/app"
	"github.com/Faultbox/terrainview/internal/command"
	"github.com/Faultbox/terrainview/internal/config"
	"github.com/Faultbox/terrainview/internal/heightmap"
	"github.com/Faultbox/terrainview/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Terrain Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	path, err := heightmapPath(cfg.Terrain.Heightmap)
	if err != nil {
		logger.Fatal("no heightmap selected", zap.Error(err))
	}

	hm, err := heightmap.Load(path)
	if err != nil {
		logger.Fatal("failed to load heightmap", zap.String("path", path), zap.Error(err))
	}
	logger.Info("heightmap loaded",
		zap.String("path", path),
		zap.Int("width", hm.Width),
		zap.Int("height", hm.Height),
	)

	params := command.Params{SkipSize: cfg.Terrain.SkipSize, StepSize: cfg.Terrain.StepSize}
	if params.SkipSize == 0 || params.StepSize == 0 {
		params = command.Params{}
	}
	prompter := command.NewPrompter(os.Stdin, os.Stdout)

	a, err := app.New(cfg, hm, params, prompter.Ask)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	if config.SaveRequested() {
		p := a.Params()
		path, err := cfg.SaveEffective(p.SkipSize, p.StepSize)
		if err != nil {
			logger.Error("failed to save config", zap.String("path", path), zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("path", path))
		}
	}

	logger.Info("viewer closed normally")
}

// heightmapPath returns the configured heightmap, or asks for one with a
// native file dialog when none is configured.
func heightmapPath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	filename, err := dialog.File().
		Filter("Heightmap images", heightmap.Extensions...).
		Filter("All Files", "*").
		Title("Open Heightmap").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", errors.New("file dialog cancelled")
	}
	return filename, err
}
