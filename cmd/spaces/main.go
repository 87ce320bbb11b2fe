// Package main is the entry point for the Spaces first-person client.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/config"
	"github.com/Faultbox/spaces/internal/game/host"
	"github.com/Faultbox/spaces/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config save error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config saved to %s\n", config.ConfigDir())
		return
	}

	if path := config.WritePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config write error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Spaces ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := host.New(cfg)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}

	runErr := g.Run()
	if err := g.Close(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	if runErr != nil {
		logger.Fatal("frame loop stopped", zap.Error(runErr))
	}

	logger.Info("closed normally")
}
