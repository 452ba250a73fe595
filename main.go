package main

import (
	"flag"
	"log/slog"
	"time"

	"github.com/soocke/tactic-replay-go/app"
	"github.com/soocke/tactic-replay-go/config"
	"github.com/soocke/tactic-replay-go/debug"
)

func main() {
	cfgPath := flag.String("config", "tactic-replay.json", "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime instrumentation")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	if cfg.Debug {
		debug.StartGoroutineLogger(2*time.Second, logger)
		debug.StartMemLogger(5*time.Second, logger)
	}

	application := app.NewApp("Tactic Replay", 680, 560, cfg, logger)
	application.Start()
}
