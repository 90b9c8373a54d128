package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/application/game"
	"github.com/younwookim/tilebound/internal/application/replay"
	"github.com/younwookim/tilebound/internal/application/scene/playing"
	"github.com/younwookim/tilebound/internal/application/session"
	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/infrastructure/config"
	"github.com/younwookim/tilebound/internal/infrastructure/logging"
)

//go:embed configs
var configFS embed.FS

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	levelFlag := flag.String("level", "demo", "Level folder to start in")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	flag.Parse()

	// Load configurations using embedded filesystem
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return fmt.Errorf("failed to get config subfs: %w", err)
	}
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadAll()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Tuning.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	level := *levelFlag
	var src input.Source
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			return err
		}
		if data.Level != "" {
			level = data.Level
		}
		src = replay.NewReplayer(*data)
		log.Info("replay loaded",
			zap.String("file", *replayFlag),
			zap.String("level", level),
			zap.Int("frames", len(data.Frames)))
	}

	levels, start, err := session.LoadLevels(loader, level)
	if err != nil {
		return err
	}
	s, err := session.New(cfg, levels, start, log)
	if err != nil {
		return err
	}

	g := game.New(playing.New(s, src, level, *recordFlag, log), cfg.Tuning.Display, log)
	g.SetDT(cfg.Tuning.FrameDT())
	defer g.Close()
	g.Configure()

	log.Info("starting", zap.String("level", level), zap.Int("levels", len(levels)))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
