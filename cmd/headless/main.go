// Command headless runs the simulation without a window, driven by a Lua
// input script or a recorded replay, and logs a summary.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/application/replay"
	"github.com/younwookim/tilebound/internal/application/session"
	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/infrastructure/config"
	"github.com/younwookim/tilebound/internal/infrastructure/logging"
	"github.com/younwookim/tilebound/internal/infrastructure/scripting"
)

var errBadProfile = errors.New("profile must be cpu or mem")

type options struct {
	configs string
	level   string
	frames  int
	script  string
	replay  string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	flag.StringVar(&opts.configs, "configs", "cmd/game/configs", "Config directory")
	flag.StringVar(&opts.level, "level", "demo", "Level folder to start in")
	flag.IntVar(&opts.frames, "frames", 600, "Frames to simulate; a replay stops at its end")
	flag.StringVar(&opts.script, "script", "", "Lua input script (defaults to <configs>/scripts/walk_right.lua)")
	flag.StringVar(&opts.replay, "replay", "", "Recorded input file; overrides -script")
	profFlag := flag.String("profile", "", "Write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *profFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return errBadProfile
	}

	loader := config.NewLoader(opts.configs)
	cfg, err := loader.LoadAll()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Tuning.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	s, err := simulate(loader, cfg, opts, log)
	if err != nil {
		return err
	}
	s.LogSummary("headless run finished")
	return nil
}

// simulate builds the input source and session and runs them
func simulate(loader *config.Loader, cfg *config.GameConfig, opts options, log *zap.Logger) (*session.Session, error) {
	var src input.Source
	frames := opts.frames
	level := opts.level

	if opts.replay != "" {
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return nil, err
		}
		if data.Level != "" {
			level = data.Level
		}
		frames = min(frames, len(data.Frames))
		src = replay.NewReplayer(*data)
		log.Info("replay loaded", zap.String("file", opts.replay), zap.Int("frames", len(data.Frames)))
	} else {
		path := opts.script
		if path == "" {
			path = opts.configs + "/scripts/walk_right.lua"
		}
		script, err := scripting.Load(path, log)
		if err != nil {
			return nil, err
		}
		defer script.Close()
		src = script
		log.Info("input script loaded", zap.String("file", path))
	}

	levels, start, err := session.LoadLevels(loader, level)
	if err != nil {
		return nil, err
	}
	s, err := session.New(cfg, levels, start, log)
	if err != nil {
		return nil, err
	}

	log.Info("simulating", zap.String("level", level), zap.Int("frames", frames))
	if err := s.Run(src, frames); err != nil {
		return nil, err
	}
	return s, nil
}
