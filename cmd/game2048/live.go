package main

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/game2048/internal/config"
)

// liveConstants holds the constants that new games start with. With --watch
// it follows the constants file.
type liveConstants struct {
	current atomic.Pointer[config.Constants]
}

func newLiveConstants(c config.Constants) *liveConstants {
	l := &liveConstants{}
	l.Set(c)
	return l
}

// Get returns a copy of the current constants.
func (l *liveConstants) Get() config.Constants {
	return l.current.Load().Clone()
}

// Set replaces the current constants.
func (l *liveConstants) Set(c config.Constants) {
	l.current.Store(&c)
}

// follow starts watching path in g when --watch is set and calls apply for
// each reload. Sessions pick their own difficulty on top, so only the
// --difficulty preset is applied here.
func follow(ctx context.Context, g *errgroup.Group, path string, logger *log.Logger, apply func(config.Constants)) error {
	if !flagWatch {
		return nil
	}
	updates, err := watch(ctx, g, path, config.DifficultyPreset(flagDifficulty), logger)
	if err != nil || updates == nil {
		return err
	}
	g.Go(func() error {
		for c := range updates {
			apply(c)
		}
		return nil
	})
	return nil
}
