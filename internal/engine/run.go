package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/online-judge-tools/template-generator-webapp/internal/judge"
	"github.com/online-judge-tools/template-generator-webapp/internal/store"
)

// RunOptions wires one crawl
type RunOptions struct {
	Path          string
	Store         *store.Store
	Listers       []judge.Lister
	StrictListing bool
	Updater       *Updater
	Logger        *slog.Logger
}

// Run loads the snapshot at opts.Path, lists every judge, updates the
// snapshot and saves it back.
//
// A corrupt snapshot aborts before any listing or generation and leaves the
// file alone. Once loaded, the snapshot is saved on every exit path,
// including errors and panics during the update.
func Run(ctx context.Context, opts RunOptions) (err error) {
	logger := opts.Logger

	snap, err := opts.Store.Load(opts.Path)
	if err != nil {
		return err
	}
	logger.Info("loaded snapshot", "path", opts.Path, "entries", len(snap))

	defer func() {
		if saveErr := opts.Store.Save(opts.Path, snap); saveErr != nil {
			logger.Error("failed to save snapshot", "path", opts.Path, "err", saveErr)
			err = errors.Join(err, saveErr)
			return
		}
		logger.Info("saved snapshot", "path", opts.Path, "entries", len(snap))
	}()

	problems, err := judge.ListAll(ctx, opts.Listers, opts.StrictListing, logger)
	if err != nil {
		return err
	}
	logger.Info("collected candidates", "count", len(problems))

	stats, err := opts.Updater.Update(ctx, snap, problems)
	logger.Info("update finished",
		"candidates", stats.Candidates,
		"skipped", stats.Skipped,
		"generated", stats.Generated,
		"failed", stats.Failed,
		"added", stats.Added,
	)
	return err
}
