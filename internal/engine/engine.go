package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/online-judge-tools/template-generator-webapp/internal/generator"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
)

// DefaultSkipProbability is the chance of leaving an already known problem
// untouched during a run. The remaining 5% are regenerated.
const DefaultSkipProbability = 0.95

// Rand is the random source driving the shuffle and the skip decisions.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a time seeded random source
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Stats summarizes one update pass
type Stats struct {
	Candidates int
	Skipped    int
	Generated  int
	Failed     int
	Added      int
}

// Updater merges freshly listed problems into a snapshot
type Updater struct {
	Generator       generator.Generator
	Rand            Rand
	Logger          *slog.Logger
	SkipProbability float64
}

// NewUpdater creates an updater using DefaultSkipProbability
func NewUpdater(g generator.Generator, r Rand, logger *slog.Logger) *Updater {
	return &Updater{
		Generator:       g,
		Rand:            r,
		Logger:          logger,
		SkipProbability: DefaultSkipProbability,
	}
}

// Update visits candidates in random order. Known problems are skipped with
// probability SkipProbability; every other candidate gets its templates
// (re)generated and is upserted into snap. A failed generation is recorded
// as an empty template set. Entries are never removed from snap.
//
// On cancellation the pass stops early; snap keeps every update made so far.
func (u *Updater) Update(ctx context.Context, snap models.Snapshot, candidates []models.Problem) (Stats, error) {
	order := slices.Clone(candidates)
	u.Rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	stats := Stats{Candidates: len(order)}
	for i, p := range order {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("update interrupted after %d of %d problems: %w", i, len(order), err)
		}

		known := snap.Has(p.URL)
		if known && u.Rand.Float64() < u.SkipProbability {
			stats.Skipped++
			continue
		}

		u.Logger.Debug("generating templates", "url", p.URL, "title", p.Title)
		template, err := u.Generator.Generate(ctx, p.URL)
		if err != nil {
			if ctx.Err() != nil {
				// the tool was killed by the interruption; keep the old entry
				return stats, fmt.Errorf("update interrupted after %d of %d problems: %w", i, len(order), ctx.Err())
			}
			u.Logger.Error("generation failed", "url", p.URL, "title", p.Title, "err", err)
			template = map[string]string{}
			stats.Failed++
		} else {
			stats.Generated++
		}
		if !known {
			stats.Added++
		}
		snap.Put(p, template)
	}
	return stats, nil
}
