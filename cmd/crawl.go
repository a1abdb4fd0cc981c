package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/engine"
	"github.com/online-judge-tools/template-generator-webapp/internal/generator"
	"github.com/online-judge-tools/template-generator-webapp/internal/judge"
	"github.com/online-judge-tools/template-generator-webapp/internal/logging"
	"github.com/online-judge-tools/template-generator-webapp/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().Bool("strict-listing", false, "Abort when any judge cannot be listed")
	viper.BindPFlag("listing.strict", rootCmd.Flags().Lookup("strict-listing"))
}

func runCrawl(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.WithRun(newLogger())

	opts, err := newRunOptions(logger)
	if err != nil {
		return err
	}
	return engine.Run(ctx, opts)
}

func newLogger() *slog.Logger {
	return logging.New(os.Stderr, config.GetVerbose())
}

func newListers() ([]judge.Lister, error) {
	return judge.NewAll(config.GetJudges(), judge.Options{
		Client:             &http.Client{Timeout: config.GetHTTPTimeout()},
		AtCoderURL:         config.GetAtCoderURL(),
		CodeforcesURL:      config.GetCodeforcesURL(),
		LibraryCheckerRepo: config.GetLibraryCheckerRepo(),
	})
}

// newRunOptions wires one crawl from the current configuration
func newRunOptions(logger *slog.Logger) (engine.RunOptions, error) {
	listers, err := newListers()
	if err != nil {
		return engine.RunOptions{}, err
	}

	p := config.GetSkipProbability()
	if p < 0 || p > 1 {
		return engine.RunOptions{}, fmt.Errorf("invalid engine.skip_probability: %v (must be within [0, 1])", p)
	}

	gen := generator.RateLimited(
		generator.NewOjPrepare(config.GetGeneratorCommand(), config.GetGeneratorTimeout()),
		config.GetGeneratorInterval(),
	)
	updater := engine.NewUpdater(gen, engine.NewRand(), logger)
	updater.SkipProbability = p

	return engine.RunOptions{
		Path:          config.GetSnapshotFile(),
		Store:         store.NewOs(),
		Listers:       listers,
		StrictListing: config.GetStrictListing(),
		Updater:       updater,
		Logger:        logger,
	}, nil
}
