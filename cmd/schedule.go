package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/engine"
	"github.com/online-judge-tools/template-generator-webapp/internal/logging"
	"github.com/robfig/cron"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scheduleNow bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the crawl periodically",
	Long: `Keep running and start a crawl on every tick of a cron schedule.

The schedule takes six cron fields (seconds first) or a descriptor such as
@daily, @hourly or @every 6h. A tick that fires while the previous crawl
is still running is skipped.

Examples:
  crawl schedule
  crawl schedule --cron "0 0 3 * * *"
  crawl schedule --cron "@every 12h" --now`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().String("cron", "@daily", "Cron spec of the crawl schedule")
	scheduleCmd.Flags().BoolVar(&scheduleNow, "now", false, "Also crawl once immediately")
	scheduleCmd.Flags().Bool("strict-listing", false, "Abort a crawl when any judge cannot be listed")

	viper.BindPFlag("schedule.cron", scheduleCmd.Flags().Lookup("cron"))
}

// crawlOnce runs one crawl unless another one is in progress
type crawlOnce struct {
	mu     sync.Mutex
	logger *slog.Logger
	run    func(ctx context.Context, logger *slog.Logger) error
}

func (c *crawlOnce) tick(ctx context.Context) {
	if !c.mu.TryLock() {
		c.logger.Warn("previous crawl still running, skipping tick")
		return
	}
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	logger := logging.WithRun(c.logger)
	if err := c.run(ctx, logger); err != nil {
		logger.Error("crawl failed", "err", err)
	}
}

// wait blocks until an in-progress crawl has finished
func (c *crawlOnce) wait() {
	c.mu.Lock()
	c.mu.Unlock()
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("strict-listing") {
		strict, _ := cmd.Flags().GetBool("strict-listing")
		viper.Set("listing.strict", strict)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	// Fail early on a broken configuration instead of on every tick
	if _, err := newRunOptions(logger); err != nil {
		return err
	}

	job := &crawlOnce{
		logger: logger,
		run: func(ctx context.Context, logger *slog.Logger) error {
			opts, err := newRunOptions(logger)
			if err != nil {
				return err
			}
			return engine.Run(ctx, opts)
		},
	}

	spec := config.GetSchedule()
	c := cron.New()
	if err := c.AddFunc(spec, func() { job.tick(ctx) }); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	logger.Info("scheduler started", "cron", spec)
	c.Start()
	if scheduleNow {
		go job.tick(ctx)
	}

	<-ctx.Done()
	logger.Info("stopping scheduler")
	c.Stop()
	job.wait()
	return nil
}
