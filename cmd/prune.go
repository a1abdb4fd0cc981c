package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/judge"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
	"github.com/online-judge-tools/template-generator-webapp/internal/store"
	"github.com/spf13/cobra"
)

var (
	pruneDryRun bool
	pruneForce  bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove snapshot entries of problems the judges no longer list",
	Long: `Remove entries whose problem has disappeared from its judge's listing.

A regular crawl never deletes entries. prune lists every configured judge
and reports the entries that are no longer published. Entries of judges that
are not configured are always kept, and nothing is removed unless every
configured judge was listed successfully.

Example:
  crawl prune              # Show what would be pruned
  crawl prune --force      # Actually prune entries`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", true, "Show what would be pruned without deleting")
	pruneCmd.Flags().BoolVar(&pruneForce, "force", false, "Actually delete entries (overrides dry-run)")
}

type pruneCandidate struct {
	URL    string
	Title  string
	Judge  string
	Reason string
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path := config.GetSnapshotFile()
	s := store.NewOs()
	snap, err := s.Load(path)
	if err != nil {
		return err
	}

	listers, err := newListers()
	if err != nil {
		return err
	}

	// A partial listing would make every entry of the missing judge look stale
	problems, err := judge.ListAll(ctx, listers, true, newLogger())
	if err != nil {
		return err
	}

	judges := make([]string, 0, len(listers))
	for _, l := range listers {
		judges = append(judges, l.Name())
	}
	toPrune, toPreserve := findStale(snap, problems, judges)

	out := cmd.OutOrStdout()
	if len(toPrune) == 0 {
		fmt.Fprintln(out, "No entries to prune")
		return nil
	}

	fmt.Fprintf(out, "Entries to prune (%d):\n\n", len(toPrune))
	printCandidates(out, toPrune)

	if len(toPreserve) > 0 {
		fmt.Fprintf(out, "Entries of unlisted judges to preserve (%d)\n\n", len(toPreserve))
	}

	if pruneDryRun && !pruneForce {
		fmt.Fprintln(out, "This is a dry run. Use --force to actually prune entries.")
		return nil
	}

	for _, c := range toPrune {
		delete(snap, c.URL)
	}
	if err := s.Save(path, snap); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Pruned %d entr(ies)\n", len(toPrune))
	return nil
}

// findStale splits the entries missing from problems into those of the
// listed judges, which may be pruned, and those of other judges
func findStale(snap models.Snapshot, problems []models.Problem, judges []string) (toPrune, toPreserve []pruneCandidate) {
	listed := make(map[string]bool, len(problems))
	for _, p := range problems {
		listed[p.URL] = true
	}
	listedJudges := make(map[string]bool, len(judges))
	for _, j := range judges {
		listedJudges[j] = true
	}

	for url, e := range snap {
		if listed[url] {
			continue
		}
		c := pruneCandidate{URL: url, Title: e.Title, Judge: judgeOf(url)}
		if !listedJudges[c.Judge] {
			c.Reason = "judge not listed"
			toPreserve = append(toPreserve, c)
			continue
		}
		c.Reason = "no longer listed"
		toPrune = append(toPrune, c)
	}

	sort.Slice(toPrune, func(i, j int) bool { return toPrune[i].URL < toPrune[j].URL })
	sort.Slice(toPreserve, func(i, j int) bool { return toPreserve[i].URL < toPreserve[j].URL })
	return toPrune, toPreserve
}

func printCandidates(out io.Writer, candidates []pruneCandidate) {
	for _, c := range candidates {
		fmt.Fprintf(out, "  %s\n", c.URL)
		fmt.Fprintf(out, "    Title:  %s\n", c.Title)
		fmt.Fprintf(out, "    Reason: %s\n", c.Reason)
		fmt.Fprintln(out)
	}
}
