package cmd

import (
	"fmt"
	"io"
	"net/url"
	"sort"

	"github.com/alpkeskin/gotoon"
	"github.com/goccy/go-json"
	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/generator"
	"github.com/online-judge-tools/template-generator-webapp/internal/judge"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
	"github.com/online-judge-tools/template-generator-webapp/internal/store"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the snapshot",
	Long: `Display statistics about the snapshot file including:
  - Total entry count
  - Entries whose generation failed
  - Entries per judge
  - Coverage of each template file

Examples:
  crawl stats
  crawl stats --file data.json --json
  crawl stats --toon`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type snapshotStats struct {
	TotalEntries  int            `json:"total_entries"`
	FailedEntries int            `json:"failed_entries"`
	ByJudge       []judgeStat    `json:"by_judge"`
	Coverage      []templateStat `json:"coverage"`
}

type judgeStat struct {
	Judge  string `json:"judge"`
	Count  int    `json:"count"`
	Failed int    `json:"failed"`
}

type templateStat struct {
	Template string `json:"template"`
	Count    int    `json:"count"`
}

var judgeHosts = map[string]string{
	"atcoder.jp":      judge.NameAtCoder,
	"codeforces.com":  judge.NameCodeforces,
	"judge.yosupo.jp": judge.NameLibraryChecker,
}

// judgeOf maps a problem URL to the judge hosting it
func judgeOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	if name, ok := judgeHosts[u.Host]; ok {
		return name
	}
	return u.Host
}

func computeStats(snap models.Snapshot) *snapshotStats {
	entries := snap.Entries()
	stats := &snapshotStats{
		TotalEntries:  len(entries),
		FailedEntries: lo.CountBy(entries, func(e models.Entry) bool { return e.Failed() }),
	}

	groups := lo.GroupBy(entries, func(e models.Entry) string { return judgeOf(e.URL) })
	for name, group := range groups {
		stats.ByJudge = append(stats.ByJudge, judgeStat{
			Judge:  name,
			Count:  len(group),
			Failed: lo.CountBy(group, func(e models.Entry) bool { return e.Failed() }),
		})
	}
	sort.Slice(stats.ByJudge, func(i, j int) bool {
		return stats.ByJudge[i].Judge < stats.ByJudge[j].Judge
	})

	for _, name := range generator.DefaultTemplates {
		stats.Coverage = append(stats.Coverage, templateStat{
			Template: name,
			Count: lo.CountBy(entries, func(e models.Entry) bool {
				_, ok := e.Template[name]
				return ok
			}),
		})
	}

	return stats
}

func runStats(cmd *cobra.Command, args []string) error {
	path := config.GetSnapshotFile()
	snap, err := store.NewOs().Load(path)
	if err != nil {
		return err
	}

	stats := computeStats(snap)
	out := cmd.OutOrStdout()

	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(output))
		return nil
	}

	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Fprintln(out, output)
		return nil
	}

	printStats(out, path, stats)
	return nil
}

func printStats(out io.Writer, path string, stats *snapshotStats) {
	fmt.Fprintln(out, "Snapshot Statistics")
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "File:    %s\n", path)
	fmt.Fprintf(out, "Entries: %d\n", stats.TotalEntries)
	if stats.TotalEntries == 0 {
		return
	}
	percentage := float64(stats.FailedEntries) / float64(stats.TotalEntries) * 100
	fmt.Fprintf(out, "Failed:  %d  (%.1f%%)\n", stats.FailedEntries, percentage)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "By Judge:")
	for _, js := range stats.ByJudge {
		fmt.Fprintf(out, "  %-17s %6d  (%d failed)\n", js.Judge, js.Count, js.Failed)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Template Coverage:")
	for _, ts := range stats.Coverage {
		percentage := float64(ts.Count) / float64(stats.TotalEntries) * 100
		fmt.Fprintf(out, "  %-17s %6d  (%.1f%%)\n", ts.Template, ts.Count, percentage)
	}
}
