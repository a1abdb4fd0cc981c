package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/goccy/go-json"
	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/judge"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the problems currently published by the judges",
	Long: `List the problems the configured judges publish, without generating
templates or touching the snapshot.

Examples:
  crawl list
  crawl list --judge codeforces
  crawl list --judge atcoder --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

type listedProblem struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	listers, err := newListers()
	if err != nil {
		return err
	}

	problems, err := judge.ListAll(ctx, listers, config.GetStrictListing(), newLogger())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		listed := make([]listedProblem, 0, len(problems))
		for _, p := range problems {
			listed = append(listed, listedProblem{URL: p.URL, Title: p.Title})
		}
		output, err := json.MarshalIndent(listed, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(output))
		return nil
	}

	for _, p := range problems {
		fmt.Fprintf(out, "%s\t%s\n", p.URL, p.Title)
	}
	return nil
}
