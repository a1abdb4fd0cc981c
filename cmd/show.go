package cmd

import (
	"fmt"
	"regexp"

	"github.com/goccy/go-json"
	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
	"github.com/online-judge-tools/template-generator-webapp/internal/store"
	"github.com/spf13/cobra"
)

const cliVersionURL = "https://github.com/online-judge-tools/template-generator"

var (
	showTemplate string
	showJSON     bool
)

var showCmd = &cobra.Command{
	Use:   "show <url>",
	Short: "Print the pre-generated template for a problem",
	Long: `Look up a problem in the snapshot and print one of its templates.

URLs are matched loosely: the scheme, the query, a trailing slash and a
doubled slash in the path are ignored.

Examples:
  crawl show https://atcoder.jp/contests/agc006/tasks/agc006_c
  crawl show https://codeforces.com/contest/1/problem/A --template main.py
  crawl show https://judge.yosupo.jp/problem/aplusb --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showTemplate, "template", "main.cpp", "Template name to print")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
}

type shownTemplate struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Template string `json:"template"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

var knownJudgeWord = regexp.MustCompile(`\b(atcoder|codeforces|yosupo)\b`)

// templateLanguage names the highlighting language of a template file
func templateLanguage(name string) string {
	switch name {
	case "main.cpp", "generate.cpp":
		return "cpp"
	case "main.py", "generate.py":
		return "python"
	default:
		return "plaintext"
	}
}

// unsupportedURLError explains why a valid URL has no snapshot entry
func unsupportedURLError(raw string) error {
	note := "Currently only problems of AtCoder (atcoder.jp), Codeforces (codeforces.com), and Library-Checker (judge.yosupo.jp) are supported."
	if knownJudgeWord.MatchString(raw) {
		note = "Probably the data for this problem is not pre-computed yet. Only problems present in the snapshot can be shown."
	}
	return fmt.Errorf("unsupported URL: %q\n\n%s\nPlease use the command-line version instead: %s", raw, note, cliVersionURL)
}

func runShow(cmd *cobra.Command, args []string) error {
	raw := args[0]

	if _, err := models.ParseProblemURL(raw); err != nil {
		return fmt.Errorf("not a URL: %q", raw)
	}

	snap, err := store.NewOs().Load(config.GetSnapshotFile())
	if err != nil {
		return err
	}

	entry, ok := snap.Lookup(raw)
	if !ok {
		return unsupportedURLError(raw)
	}

	content, ok := entry.Template[showTemplate]
	if !ok {
		return fmt.Errorf("failed to generate the template: %s", showTemplate)
	}

	out := cmd.OutOrStdout()
	if showJSON {
		output, err := json.MarshalIndent(shownTemplate{
			URL:      entry.URL,
			Title:    entry.Title,
			Template: showTemplate,
			Language: templateLanguage(showTemplate),
			Content:  content,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(output))
		return nil
	}

	fmt.Fprint(out, content)
	return nil
}
