package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestRunList(t *testing.T) {
	resetConfig(t)
	serveCatalogs(t)
	listJSON = false

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := runList(cmd, nil); err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 problems, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "https://atcoder.jp/contests/abc100/tasks/abc100_a\tA. Happy Birthday!" {
		t.Errorf("unexpected first line: %q", lines[0])
	}
}

func TestRunListJSON(t *testing.T) {
	resetConfig(t)
	serveCatalogs(t)
	listJSON = true
	defer func() { listJSON = false }()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := runList(cmd, nil); err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var listed []listedProblem
	if err := json.Unmarshal(buf.Bytes(), &listed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(listed) != 3 || listed[2].Title != "Theatre Square" {
		t.Errorf("unexpected problems: %+v", listed)
	}
}

func TestRunListOneJudgeDown(t *testing.T) {
	resetConfig(t)
	serveCatalogs(t)
	viper.Set("codeforces.url", "http://127.0.0.1:1/unreachable")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := runList(cmd, nil); err != nil {
		t.Fatalf("expected failing judge to be skipped, got %v", err)
	}
	if n := len(strings.Split(strings.TrimSpace(buf.String()), "\n")); n != 2 {
		t.Errorf("expected 2 AtCoder problems, got %d", n)
	}

	viper.Set("listing.strict", true)
	if err := runList(cmd, nil); err == nil {
		t.Error("expected strict listing to fail")
	}
}
