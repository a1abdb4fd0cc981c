package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// TempGitRepo is a throwaway git repository used as a clone source in tests
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo creates a new temporary git repository with one commit
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	RequireGit(t)

	tmpDir, err := os.MkdirTemp("", "crawl-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	repo := &TempGitRepo{Path: tmpDir, T: t}

	cmds := [][]string{
		{"init", "--quiet"},
		{"config", "user.name", "Test User"},
		{"config", "user.email", "test@example.com"},
		{"config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		if err := repo.git(args...); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("failed to set up git repo: %v", err)
		}
	}

	repo.CreateFile("README.md", "# Test Problems\n")
	repo.Commit("Initial commit")

	return repo
}

// RequireGit skips the test when no git binary is available
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
}

// Cleanup removes the temporary git repository
func (r *TempGitRepo) Cleanup() {
	r.T.Helper()
	if err := os.RemoveAll(r.Path); err != nil {
		r.T.Errorf("failed to cleanup temp repo: %v", err)
	}
}

// CreateFile creates a file in the repository
func (r *TempGitRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// AddProblem writes a Library-Checker style info.toml under dir/id
func (r *TempGitRepo) AddProblem(dir, id, title string) {
	r.T.Helper()
	content := fmt.Sprintf("title = %q\ntimelimit = 5.0\n", title)
	r.CreateFile(filepath.Join(dir, id, "info.toml"), content)
}

// Commit stages and commits all changes
func (r *TempGitRepo) Commit(message string) {
	r.T.Helper()
	if err := r.git("add", "."); err != nil {
		r.T.Fatalf("failed to stage files: %v", err)
	}
	if err := r.git("commit", "--quiet", "-m", message); err != nil {
		r.T.Fatalf("failed to commit: %v", err)
	}
}

func (r *TempGitRepo) git(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %v: %s: %w", args, output, err)
	}
	return nil
}

// FakeTool writes an executable shell script standing in for the templating
// tool and returns its path. The script body receives the tool's arguments.
func FakeTool(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tool needs a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "oj-prepare")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake tool: %v", err)
	}
	return path
}
