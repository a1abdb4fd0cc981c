package judge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/git"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
)

// LibraryChecker lists problems by cloning the library-checker-problems
// repository and reading every problem's info.toml
type LibraryChecker struct {
	repo string
}

// NewLibraryChecker creates a Library-Checker lister cloning repo
func NewLibraryChecker(repo string) *LibraryChecker {
	if repo == "" {
		repo = config.DefaultLibraryCheckerRepo
	}
	return &LibraryChecker{repo: repo}
}

func (l *LibraryChecker) Name() string {
	return NameLibraryChecker
}

type problemInfo struct {
	Title *string `toml:"title"`
}

func (l *LibraryChecker) List(ctx context.Context) ([]models.Problem, error) {
	dir, err := os.MkdirTemp("", "library-checker-problems-*")
	if err != nil {
		return nil, &ListingError{Judge: l.Name(), Err: fmt.Errorf("failed to create temp dir: %w", err)}
	}
	defer os.RemoveAll(dir)

	if err := git.ShallowClone(ctx, l.repo, dir); err != nil {
		return nil, &ListingError{Judge: l.Name(), Err: err}
	}

	problems, err := scanProblems(dir)
	if err != nil {
		return nil, &ListingError{Judge: l.Name(), Err: err}
	}
	return problems, nil
}

// scanProblems collects every problem below root, ignoring the .git and
// top-level test directories
func scanProblems(root string) ([]models.Problem, error) {
	skip := map[string]bool{
		filepath.Join(root, ".git"): true,
		filepath.Join(root, "test"): true,
	}

	var problems []models.Problem
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skip[path] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != "info.toml" || filepath.Dir(path) == root {
			return nil
		}

		var info problemInfo
		if _, err := toml.DecodeFile(path, &info); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if info.Title == nil {
			return errors.New("missing title in " + path)
		}

		id := filepath.Base(filepath.Dir(path))
		problems = append(problems, models.Problem{
			URL:   "https://judge.yosupo.jp/problem/" + id,
			Title: *info.Title,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return problems, nil
}
