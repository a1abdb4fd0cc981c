package judge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/online-judge-tools/template-generator-webapp/internal/models"
	"github.com/sourcegraph/conc/iter"
)

// Judge names accepted by New
const (
	NameAtCoder        = "atcoder"
	NameCodeforces     = "codeforces"
	NameLibraryChecker = "library-checker"
)

// Lister enumerates the problems currently published by one judge
type Lister interface {
	Name() string
	List(ctx context.Context) ([]models.Problem, error)
}

// ListingError reports that a judge's catalog could not be fetched or parsed
type ListingError struct {
	Judge string
	Err   error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("failed to list %s problems: %v", e.Judge, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

// Options configures the listers built by New
type Options struct {
	Client             *http.Client
	AtCoderURL         string
	CodeforcesURL      string
	LibraryCheckerRepo string
}

// New builds the lister for the named judge
func New(name string, opts Options) (Lister, error) {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	switch name {
	case NameAtCoder:
		return NewAtCoder(client, opts.AtCoderURL), nil
	case NameCodeforces:
		return NewCodeforces(client, opts.CodeforcesURL), nil
	case NameLibraryChecker:
		return NewLibraryChecker(opts.LibraryCheckerRepo), nil
	default:
		return nil, fmt.Errorf("unknown judge: %s (must be: %s, %s, %s)",
			name, NameAtCoder, NameCodeforces, NameLibraryChecker)
	}
}

// NewAll builds one lister per name, in order
func NewAll(names []string, opts Options) ([]Lister, error) {
	listers := make([]Lister, 0, len(names))
	for _, name := range names {
		l, err := New(name, opts)
		if err != nil {
			return nil, err
		}
		listers = append(listers, l)
	}
	return listers, nil
}

type listResult struct {
	judge    string
	problems []models.Problem
	err      error
}

// ListAll runs every lister and concatenates their problems in lister order.
//
// With strict set, listers run one after another and the first failing judge
// aborts the whole listing before the remaining judges are contacted.
// Otherwise they run concurrently, failing judges are logged and skipped, and
// an error is returned only when no judge could be listed at all.
func ListAll(ctx context.Context, listers []Lister, strict bool, logger *slog.Logger) ([]models.Problem, error) {
	if len(listers) == 0 {
		return nil, errors.New("no judges configured")
	}

	if strict {
		var problems []models.Problem
		for _, l := range listers {
			r := listOne(ctx, l)
			if r.err != nil {
				return nil, r.err
			}
			logger.Info("listed problems", "judge", r.judge, "count", len(r.problems))
			problems = append(problems, r.problems...)
		}
		return problems, nil
	}

	results := iter.Map(listers, func(l *Lister) listResult {
		return listOne(ctx, *l)
	})

	var problems []models.Problem
	var errs []error
	var skipped []string
	for _, r := range results {
		if r.err != nil {
			logger.Warn("skipping judge", "judge", r.judge, "err", r.err)
			errs = append(errs, r.err)
			skipped = append(skipped, r.judge)
			continue
		}
		logger.Info("listed problems", "judge", r.judge, "count", len(r.problems))
		problems = append(problems, r.problems...)
	}

	if len(errs) == len(listers) {
		return nil, errors.Join(errs...)
	}
	if len(skipped) > 0 {
		logger.Warn("partial crawl, some judges were skipped", "skipped", skipped, "listed", len(listers)-len(skipped))
	}
	return problems, nil
}

func listOne(ctx context.Context, l Lister) listResult {
	problems, err := l.List(ctx)
	if err != nil {
		var lerr *ListingError
		if !errors.As(err, &lerr) {
			err = &ListingError{Judge: l.Name(), Err: err}
		}
	}
	return listResult{judge: l.Name(), problems: problems, err: err}
}
