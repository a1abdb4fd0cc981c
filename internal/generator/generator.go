package generator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTemplates are the template files requested for every problem
var DefaultTemplates = []string{
	"main.cpp",
	"main.py",
	"generate.cpp",
	"generate.py",
}

// Generator produces the template files of one problem, keyed by file name
type Generator interface {
	Generate(ctx context.Context, url string) (map[string]string, error)
}

// Func adapts a plain function to the Generator interface
type Func func(ctx context.Context, url string) (map[string]string, error)

func (f Func) Generate(ctx context.Context, url string) (map[string]string, error) {
	return f(ctx, url)
}

// GenerationError reports that templates could not be generated for URL
type GenerationError struct {
	URL string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate templates for %s: %v", e.URL, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type rateLimited struct {
	next    Generator
	limiter *rate.Limiter
}

// RateLimited spaces calls to g at least interval apart.
// A non-positive interval returns g unchanged.
func RateLimited(g Generator, interval time.Duration) Generator {
	if interval <= 0 {
		return g
	}
	return &rateLimited{
		next:    g,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (r *rateLimited) Generate(ctx context.Context, url string) (map[string]string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &GenerationError{URL: url, Err: err}
	}
	return r.next.Generate(ctx, url)
}
