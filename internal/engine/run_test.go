package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/online-judge-tools/template-generator-webapp/internal/generator"
	"github.com/online-judge-tools/template-generator-webapp/internal/judge"
	"github.com/online-judge-tools/template-generator-webapp/internal/logging"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
	"github.com/online-judge-tools/template-generator-webapp/internal/store"
	"github.com/spf13/afero"
)

type stubLister struct {
	problems []models.Problem
	err      error
	calls    int
}

func (s *stubLister) Name() string { return "stub" }

func (s *stubLister) List(ctx context.Context) ([]models.Problem, error) {
	s.calls++
	return s.problems, s.err
}

func newRunOptions(fs afero.Fs, l judge.Lister, g generator.Generator, r Rand) RunOptions {
	logger := logging.Discard()
	return RunOptions{
		Path:    "data.json",
		Store:   store.New(fs),
		Listers: []judge.Lister{l},
		Updater: NewUpdater(g, r, logger),
		Logger:  logger,
	}
}

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed := `[{"url": "old", "title": "Old", "template": {"main.cpp": "o"}}]`
	if err := afero.WriteFile(fs, "data.json", []byte(seed), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	lister := &stubLister{problems: []models.Problem{{URL: "old", Title: "Old"}, {URL: "new", Title: "New"}}}
	gen := &recorder{results: map[string]map[string]string{"new": {"main.cpp": "n"}}}

	err := Run(context.Background(), newRunOptions(fs, lister, gen, &fixedRand{draws: []float64{0.1}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, err := store.New(fs).Load("data.json")
	if err != nil {
		t.Fatalf("failed to load result: %v", err)
	}
	if snap["old"].Template["main.cpp"] != "o" {
		t.Errorf("expected skipped entry to be kept, got %+v", snap["old"])
	}
	if snap["new"].Template["main.cpp"] != "n" {
		t.Errorf("expected new entry to be generated, got %+v", snap["new"])
	}
}

func TestRunFailureIsolation(t *testing.T) {
	fs := afero.NewMemMapFs()
	lister := &stubLister{problems: []models.Problem{{URL: "X", Title: "x"}, {URL: "Y", Title: "y"}}}
	gen := &recorder{results: map[string]map[string]string{"Y": {"main.py": "print(1)"}}}

	if err := Run(context.Background(), newRunOptions(fs, lister, gen, &fixedRand{})); err != nil {
		t.Fatalf("expected run to complete, got %v", err)
	}

	snap, err := store.New(fs).Load("data.json")
	if err != nil {
		t.Fatalf("failed to load result: %v", err)
	}
	if !snap["X"].Failed() {
		t.Errorf("expected empty template for X, got %v", snap["X"].Template)
	}
	if snap["Y"].Template["main.py"] != "print(1)" {
		t.Errorf("expected Y's templates, got %v", snap["Y"].Template)
	}
}

func TestRunSavesOnPanic(t *testing.T) {
	fs := afero.NewMemMapFs()
	lister := &stubLister{problems: []models.Problem{{URL: "A", Title: "a"}, {URL: "B", Title: "b"}, {URL: "C", Title: "c"}}}
	gen := generator.Func(func(ctx context.Context, url string) (map[string]string, error) {
		if url == "C" {
			panic("tool wrapper crashed")
		}
		return map[string]string{"main.cpp": url}, nil
	})

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		Run(context.Background(), newRunOptions(fs, lister, gen, &fixedRand{}))
	}()

	if recovered == nil {
		t.Fatal("expected the panic to propagate")
	}

	snap, err := store.New(fs).Load("data.json")
	if err != nil {
		t.Fatalf("failed to load result: %v", err)
	}
	if snap["A"].Template["main.cpp"] != "A" || snap["B"].Template["main.cpp"] != "B" {
		t.Errorf("expected A and B to be persisted, got %v", snap)
	}
	if snap.Has("C") {
		t.Error("expected C not to be persisted")
	}
}

func TestRunSavesOnInterrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx, cancel := context.WithCancel(context.Background())
	lister := &stubLister{problems: []models.Problem{{URL: "A", Title: "a"}, {URL: "B", Title: "b"}}}
	gen := generator.Func(func(ctx context.Context, url string) (map[string]string, error) {
		cancel()
		return map[string]string{"main.cpp": url}, nil
	})

	err := Run(ctx, newRunOptions(fs, lister, gen, &fixedRand{}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	snap, loadErr := store.New(fs).Load("data.json")
	if loadErr != nil {
		t.Fatalf("failed to load result: %v", loadErr)
	}
	if !snap.Has("A") || snap.Has("B") {
		t.Errorf("expected only A to be persisted, got %v", snap)
	}
}

func TestRunCorruptSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "data.json", []byte(`{not valid json`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	lister := &stubLister{problems: []models.Problem{{URL: "A", Title: "a"}}}
	gen := &recorder{}

	err := Run(context.Background(), newRunOptions(fs, lister, gen, &fixedRand{}))

	var cerr *store.CorruptSnapshotError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CorruptSnapshotError, got %v", err)
	}
	if lister.calls != 0 || len(gen.calls) != 0 {
		t.Errorf("expected no listing or generation, got %d listings and %v", lister.calls, gen.calls)
	}
	data, _ := afero.ReadFile(fs, "data.json")
	if string(data) != `{not valid json` {
		t.Errorf("corrupt file was modified: %q", data)
	}
}

func TestRunListingFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	seed := `[{"url": "old", "title": "Old", "template": {}}]`
	if err := afero.WriteFile(fs, "data.json", []byte(seed), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	lister := &stubLister{err: errors.New("network unreachable")}
	gen := &recorder{}

	err := Run(context.Background(), newRunOptions(fs, lister, gen, &fixedRand{}))

	var lerr *judge.ListingError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected ListingError, got %v", err)
	}
	if len(gen.calls) != 0 {
		t.Errorf("expected no generation, got %v", gen.calls)
	}

	snap, loadErr := store.New(fs).Load("data.json")
	if loadErr != nil {
		t.Fatalf("failed to load result: %v", loadErr)
	}
	if !snap.Has("old") {
		t.Error("expected previous entries to be saved back")
	}
}
