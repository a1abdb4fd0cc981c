package models

import "testing"

func TestFromEntries(t *testing.T) {
	s := FromEntries([]Entry{
		{URL: "u1", Title: "first"},
		{URL: "u2", Title: "B"},
		{URL: "u1", Title: "second"},
	})

	if len(s) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s))
	}
	if s["u1"].Title != "second" {
		t.Errorf("expected later duplicate to win, got %s", s["u1"].Title)
	}
}

func TestPut(t *testing.T) {
	s := Snapshot{"u1": {URL: "u1", Title: "old", Template: map[string]string{"main.cpp": "x"}}}

	s.Put(Problem{URL: "u1", Title: "new"}, nil)

	e := s["u1"]
	if e.Title != "new" {
		t.Errorf("expected title new, got %s", e.Title)
	}
	if e.Template == nil || !e.Failed() {
		t.Errorf("expected empty non-nil template, got %#v", e.Template)
	}
}

func TestEntries(t *testing.T) {
	s := Snapshot{
		"u1": {URL: "u1", Title: "A"},
		"u2": {URL: "u2", Title: "B", Template: map[string]string{"main.py": "print()"}},
	}

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Template == nil {
			t.Errorf("entry %s has nil template", e.URL)
		}
	}
}
