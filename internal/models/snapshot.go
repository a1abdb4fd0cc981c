package models

// Snapshot maps a problem URL to its entry.
// Every entry's URL equals its key.
type Snapshot map[string]Entry

// FromEntries builds a snapshot from a list of entries.
// Later entries win when two share a URL.
func FromEntries(entries []Entry) Snapshot {
	s := make(Snapshot, len(entries))
	for _, e := range entries {
		s[e.URL] = e
	}
	return s
}

// Entries returns the entries in map iteration order
func (s Snapshot) Entries() []Entry {
	entries := make([]Entry, 0, len(s))
	for _, e := range s {
		if e.Template == nil {
			e.Template = map[string]string{}
		}
		entries = append(entries, e)
	}
	return entries
}

// Has reports whether a problem with the given URL is known
func (s Snapshot) Has(url string) bool {
	_, ok := s[url]
	return ok
}

// Put upserts the entry for p, overwriting any previous one
func (s Snapshot) Put(p Problem, template map[string]string) {
	if template == nil {
		template = map[string]string{}
	}
	s[p.URL] = Entry{
		URL:      p.URL,
		Title:    p.Title,
		Template: template,
	}
}
