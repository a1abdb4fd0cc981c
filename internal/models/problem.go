package models

// Problem identifies a problem on a judge. URL is the unique key.
type Problem struct {
	URL   string
	Title string
}

// Entry is the stored record for one problem
type Entry struct {
	URL      string            `json:"url"`
	Title    string            `json:"title"`
	Template map[string]string `json:"template"`
}

// Failed reports whether template generation failed for this entry
func (e Entry) Failed() bool {
	return len(e.Template) == 0
}
