package cmd

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/spf13/viper"
)

const atcoderCatalog = `[
	{"id": "abc100_a", "contest_id": "abc100", "title": "A. Happy Birthday!"},
	{"id": "abc100_b", "contest_id": "abc100", "title": "B. Ringo's Favorite Numbers"}
]`

const codeforcesCatalog = `{"status": "OK", "result": {"problems": [
	{"contestId": 1, "index": "A", "name": "Theatre Square"}
]}}`

// resetConfig restores the default configuration and points the snapshot
// at a fresh temp file
func resetConfig(t *testing.T) string {
	t.Helper()
	viper.Reset()
	config.SetDefaults(viper.GetViper())
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "data.json")
	viper.Set("file", path)
	return path
}

// serveCatalogs starts fake AtCoder and Codeforces endpoints and enables
// only those two judges
func serveCatalogs(t *testing.T) {
	t.Helper()
	atcoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(atcoderCatalog))
	}))
	t.Cleanup(atcoder.Close)
	codeforces := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(codeforcesCatalog))
	}))
	t.Cleanup(codeforces.Close)

	viper.Set("judges", []string{"atcoder", "codeforces"})
	viper.Set("atcoder.url", atcoder.URL)
	viper.Set("codeforces.url", codeforces.URL)
}
