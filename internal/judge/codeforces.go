package judge

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
	"github.com/tidwall/gjson"
)

// Codeforces lists problems from the Codeforces problemset API
type Codeforces struct {
	client *http.Client
	url    string
}

// NewCodeforces creates a Codeforces lister calling the API at url
func NewCodeforces(client *http.Client, url string) *Codeforces {
	if url == "" {
		url = config.DefaultCodeforcesURL
	}
	return &Codeforces{client: client, url: url}
}

func (c *Codeforces) Name() string {
	return NameCodeforces
}

func (c *Codeforces) List(ctx context.Context) ([]models.Problem, error) {
	body, err := fetch(ctx, c.client, c.url)
	if err != nil {
		return nil, &ListingError{Judge: c.Name(), Err: err}
	}

	if !gjson.ValidBytes(body) {
		return nil, &ListingError{Judge: c.Name(), Err: errors.New("response is not valid JSON")}
	}

	// The API answers {"status": "FAILED", "comment": "..."} on errors
	if status := gjson.GetBytes(body, "status").String(); status != "OK" {
		comment := gjson.GetBytes(body, "comment").String()
		return nil, &ListingError{Judge: c.Name(), Err: fmt.Errorf("unexpected status %q: %s", status, comment)}
	}

	rows := gjson.GetBytes(body, "result.problems")
	if !rows.IsArray() {
		return nil, &ListingError{Judge: c.Name(), Err: errors.New("missing result.problems")}
	}

	var problems []models.Problem
	var rowErr error
	i := 0
	rows.ForEach(func(_, row gjson.Result) bool {
		contestID := row.Get("contestId")
		index := row.Get("index")
		name := row.Get("name")
		if (contestID.Type != gjson.Number && contestID.Type != gjson.String) || index.Type != gjson.String || name.Type != gjson.String {
			rowErr = fmt.Errorf("problem %d: contestId must be a number or string, index and name strings", i)
			return false
		}
		if index.String() == "" {
			rowErr = fmt.Errorf("problem %d: empty index", i)
			return false
		}
		problems = append(problems, models.Problem{
			URL:   fmt.Sprintf("https://codeforces.com/contest/%s/problem/%s", contestID.String(), index.String()),
			Title: name.String(),
		})
		i++
		return true
	})
	if rowErr != nil {
		return nil, &ListingError{Judge: c.Name(), Err: rowErr}
	}
	return problems, nil
}
