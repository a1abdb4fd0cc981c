package judge

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/online-judge-tools/template-generator-webapp/internal/config"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
)

// AtCoder lists problems from the AtCoder Problems catalog
type AtCoder struct {
	client *http.Client
	url    string
}

// NewAtCoder creates an AtCoder lister reading the catalog at url
func NewAtCoder(client *http.Client, url string) *AtCoder {
	if url == "" {
		url = config.DefaultAtCoderURL
	}
	return &AtCoder{client: client, url: url}
}

func (a *AtCoder) Name() string {
	return NameAtCoder
}

type atcoderRow struct {
	ID        *string `json:"id"`
	ContestID *string `json:"contest_id"`
	Title     *string `json:"title"`
}

func (a *AtCoder) List(ctx context.Context) ([]models.Problem, error) {
	body, err := fetch(ctx, a.client, a.url)
	if err != nil {
		return nil, &ListingError{Judge: a.Name(), Err: err}
	}

	var rows *[]atcoderRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &ListingError{Judge: a.Name(), Err: fmt.Errorf("failed to parse catalog: %w", err)}
	}
	if rows == nil {
		return nil, &ListingError{Judge: a.Name(), Err: errors.New("catalog is null, expected an array")}
	}

	problems := make([]models.Problem, 0, len(*rows))
	for i, row := range *rows {
		if row.ID == nil || row.ContestID == nil || row.Title == nil {
			return nil, &ListingError{Judge: a.Name(), Err: fmt.Errorf("row %d: missing id, contest_id or title", i)}
		}
		problems = append(problems, models.Problem{
			URL:   fmt.Sprintf("https://atcoder.jp/contests/%s/tasks/%s", *row.ContestID, *row.ID),
			Title: *row.Title,
		})
	}
	return problems, nil
}
