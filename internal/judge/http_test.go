package judge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func init() {
	retryDelay = 0
}

func TestFetchRetries(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []int
		wantCalls  int32
		wantErr    bool
		wantStatus int
	}{
		{name: "ok at once", statuses: []int{200}, wantCalls: 1},
		{name: "recovers after 5xx", statuses: []int{503, 502, 200}, wantCalls: 3},
		{name: "gives up after three attempts", statuses: []int{500, 500, 500, 200}, wantCalls: 3, wantErr: true, wantStatus: 500},
		{name: "does not retry 404", statuses: []int{404, 200}, wantCalls: 1, wantErr: true, wantStatus: 404},
		{name: "retries 429", statuses: []int{429, 200}, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.statuses[n-1])
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			body, err := fetch(context.Background(), server.Client(), server.URL)

			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, got)
			}
			if tt.wantErr {
				var serr *statusError
				if !errors.As(err, &serr) {
					t.Fatalf("expected statusError, got %v", err)
				}
				if serr.StatusCode != tt.wantStatus {
					t.Errorf("expected status %d, got %d", tt.wantStatus, serr.StatusCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(body) != `[]` {
				t.Errorf("unexpected body %q", body)
			}
		})
	}
}
