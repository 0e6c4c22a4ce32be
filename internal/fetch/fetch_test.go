package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"folio","count":3}`))
	}))
	defer srv.Close()

	var got struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := JSON(context.Background(), srv.Client(), srv.URL, &got); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got.Name != "folio" || got.Count != 3 {
		t.Errorf("decoded = %+v", got)
	}
}

func TestJSON_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "Not found", status: http.StatusNotFound, body: `{}`, wantStatus: 404},
		{name: "Server error", status: http.StatusInternalServerError, body: ``, wantStatus: 500},
		{name: "Malformed body", status: http.StatusOK, body: `{"name":`, wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			var v map[string]any
			err := JSON(context.Background(), srv.Client(), srv.URL, &v)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("error = %v, expected *FetchError", err)
			}
			if fe.Status != tt.wantStatus {
				t.Errorf("Status = %d, expected %d", fe.Status, tt.wantStatus)
			}
			if fe.URL != srv.URL {
				t.Errorf("URL = %q, expected %q", fe.URL, srv.URL)
			}
			if calls != 1 {
				t.Errorf("server called %d times, expected exactly one attempt", calls)
			}
		})
	}
}

func TestJSON_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	var v map[string]any
	err := JSON(context.Background(), nil, url, &v)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, expected *FetchError", err)
	}
	if fe.Status != 0 {
		t.Errorf("Status = %d, expected 0 for no response", fe.Status)
	}
}
