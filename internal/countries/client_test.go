package countries

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_FetchCountries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": {"common": "Nepal", "official": "Federal Democratic Republic of Nepal"}},
			{"name": {"common": "India"}},
			{"name": {}},
			{"name": {"common": "Bhutan"}}
		]`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, time.Second).FetchCountries(context.Background())
	if err != nil {
		t.Fatalf("FetchCountries error = %v", err)
	}
	want := []string{"Nepal", "India", "Bhutan"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("FetchCountries() = %v, want %v", got, want)
	}
}

func TestClient_FetchCountriesErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"not": "a list"`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).FetchCountries(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "country list") {
				t.Errorf("error %q should mention the country list", err)
			}
		})
	}
}

func TestClient_FetchCountriesCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewClient(srv.URL, time.Second).FetchCountries(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestStatic(t *testing.T) {
	s := Static{"Nepal", "India"}
	got, err := s.FetchCountries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got[0] = "changed"
	if s[0] != "Nepal" {
		t.Error("Static returned shared storage")
	}
}
