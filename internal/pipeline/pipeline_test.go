package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TobiSchelling/streamdash/internal/config"
	"github.com/TobiSchelling/streamdash/internal/dataset"
)

func serveCSV(t *testing.T, body string) *config.Config {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load default config: %v", err)
	}
	cfg.Dataset.URL = ts.URL + "/cleaned_data.csv"
	return cfg
}

func TestRunSuccess(t *testing.T) {
	cfg := serveCSV(t, "title,year,genre,rating,votes\nA,2020,Drama,7.5,100\nB,2021,Comedy,6.1,50\n")

	r := New(cfg).Run(context.Background())
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.OK() {
		t.Fatal("expected result to be OK")
	}
	if len(r.Steps) != 3 {
		t.Errorf("expected 3 steps, got %d", len(r.Steps))
	}
	if r.Session.Len() != 2 {
		t.Errorf("expected 2 titles, got %d", r.Session.Len())
	}
}

func TestRunHeaderOnly(t *testing.T) {
	cfg := serveCSV(t, "title,year,genre,rating,votes\n")

	r := New(cfg).Run(context.Background())
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.OK() {
		t.Fatal("expected result to be OK")
	}
	if r.Session.Len() != 0 {
		t.Errorf("expected 0 titles, got %d", r.Session.Len())
	}
}

func TestRunMissingColumnHalts(t *testing.T) {
	cfg := serveCSV(t, "title,year,genre,votes\nA,2020,Drama,100\n")

	r := New(cfg).Run(context.Background())
	var schemaErr *dataset.SchemaError
	if !errors.As(r.Err(), &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", r.Err())
	}
	if schemaErr.Column != "rating" {
		t.Errorf("expected missing column 'rating', got %q", schemaErr.Column)
	}
	if r.Session != nil {
		t.Error("expected no session after a schema error")
	}
	if r.OK() {
		t.Error("expected result not to be OK")
	}
	last := r.Steps[len(r.Steps)-1]
	if last.Name != "Validate" {
		t.Errorf("expected pipeline to stop at Validate, stopped at %s", last.Name)
	}
}

func TestRunRetrievalError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer ts.Close()

	cfg, _ := config.Load("")
	cfg.Dataset.URL = ts.URL

	r := New(cfg).Run(context.Background())
	var retrievalErr *dataset.RetrievalError
	if !errors.As(r.Err(), &retrievalErr) {
		t.Fatalf("expected *RetrievalError, got %v", r.Err())
	}
	if len(r.Steps) != 1 {
		t.Errorf("expected to stop after Fetch, got %d steps", len(r.Steps))
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, "ok"},
		{&dataset.SchemaError{Column: "genre"}, "schema_error"},
		{&dataset.RetrievalError{Source: "x", Err: errors.New("boom")}, "retrieval_error"},
		{errors.New("other"), "error"},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.expected {
			t.Errorf("Outcome(%v) = %q, expected %q", tt.err, got, tt.expected)
		}
	}
}
