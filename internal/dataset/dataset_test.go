package dataset

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `title,year,genre,rating,votes
Stranger Things,2016,Drama,8.7,1200000
The Crown,2016,Drama,8.6,230000
Bird Box,2018,Horror,6.6,
Big Mouth,2017,Comedy,,"45,000"
`

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", table.Len())
	}
	cols := table.Columns()
	if strings.Join(cols, ",") != "title,year,genre,rating,votes" {
		t.Errorf("unexpected columns %v", cols)
	}

	titles := table.Titles()
	first := titles[0]
	if first.Title != "Stranger Things" || first.Year != 2016 || first.Genre != "Drama" {
		t.Errorf("unexpected first record %+v", first)
	}
	if first.Rating != 8.7 {
		t.Errorf("expected rating 8.7, got %v", first.Rating)
	}
	if first.Votes != 1200000 {
		t.Errorf("expected 1200000 votes, got %d", first.Votes)
	}
}

func TestParseCSVMissingValues(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	titles := table.Titles()

	if titles[2].Votes != 0 {
		t.Errorf("expected empty votes to load as 0, got %d", titles[2].Votes)
	}
	if !math.IsNaN(titles[3].Rating) {
		t.Errorf("expected empty rating to load as NaN, got %v", titles[3].Rating)
	}
	if titles[3].Votes != 45000 {
		t.Errorf("expected thousands separator to be stripped, got %d", titles[3].Votes)
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("title,year,genre,rating,votes\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("expected 0 rows, got %d", table.Len())
	}
	if err := Validate(table, RequiredColumns); err != nil {
		t.Errorf("expected header-only table to validate, got %v", err)
	}
	titles := table.Titles()
	if titles == nil || len(titles) != 0 {
		t.Errorf("expected empty non-nil titles, got %#v", titles)
	}
}

func TestParseCSVHeaderOnlyMissingColumn(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("title,year,genre,votes\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var schemaErr *SchemaError
	if err := Validate(table, RequiredColumns); !errors.As(err, &schemaErr) || schemaErr.Column != ColRating {
		t.Errorf("expected rating to be reported missing, got %v", err)
	}
}

func TestParseCSVEmptyDocument(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for a document without a header")
	}
}

func TestParseCSVStripsBOM(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("\ufefftitle,year,genre,rating,votes\nA,2020,Drama,7.5,10\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(table, RequiredColumns); err != nil {
		t.Fatalf("expected BOM-prefixed header to validate, got %v", err)
	}
	if got := table.Titles()[0].Title; got != "A" {
		t.Errorf("expected title A, got %q", got)
	}
}

func TestParseCSVKeepsLiteralNA(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("title,year,genre,rating,votes\nNA,2020,NA,NA,10\nB,2021,Drama,6.5,20\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := table.Titles()[0]
	if first.Title != "NA" || first.Genre != "NA" {
		t.Errorf("expected literal NA text, got title %q genre %q", first.Title, first.Genre)
	}
	if !math.IsNaN(first.Rating) {
		t.Errorf("expected NA rating to load as NaN, got %v", first.Rating)
	}
}

func TestParseCSVMarksMissingVotes(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	titles := table.Titles()
	if !titles[2].VotesMissing {
		t.Error("expected empty votes to be marked missing")
	}
	if titles[0].VotesMissing || titles[3].VotesMissing {
		t.Error("expected present votes not to be marked missing")
	}
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("title,year\nA,2001,extra\n"))
	if err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestValidate(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(table, RequiredColumns); err != nil {
		t.Errorf("expected valid table, got %v", err)
	}
}

func TestValidateReportsEachMissingColumn(t *testing.T) {
	for _, missing := range RequiredColumns {
		t.Run(missing, func(t *testing.T) {
			var header []string
			var row []string
			for _, c := range RequiredColumns {
				if c == missing {
					continue
				}
				header = append(header, c)
				row = append(row, "1")
			}
			doc := strings.Join(header, ",") + "\n" + strings.Join(row, ",") + "\n"

			table, err := ParseCSV(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}

			err = Validate(table, RequiredColumns)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if schemaErr.Column != missing {
				t.Errorf("expected missing column %q, got %q", missing, schemaErr.Column)
			}
			if !strings.Contains(err.Error(), "'"+missing+"'") {
				t.Errorf("expected message to name %q, got %q", missing, err.Error())
			}
		})
	}
}

func TestValidateFirstMissingWins(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("title,genre\nA,Drama\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = Validate(table, RequiredColumns)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Column != ColYear {
		t.Errorf("expected year to be reported first, got %v", err)
	}
}

func TestLoaderFetchHTTP(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleCSV))
	}))
	defer ts.Close()

	table, err := NewLoader(0).Fetch(context.Background(), ts.URL+"/cleaned_data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 4 {
		t.Errorf("expected 4 rows, got %d", table.Len())
	}
	if gotUA != userAgent {
		t.Errorf("expected user agent %q, got %q", userAgent, gotUA)
	}
}

func TestLoaderFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := NewLoader(0).Fetch(context.Background(), ts.URL)
	var retrievalErr *RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Fatalf("expected *RetrievalError, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status in message, got %q", err.Error())
	}
}

func TestLoaderFetchUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewLoader(0).Fetch(context.Background(), url)
	var retrievalErr *RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Fatalf("expected *RetrievalError, got %v", err)
	}
	if retrievalErr.Source != url {
		t.Errorf("expected source %q, got %q", url, retrievalErr.Source)
	}
}

func TestLoaderFetchMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("title,year\nA,2001,extra\n"))
	}))
	defer ts.Close()

	_, err := NewLoader(0).Fetch(context.Background(), ts.URL)
	var retrievalErr *RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Fatalf("expected *RetrievalError, got %v", err)
	}
}

func TestLoaderFetchHeaderOnly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\xef\xbb\xbftitle,year,genre,rating,votes\n"))
	}))
	defer ts.Close()

	table, err := NewLoader(0).Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("expected 0 rows, got %d", table.Len())
	}
	if err := Validate(table, RequiredColumns); err != nil {
		t.Errorf("expected valid table, got %v", err)
	}
}

func TestLoaderFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}

	table, err := NewLoader(0).Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 4 {
		t.Errorf("expected 4 rows, got %d", table.Len())
	}

	_, err = NewLoader(0).Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	var retrievalErr *RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Errorf("expected *RetrievalError for missing file, got %v", err)
	}
}

func TestSessionTitlesAreCopies(t *testing.T) {
	sess := NewSession("src", []string{"title"}, []Title{{Title: "A"}, {Title: "B"}})
	if sess.ID == "" {
		t.Error("expected session id")
	}

	titles := sess.Titles()
	titles[0].Title = "changed"

	if sess.Titles()[0].Title != "A" {
		t.Error("expected session records to be unaffected by caller edits")
	}
	if sess.Len() != 2 {
		t.Errorf("expected 2 records, got %d", sess.Len())
	}
}
