package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Table is a parsed dataset with inferred column types. A header-only
// document gives a table with columns and no rows.
type Table struct {
	df      dataframe.DataFrame
	columns []string
}

// ParseCSV reads a CSV document with a header row.
func ParseCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("parsing csv: no header row")
	}

	t := &Table{columns: records[0]}
	if len(records) == 1 {
		return t, nil
	}

	t.df = dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		// Text cells such as "NA" stay literal; numeric cells that fail to
		// parse still become NaN.
		dataframe.NaNValues([]string{}),
		dataframe.WithTypes(map[string]series.Type{
			ColTitle: series.String,
			ColGenre: series.String,
		}),
	)
	if t.df.Err != nil {
		return nil, fmt.Errorf("parsing csv: %w", t.df.Err)
	}
	t.columns = t.df.Names()
	return t, nil
}

// Columns returns the header names in file order.
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return t.df.Nrow()
}

// HasColumn reports whether name is in the header.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Titles converts the rows into records. The table must have passed Validate.
func (t *Table) Titles() []Title {
	n := t.Len()
	if n == 0 {
		return []Title{}
	}
	names := t.df.Col(ColTitle).Records()
	genres := t.df.Col(ColGenre).Records()
	years := numbers(t.df.Col(ColYear))
	ratings := numbers(t.df.Col(ColRating))
	votes := numbers(t.df.Col(ColVotes))

	titles := make([]Title, n)
	for i := 0; i < n; i++ {
		titles[i] = Title{
			Title:        names[i],
			Year:         int(orZero(years[i])),
			Genre:        genres[i],
			Rating:       ratings[i],
			Votes:        int64(orZero(votes[i])),
			VotesMissing: math.IsNaN(votes[i]),
		}
	}
	return titles
}

// numbers returns the column as floats. Cells the type inference left as
// text (e.g. "1,234") are retried without thousands separators.
func numbers(s series.Series) []float64 {
	vals := s.Float()
	var raw []string
	for i, v := range vals {
		if !math.IsNaN(v) {
			continue
		}
		if raw == nil {
			raw = s.Records()
		}
		cleaned := strings.ReplaceAll(strings.TrimSpace(raw[i]), ",", "")
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			vals[i] = f
		}
	}
	return vals
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
