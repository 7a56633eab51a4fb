package dataset

import (
	"fmt"
	"net/http"
)

// RetrievalError reports a dataset that could not be fetched or parsed.
type RetrievalError struct {
	Source string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieving dataset %s: %v", e.Source, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// SchemaError reports a required column missing from the dataset header.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Column '%s' not found in the dataset. Please check the dataset or update the code.", e.Column)
}

type httpError struct {
	code int
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.code, http.StatusText(e.code))
}
