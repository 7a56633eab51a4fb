package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/TobiSchelling/streamdash/internal/logging"
)

const userAgent = "streamdash/1.0 (dataset loader)"

// Loader fetches a dataset over HTTP, or from disk for non-URL sources.
type Loader struct {
	client *http.Client
}

// NewLoader creates a loader. A zero timeout means requests never time out.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Fetch retrieves and parses source. Any failure is a *RetrievalError.
func (l *Loader) Fetch(ctx context.Context, source string) (*Table, error) {
	start := time.Now()

	body, err := l.read(ctx, source)
	if err != nil {
		return nil, &RetrievalError{Source: source, Err: err}
	}

	table, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, &RetrievalError{Source: source, Err: err}
	}

	logging.Debug().
		Str("source", source).
		Int("bytes", len(body)).
		Int("rows", table.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Dataset fetched")
	return table, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !isRemote(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &httpError{code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return data, nil
}

func isRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
