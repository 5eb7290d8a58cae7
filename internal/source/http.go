package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/validator"
	"github.com/wonny/pulseboard/backend/pkg/httputil"
)

// HTTPLoader downloads datasets published at http(s) URLs.
// CSV is the default; a JSON array of objects is accepted when the response
// says application/json or the path ends in .json.
type HTTPLoader struct {
	client   *httputil.Client
	csv      CSVLoader
	maxBytes int64
}

// NewHTTPLoader creates a loader that reads at most maxBytes per response.
func NewHTTPLoader(client *httputil.Client, maxBytes int64) *HTTPLoader {
	return &HTTPLoader{client: client, maxBytes: maxBytes}
}

// IsURL reports whether location should be fetched over HTTP.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load fetches rawURL as a dataset of domain. The id is the last path
// segment without extension.
func (l *HTTPLoader) Load(ctx context.Context, rawURL string, domain contracts.Domain) (*contracts.Dataset, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	resp, err := l.client.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	if int64(len(body)) > l.maxBytes {
		return nil, fmt.Errorf("fetch %s: body exceeds %d bytes", rawURL, l.maxBytes)
	}

	id := datasetID(u)
	if isJSON(resp.Header.Get("Content-Type"), u.Path) {
		rows, err := decodeRows(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", rawURL, err)
		}
		ds := &contracts.Dataset{ID: id, Domain: domain, Rows: rows}
		validator.Apply(ds)
		return ds, nil
	}

	ds, err := l.csv.Load(bytes.NewReader(body), id, domain)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return ds, nil
}

func datasetID(u *url.URL) string {
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return u.Host
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func isJSON(contentType, urlPath string) bool {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt == "application/json" {
		return true
	}
	return strings.EqualFold(path.Ext(urlPath), ".json")
}
