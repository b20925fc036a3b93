// Package netx downloads remote text documents.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/docsim/internal/common"
)

// DefaultName is used when the URL path has no usable last segment.
const DefaultName = "downloaded-document"

// Fetcher downloads documents over HTTP(S).
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// FetchText GETs rawURL and returns a document name derived from the URL
// together with the body, which must be UTF-8 text.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (name, content string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "text/plain, text/*;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", fmt.Errorf("fetch failed: %s; body: %s", resp.Status, string(b))
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, common.MaxDocumentBytes+1))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}
	if len(b) > common.MaxDocumentBytes {
		return "", "", fmt.Errorf("document exceeds %d bytes", common.MaxDocumentBytes)
	}
	if !utf8.Valid(b) {
		return "", "", fmt.Errorf("response is not UTF-8 text")
	}

	return NameFromURL(u), string(b), nil
}

// NameFromURL returns the last non-empty path segment of u, or DefaultName.
func NameFromURL(u *url.URL) string {
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return DefaultName
	}
	base := path.Base(p)
	if base == "." || base == "/" || base == "" {
		return DefaultName
	}
	return base
}
