// Package store provides the two external collaborators the update
// workflow (package updater) depends on but does not implement itself:
// a bounded remote fetcher (spec.md §4.5, Component E) and an atomic
// local metadata/target cache (spec.md §4.4's persistence notes).
//
// Grounded on docker-notary/tuf/store's HTTPStore.GetMeta for the
// bounded-download shape (translate HTTP status to a typed error, then
// read at most a capped number of bytes) and on docker-notary/tuf/store's
// interfaces.go for separating local/remote concerns into narrow
// interfaces the updater depends on rather than a single God interface.
package store

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
)

// Fetcher downloads bytes from a remote location, enforcing a strict
// length ceiling. It is the sole external collaborator for network
// access; nothing else in this module makes an HTTP request.
type Fetcher interface {
	// Fetch downloads the content at rawURL, aborting the transfer the
	// moment cumulative received bytes would exceed maxLength. Equal to
	// maxLength is permitted; exceeding it returns
	// ErrDownloadLengthMismatch. maxLength <= 0 means unbounded.
	Fetch(ctx context.Context, rawURL string, maxLength int64) ([]byte, error)
}

// HTTPFetcher is a Fetcher backed by net/http, matching
// docker-notary/tuf/store.HTTPStore's use of an injectable
// http.RoundTripper for testability (see httpstore.go's roundTrip field).
type HTTPFetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPFetcher builds an HTTPFetcher with the given per-request
// timeout, matching spec.md §6's fetch_timeout configuration knob.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}, Timeout: timeout}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string, maxLength int64) ([]byte, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, ErrDownloadFailed{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, ErrDownloadFailed{URL: rawURL, Err: err}
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, ErrDownloadFailed{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if err := translateStatus(resp.StatusCode, rawURL); err != nil {
		return nil, err
	}

	if maxLength > 0 && resp.ContentLength > maxLength {
		log.Debugf("store: %s declared Content-Length %d exceeds max %d", rawURL, resp.ContentLength, maxLength)
		return nil, ErrDownloadLengthMismatch{URL: rawURL, MaxLength: maxLength}
	}

	return readBounded(resp.Body, rawURL, maxLength)
}

// readBounded reads at most maxLength+1 bytes from r: if that read
// produces more than maxLength bytes, the transfer is aborted and
// ErrDownloadLengthMismatch is returned, per spec.md §4.5's strict
// greater-than rule ("the moment cumulative received bytes would exceed
// max_length, abort"). maxLength <= 0 means unbounded.
func readBounded(r io.Reader, rawURL string, maxLength int64) ([]byte, error) {
	if maxLength <= 0 {
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, ErrDownloadFailed{URL: rawURL, Err: err}
		}
		return body, nil
	}

	limited := io.LimitReader(r, maxLength+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, ErrDownloadFailed{URL: rawURL, Err: err}
	}
	if int64(len(body)) > maxLength {
		return nil, ErrDownloadLengthMismatch{URL: rawURL, MaxLength: maxLength}
	}
	return body, nil
}

func translateStatus(code int, resource string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrMetaNotFound{Resource: resource}
	default:
		return ErrServerUnavailable{Code: code}
	}
}
