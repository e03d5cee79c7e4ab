// Package remote holds the shared plumbing for the outbound API
// clients: a typed error that classifies transport failures so callers
// decide explicitly instead of inspecting error strings, and a small
// JSON GET helper both clients are built on.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
)

type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindUnreachable ErrorKind = "unreachable"
	KindBadStatus   ErrorKind = "bad_status"
	KindMalformed   ErrorKind = "malformed_response"
)

// APIError is the failure surface of every remote call.
type APIError struct {
	API    string
	Kind   ErrorKind
	Status int // HTTP status, only set for KindBadStatus
	Err    error
}

func (e *APIError) Error() string {
	if e.Kind == KindBadStatus {
		return fmt.Sprintf("%s: unexpected status %d", e.API, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.API, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.API, e.Kind)
}

func (e *APIError) Unwrap() error { return e.Err }

// Classify maps a transport error to its failure kind.
func Classify(api string, err error) *APIError {
	kind := KindUnreachable
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}
	return &APIError{API: api, Kind: kind, Err: err}
}

func BadStatus(api string, status int) *APIError {
	return &APIError{API: api, Kind: KindBadStatus, Status: status}
}

func Malformed(api string, err error) *APIError {
	return &APIError{API: api, Kind: KindMalformed, Err: err}
}

// GetJSON issues a GET and decodes the 2xx body into out. Any failure
// comes back as an *APIError.
func GetJSON(ctx context.Context, client *http.Client, api, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &APIError{API: api, Kind: KindUnreachable, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Classify(api, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return BadStatus(api, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Malformed(api, err)
	}
	return nil
}
