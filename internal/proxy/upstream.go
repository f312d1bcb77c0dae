package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Upstream posts completion requests to the external AI endpoint with
// the injected Basic-auth credential. The credential comes from config;
// it is never embedded in source.
type Upstream struct {
	url      string
	user     string
	password string
	client   *http.Client
}

func NewUpstream(url, user, password string, timeout time.Duration) *Upstream {
	return &Upstream{
		url:      url,
		user:     user,
		password: password,
		client:   &http.Client{Timeout: timeout},
	}
}

// Result carries the upstream response verbatim.
type Result struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Forward relays body to the upstream endpoint and returns whatever it
// answered, status code included. Only transport failure is an error.
func (u *Upstream) Forward(ctx context.Context, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(u.user, u.password)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream read body: %w", err)
	}

	return &Result{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
