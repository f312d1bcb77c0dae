package voc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// bodyPreviewLimit caps how much of a raw response body is echoed in
// error messages.
const bodyPreviewLimit = 200

// Client talks to the VoC ticket REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	rest    *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		rest: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Accept", "application/json").
			SetTimeout(timeout),
	}
}

// detailEnvelope is the wire shape of GET /voc-data/{id}.
type detailEnvelope struct {
	Data    json.RawMessage `json:"data"`
	History []History       `json:"history"`
}

// Detail fetches the full ticket record. The body is read as text
// first: a non-success status or a non-JSON content type produce a
// descriptive error, with the raw body truncated for diagnosis, before
// any JSON parsing is attempted.
func (c *Client) Detail(ctx context.Context, id int64) (*Detail, error) {
	url := fmt.Sprintf("%s/voc-data/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voc api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("voc api read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("voc api error: %s body=%s",
			resp.Status, truncate(string(body), bodyPreviewLimit))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil, fmt.Errorf("voc api unexpected content type %q body=%s",
			contentType, truncate(string(body), bodyPreviewLimit))
	}

	var envelope detailEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("voc api decode: %w", err)
	}

	detail, err := decodeDetail(envelope.Data)
	if err != nil {
		return nil, err
	}
	detail.History = envelope.History
	return detail, nil
}

// decodeDetail unmarshals the data object and normalizes it: CRLF line
// endings collapse in the two description fields, and the misspelled
// upstream key "udpated_date" is reconciled to updated_date.
func decodeDetail(data json.RawMessage) (*Detail, error) {
	var detail Detail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("voc api decode data: %w", err)
	}

	if detail.UpdatedDate == "" {
		var alt struct {
			UdpatedDate string `json:"udpated_date"`
		}
		if err := json.Unmarshal(data, &alt); err == nil {
			detail.UpdatedDate = alt.UdpatedDate
		}
	}

	detail.Content = normalizeText(detail.Content)
	detail.Memo = normalizeText(detail.Memo)
	return &detail, nil
}

// List runs a filtered ticket query against /voc-data.
func (c *Client) List(ctx context.Context, params map[string]string) ([]Item, error) {
	var items []Item
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&items).
		Get("/voc-data")
	if err != nil {
		return nil, fmt.Errorf("voc api request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("voc api error: %s body=%s",
			resp.Status(), truncate(resp.String(), bodyPreviewLimit))
	}
	return items, nil
}

func normalizeText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
