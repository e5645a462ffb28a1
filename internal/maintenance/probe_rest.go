package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RESTProber probes a PostgREST-style data API.
type RESTProber struct {
	client *resty.Client
	path   string
}

// NewRESTProber probes GET {baseURL}/rest/v1/{table}?select=id&limit=1.
// Retries are disabled; the next check after the TTL is the retry.
func NewRESTProber(baseURL, apiKey, table string, timeout time.Duration) (*RESTProber, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("maintenance: rest probe base url required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, err
	}
	if table == "" {
		table = "events"
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("apikey", apiKey).SetAuthToken(apiKey)
	}

	return &RESTProber{
		client: client,
		path:   "/rest/v1/" + url.PathEscape(table),
	}, nil
}

type restErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (p *RESTProber) Probe(ctx context.Context) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"select": "id", "limit": "1"}).
		Get(p.path)
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}

	backendErr := &BackendError{Status: resp.StatusCode(), Message: resp.Status()}
	var body restErrorBody
	if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil {
		backendErr.Code = body.Code
		if body.Message != "" {
			backendErr.Message = body.Message
		}
	}
	return backendErr
}
