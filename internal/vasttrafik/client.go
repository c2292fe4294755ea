package vasttrafik

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DepartureSource defines the two calls a refresh cycle needs.
// This interface is implemented by *Client and can be used for testing.
type DepartureSource interface {
	FetchToken(ctx context.Context) (string, error)
	FetchDepartures(ctx context.Context, token string, query DepartureQuery) (DepartureList, error)
}

// Ensure Client implements DepartureSource at compile time.
var _ DepartureSource = (*Client)(nil)

const (
	DefaultTokenURL = "https://ext-api.vasttrafik.se/token"
	DefaultBaseURL  = "https://ext-api.vasttrafik.se/pr/v4"

	defaultUserAgent = "avgang/0.1"
	requestTimeout   = 30 * time.Second
)

// AuthError reports a non-200 answer from the token endpoint.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token request returned status %d", e.StatusCode)
}

// FetchError reports a non-200 answer from the departures endpoint.
type FetchError struct {
	StatusCode int
	URL        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.StatusCode)
}

// Client talks to the Västtrafik Planera Resa API.
type Client struct {
	tokenURL  string
	baseURL   *url.URL
	creds     Credentials
	http      *http.Client
	userAgent string
}

// Options configure NewClient. Empty URLs use the public endpoints.
type Options struct {
	TokenURL   string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a Client for the given credentials.
func NewClient(creds Credentials, opts Options) (*Client, error) {
	tokenURL := strings.TrimSpace(opts.TokenURL)
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if _, err := url.Parse(tokenURL); err != nil {
		return nil, fmt.Errorf("parse token url %q: %w", opts.TokenURL, err)
	}
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		tokenURL:  tokenURL,
		baseURL:   base,
		creds:     creds,
		http:      httpClient,
		userAgent: defaultUserAgent,
	}, nil
}

// FetchToken exchanges the credentials for a bearer token. The token is not
// cached; every call performs a new request.
func (c *Client) FetchToken(ctx context.Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.creds.Key, c.creds.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{StatusCode: resp.StatusCode}
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("decode token response: access_token missing")
	}
	return payload.AccessToken, nil
}

// FetchDepartures runs one departures query. Pagination is not followed.
func (c *Client) FetchDepartures(ctx context.Context, token string, query DepartureQuery) (DepartureList, error) {
	if c == nil {
		return DepartureList{}, fmt.Errorf("client is nil")
	}
	gid := strings.TrimSpace(query.StopAreaGID)
	if gid == "" {
		return DepartureList{}, fmt.Errorf("stop area gid required")
	}

	rel := &url.URL{
		Path:     strings.TrimSuffix(c.baseURL.Path, "/") + "/stop-areas/" + url.PathEscape(gid) + "/departures",
		RawQuery: query.Values().Encode(),
	}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return DepartureList{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return DepartureList{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return DepartureList{}, &FetchError{StatusCode: resp.StatusCode, URL: rel.Path}
	}

	var payload departuresResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return DepartureList{}, fmt.Errorf("decode response: %w", err)
	}
	if payload.Results == nil {
		return DepartureList{}, nil
	}
	return DepartureList{Results: *payload.Results, HasResults: true}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
