package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const DefaultBaseURL = "https://idp.harness.io"

// retryStatuses are the response codes retried at the transport level
var retryStatuses = map[int]bool{
	http.StatusUnauthorized:        true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Client is the API client for the developer-portal catalog
type Client struct {
	BaseURL    string
	Account    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a portal client with bounded retries: up to 3
// retries with exponential backoff starting at 1s, for the retryable
// status codes only.
func NewClient(account, apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 30 * time.Second
	rc.Logger = nil
	rc.CheckRetry = checkRetry

	return &Client{
		BaseURL:    DefaultBaseURL,
		Account:    account,
		APIKey:     apiKey,
		HTTPClient: rc.StandardClient(),
	}
}

// NewClientWithHTTPClient creates a portal client with a custom base URL
// and HTTP client
func NewClientWithHTTPClient(baseURL, account, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		BaseURL:    baseURL,
		Account:    account,
		APIKey:     apiKey,
		HTTPClient: httpClient,
	}
}

// checkRetry retries transport errors and the fixed status set
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	return retryStatuses[resp.StatusCode], nil
}

// TargetURL returns the committed descriptor's expected web URL
func TargetURL(org, repo, branch, name string) string {
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/services/%s/catalog-info.yaml", org, repo, branch, name)
}

// RegisterLocation registers one descriptor as a catalog location.
// A 409 means the location already exists; a refresh is issued for the
// component's entity reference and the registration counts as success.
func (c *Client) RegisterLocation(name, target string) (Outcome, error) {
	status, err := c.post("/idp/api/catalog/locations", locationRequest{
		Target: target,
		Type:   "url",
	})
	if err != nil {
		return OutcomeFailed, err
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		return OutcomeRegistered, nil
	case http.StatusConflict:
		if _, err := c.post("/idp/api/catalog/refresh", refreshRequest{
			EntityRef: "component:default/" + name,
		}); err != nil {
			return OutcomeFailed, err
		}
		return OutcomeRefreshed, nil
	default:
		return OutcomeFailed, fmt.Errorf("registration returned %d", status)
	}
}

// post sends a JSON body and returns the response status
func (c *Client) post(path string, body any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s%s", c.BaseURL, c.Account, path)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Harness-Account", c.Account)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
