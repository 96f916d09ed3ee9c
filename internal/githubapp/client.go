package githubapp

import (
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.github.com"

// Client is the API client for the GitHub App endpoints used by catalog-sync
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	AppID          string
	InstallationID string
	PrivateKeyPath string
}

// NewClient creates a client against api.github.com
func NewClient(appID, installationID, privateKeyPath string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		AppID:          appID,
		InstallationID: installationID,
		PrivateKeyPath: privateKeyPath,
	}
}

// NewClientWithHTTPClient creates a client with a custom base URL and HTTP client
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
	}
}
