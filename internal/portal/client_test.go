package portal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// newRetryingClient mirrors NewClient but with near-zero backoff so
// retry behavior is testable without sleeping
func newRetryingClient(baseURL, account string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = time.Millisecond
	rc.RetryWaitMax = 5 * time.Millisecond
	rc.Logger = nil
	rc.CheckRetry = checkRetry

	return &Client{
		BaseURL:    baseURL,
		Account:    account,
		APIKey:     "test-key",
		HTTPClient: rc.StandardClient(),
	}
}

func TestRegisterLocationSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acct/idp/api/catalog/locations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header %q", got)
		}
		if got := r.Header.Get("Harness-Account"); got != "acct" {
			t.Errorf("unexpected account header %q", got)
		}

		body, _ := io.ReadAll(r.Body)
		var req locationRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("parsing request body: %v", err)
		}
		if req.Type != "url" {
			t.Errorf("expected type url, got %s", req.Type)
		}
		if want := "https://github.com/acme/catalog-sync/blob/main/services/billing/catalog-info.yaml"; req.Target != want {
			t.Errorf("expected target %s, got %s", want, req.Target)
		}

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.URL, "acct", "test-key", server.Client())
	target := TargetURL("acme", "catalog-sync", "main", "billing")

	outcome, err := client.RegisterLocation("billing", target)
	if err != nil {
		t.Fatalf("RegisterLocation: %v", err)
	}
	if outcome != OutcomeRegistered {
		t.Errorf("expected registered, got %s", outcome)
	}
}

func TestRegisterLocationConflictRefreshes(t *testing.T) {
	var refreshCalled bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/acct/idp/api/catalog/locations":
			w.WriteHeader(http.StatusConflict)
		case "/acct/idp/api/catalog/refresh":
			refreshCalled = true
			body, _ := io.ReadAll(r.Body)
			var req refreshRequest
			if err := json.Unmarshal(body, &req); err != nil {
				t.Fatalf("parsing refresh body: %v", err)
			}
			if req.EntityRef != "component:default/billing" {
				t.Errorf("unexpected entityRef %s", req.EntityRef)
			}
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.URL, "acct", "test-key", server.Client())

	outcome, err := client.RegisterLocation("billing", TargetURL("acme", "catalog-sync", "main", "billing"))
	if err != nil {
		t.Fatalf("RegisterLocation: %v", err)
	}
	if outcome != OutcomeRefreshed {
		t.Errorf("expected refreshed, got %s", outcome)
	}
	if !refreshCalled {
		t.Error("expected refresh call after conflict")
	}
	if !outcome.Success() {
		t.Error("expected refreshed to count as success")
	}
}

func TestRegisterLocationNonRetryableFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newRetryingClient(server.URL, "acct")

	outcome, err := client.RegisterLocation("billing", TargetURL("acme", "catalog-sync", "main", "billing"))
	if outcome != OutcomeFailed {
		t.Errorf("expected failed, got %s", outcome)
	}
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if calls != 1 {
		t.Errorf("expected no retries for 404, got %d calls", calls)
	}
}

func TestRegisterLocationRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newRetryingClient(server.URL, "acct")

	outcome, err := client.RegisterLocation("billing", TargetURL("acme", "catalog-sync", "main", "billing"))
	if err != nil {
		t.Fatalf("RegisterLocation: %v", err)
	}
	if outcome != OutcomeRegistered {
		t.Errorf("expected registered after retries, got %s", outcome)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestRegisterLocationRetriesExhausted(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newRetryingClient(server.URL, "acct")

	outcome, err := client.RegisterLocation("billing", TargetURL("acme", "catalog-sync", "main", "billing"))
	if outcome != OutcomeFailed {
		t.Errorf("expected failed, got %s", outcome)
	}
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	// initial attempt plus 3 retries
	if calls != 4 {
		t.Errorf("expected 4 attempts, got %d", calls)
	}
}

func TestRegisterLocationTransportError(t *testing.T) {
	client := NewClientWithHTTPClient("http://127.0.0.1:1", "acct", "test-key", &http.Client{Timeout: 100 * time.Millisecond})

	outcome, err := client.RegisterLocation("billing", TargetURL("acme", "catalog-sync", "main", "billing"))
	if outcome != OutcomeFailed {
		t.Errorf("expected failed, got %s", outcome)
	}
	if err == nil {
		t.Fatal("expected transport error")
	}
}

func TestCheckRetryStatuses(t *testing.T) {
	cases := []struct {
		status int
		retry  bool
	}{
		{200, false},
		{201, false},
		{401, true},
		{404, false},
		{409, false},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
	}

	for _, tc := range cases {
		got, err := checkRetry(context.Background(), &http.Response{StatusCode: tc.status}, nil)
		if err != nil {
			t.Fatalf("checkRetry(%d): %v", tc.status, err)
		}
		if got != tc.retry {
			t.Errorf("status %d: expected retry=%v, got %v", tc.status, tc.retry, got)
		}
	}
}
