// Package client is the thin fetch layer over the backend REST API.
// It returns raw payloads; all shape interpretation happens in
// pkg/payload and above, because the backend's response envelopes are
// not stable across versions.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/caredash/impactboard/internal/utils"
	"github.com/caredash/impactboard/pkg/payload"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const (
	programsPath  = "/api/programs"
	donationsPath = "/api/donations"
)

type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client
}

// New builds a Client for the given API base URL. token may be empty
// for unauthenticated deployments.
func New(baseURL, token string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient.Timeout = 30 * time.Second
	return &Client{baseURL: baseURL, token: token, http: rc}
}

func (c *Client) get(ctx context.Context, path string) (gjson.Result, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	if resp.StatusCode >= 300 {
		return gjson.Result{}, fmt.Errorf("GET %s failed with HTTP %d", path, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("GET %s returned invalid JSON", path)
	}
	return gjson.ParseBytes(body), nil
}

// FetchPrograms returns the raw program list payload.
func (c *Client) FetchPrograms(ctx context.Context) (gjson.Result, error) {
	return c.get(ctx, programsPath)
}

// FetchDonations returns the raw donation list payload.
func (c *Client) FetchDonations(ctx context.Context) (gjson.Result, error) {
	return c.get(ctx, donationsPath)
}

// FetchAll fetches both sources concurrently and unwraps them. Each
// source fails independently: a failed fetch logs a warning and yields
// an empty collection so the other source still aggregates.
func (c *Client) FetchAll(ctx context.Context) (programs, donations []gjson.Result) {
	programs = []gjson.Result{}
	donations = []gjson.Result{}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		raw, err := c.FetchPrograms(ctx)
		if err != nil {
			utils.Log.Warnf("Failed to fetch programs: %v", err)
			return
		}
		programs = payload.ExtractCollection(raw)
	}()

	go func() {
		defer wg.Done()
		raw, err := c.FetchDonations(ctx)
		if err != nil {
			utils.Log.Warnf("Failed to fetch donations: %v", err)
			return
		}
		donations = payload.ExtractCollection(raw)
	}()

	wg.Wait()
	return programs, donations
}
