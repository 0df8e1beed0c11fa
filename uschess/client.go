/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package uschess fetches rated event crosstables from the US Chess ratings
// API and converts them into per-round results for tiebreak calculation.
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
	"github.com/mikeb26/boylstonchessclub-tiebreak/internal/httpcache"
)

// maxSectionFetches bounds the concurrent standings requests per event.
const maxSectionFetches = 4

type Client struct {
	httpClient30day *http.Client
	httpClient1day  *http.Client
	apiBase         string
}

func NewClient(ctx context.Context) *Client {
	ret := &Client{
		httpClient30day: httpcache.NewCachedHttpClient(ctx, 30*24*time.Hour),
		apiBase:         internal.USCFRatingsAPI,
	}
	if ret.httpClient30day != http.DefaultClient {
		ret.httpClient1day = httpcache.NewCachedHttpClient(ctx, 24*time.Hour)
	} else {
		ret.httpClient1day = http.DefaultClient
	}

	return ret
}

// getJSON fetches apiBase+path and decodes the JSON response into out.
func (client *Client) getJSON(ctx context.Context, httpClient *http.Client,
	path string, out any) error {

	reqURL := client.apiBase + path
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("unable to create request for %v: %w", reqURL, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d fetching %v: %s",
			resp.StatusCode, reqURL, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse JSON from %v: %w", reqURL, err)
	}

	return nil
}
