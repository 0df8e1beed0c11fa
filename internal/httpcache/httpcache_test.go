/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gregjones/httpcache"
)

func TestClientOverridesOriginHeaders(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		hits++
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		fmt.Fprintf(w, `{"items":[]}`)
	}))
	defer srv.Close()

	client := NewClient(httpcache.NewMemoryCache(), time.Hour)
	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil || len(data) == 0 {
			t.Fatalf("read body: %v (%v bytes)", err, len(data))
		}
		if i > 0 && resp.Header.Get(httpcache.XFromCache) != "1" {
			t.Errorf("request %v not served from cache", i)
		}
	}
	if hits != 1 {
		t.Errorf("origin hit %v times; want 1", hits)
	}
}
