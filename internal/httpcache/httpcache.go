/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
	"github.com/mikeb26/boylstonchessclub-tiebreak/s3cache"
)

// NewCachedHttpClient returns an http.Client that caches responses in the
// shared S3 web cache and treats every response as fresh for maxAge,
// regardless of what the origin says. If the S3 cache cannot be reached
// http.DefaultClient is returned instead.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	cache := s3cache.New(ctx, s3cache.Options{
		Bucket:    internal.WebCacheBucket,
		Prefix:    internal.WebCachePrefix,
		Gzip:      true,
		LogErrors: true,
	})
	if err := cache.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to uncached http", err)
		return http.DefaultClient
	}

	return NewClient(cache, maxAge)
}

// NewClient wraps the given cache in an http.Client which overrides the
// origin's cache headers with a max-age of maxAge.
func NewClient(cache httpcache.Cache, maxAge time.Duration) *http.Client {
	hc := httpcache.NewTransport(cache)
	// origin responses from the ratings api mark themselves uncacheable;
	// standings of a rated event do not change so override that
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

// HeaderOverrideTransport lets callers rewrite requests before and responses
// after the wrapped RoundTripper.
type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
