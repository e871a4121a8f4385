/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/tornelo/scoresheet/s3cache"
)

// CacheBucket returns the S3 bucket used for the web cache. An empty result
// means S3 caching is disabled.
func CacheBucket() string {
	if bucket, ok := os.LookupEnv(CacheBucketEnv); ok {
		return bucket
	}
	return WebCacheBucket
}

// NewCachedHttpClient returns an http.Client whose responses are cached for
// maxAge regardless of what the origin says. Responses are kept in S3 when
// the bucket is reachable and in memory otherwise.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	var cache httpcache.Cache
	bucket := CacheBucket()
	if bucket != "" {
		s3c := s3cache.New(ctx, s3cache.Options{
			Bucket:    bucket,
			Prefix:    "pairings",
			Gzip:      true,
			LogErrors: true,
		})
		if err := s3c.Init(); err != nil {
			log.Printf("httpcache: S3 cache unavailable, using memory: %v", err)
		} else {
			cache = s3c
		}
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	return newCachedClient(cache, http.DefaultTransport, maxAge)
}

func newCachedClient(cache httpcache.Cache, rt http.RoundTripper,
	maxAge time.Duration) *http.Client {

	hc := httpcache.NewTransport(cache)
	// origin headers would otherwise decide whether we cache at all
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: rt,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

// HeaderOverrideTransport lets callers rewrite requests before they are sent
// and responses before they reach the cache.
type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// never modify the caller's request
	out := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(out)
	}

	rt := t.wrappedRT
	if rt == nil {
		rt = http.DefaultTransport
	}
	resp, err := rt.RoundTrip(out)
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
