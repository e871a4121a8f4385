/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tornelo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tornelo/scoresheet/chessgame"
	"github.com/tornelo/scoresheet/internal"
)

type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client whose fetches go through the pairings cache.
func NewClient(ctx context.Context) *Client {
	return &Client{
		httpClient: internal.NewCachedHttpClient(ctx, internal.PairingsCacheTTL),
	}
}

// NewClientWithHTTP is NewClient with a caller supplied http.Client.
func NewClientWithHTTP(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// FetchPairings gets the round's PGN feed and its HTML pairings page at the
// same time. The feed wins when it parses; the page is the fallback. Either
// URL may be empty. Pairings are returned in board order.
func (client *Client) FetchPairings(ctx context.Context, feedURL,
	pageURL string) ([]chessgame.GameInfo, error) {

	var feedPairings, pagePairings []chessgame.GameInfo
	var errFeed, errPage error

	// errors are kept per source so one failing fetch does not cancel the other
	g, ctx := errgroup.WithContext(ctx)
	if feedURL != "" {
		g.Go(func() error {
			feedPairings, errFeed = client.fetch(ctx, feedURL, ParsePairings)
			return nil
		})
	}
	if pageURL != "" {
		g.Go(func() error {
			pagePairings, errPage = client.fetch(ctx, pageURL, ParsePairingsHTML)
			return nil
		})
	}
	_ = g.Wait()

	if feedURL != "" && errFeed == nil {
		return SortByBoard(feedPairings), nil
	}
	if pageURL != "" && errPage == nil {
		if errFeed != nil {
			log.Printf("tornelo.fetch: feed %v failed, using page: %v", feedURL,
				errFeed)
		}
		return SortByBoard(pagePairings), nil
	}
	if feedURL == "" && pageURL == "" {
		return nil, fmt.Errorf("tornelo.fetch: %w: no source given", ErrNoPairings)
	}

	return nil, errors.Join(errFeed, errPage)
}

// LoadPairings reads pairings from a URL or a local PGN file.
func (client *Client) LoadPairings(ctx context.Context,
	src string) ([]chessgame.GameInfo, error) {

	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return client.FetchPairings(ctx, src, "")
	}
	return LoadPairingsFile(src)
}

// LoadPairingsFile reads pairings from a PGN file on disk.
func LoadPairingsFile(path string) ([]chessgame.GameInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tornelo.load: %w", err)
	}
	defer f.Close()

	pairings, err := ParsePairings(f)
	if err != nil {
		return nil, fmt.Errorf("tornelo.load: %v: %w", path, err)
	}

	return SortByBoard(pairings), nil
}

func (client *Client) fetch(ctx context.Context, url string,
	parse func(io.Reader) ([]chessgame.GameInfo, error)) ([]chessgame.GameInfo, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request for %v: %w", url, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %v", resp.StatusCode, url)
	}
	pairings, err := parse(io.LimitReader(resp.Body, internal.MaxPairingsBytes))
	if err != nil {
		return nil, fmt.Errorf("unable to parse %v: %w", url, err)
	}

	return pairings, nil
}

// SortByBoard orders pairings by board number in place; pairings without a
// board go last.
func SortByBoard(pairings []chessgame.GameInfo) []chessgame.GameInfo {
	sort.SliceStable(pairings, func(i, j int) bool {
		bi, bj := pairings[i].SubRound, pairings[j].SubRound
		if bi == 0 || bj == 0 {
			return bj == 0 && bi != 0
		}
		return bi < bj
	})

	return pairings
}
