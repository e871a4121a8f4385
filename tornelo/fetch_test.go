/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tornelo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/round.pgn", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-chess-pgn")
		w.Write([]byte(roundFeed))
	})
	mux.HandleFunc("/pairings.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(pairingsPage))
	})
	mux.HandleFunc("/html.pgn", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>Round 4 feed is not published yet</p></body></html>"))
	})
	mux.HandleFunc("/missing.pgn", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchPairingsPrefersFeed(t *testing.T) {
	srv := newTestServer(t)
	client := NewClientWithHTTP(srv.Client())

	pairings, err := client.FetchPairings(context.Background(),
		srv.URL+"/round.pgn", srv.URL+"/pairings.html")
	if err != nil {
		t.Fatalf("FetchPairings: %v", err)
	}
	if len(pairings) != 2 || pairings[0].Round != 3 {
		t.Fatalf("expected feed pairings, got %+v", pairings)
	}
	if pairings[0].SubRound != 1 || pairings[1].SubRound != 2 {
		t.Errorf("expected board order, got %d then %d", pairings[0].SubRound,
			pairings[1].SubRound)
	}
}

func TestFetchPairingsFallsBackToPage(t *testing.T) {
	srv := newTestServer(t)
	client := NewClientWithHTTP(srv.Client())

	pairings, err := client.FetchPairings(context.Background(),
		srv.URL+"/missing.pgn", srv.URL+"/pairings.html")
	if err != nil {
		t.Fatalf("FetchPairings: %v", err)
	}
	if len(pairings) != 2 || pairings[0].Round != 4 {
		t.Fatalf("expected page pairings, got %+v", pairings)
	}
}

func TestFetchPairingsFeedServesHTML(t *testing.T) {
	srv := newTestServer(t)
	client := NewClientWithHTTP(srv.Client())

	pairings, err := client.FetchPairings(context.Background(),
		srv.URL+"/html.pgn", srv.URL+"/pairings.html")
	if err != nil {
		t.Fatalf("FetchPairings: %v", err)
	}
	if len(pairings) != 2 || pairings[0].Round != 4 {
		t.Fatalf("expected page pairings, got %+v", pairings)
	}
	for _, p := range pairings {
		if len(p.Players) != 2 {
			t.Errorf("pairing without both players: %+v", p)
		}
	}
}

func TestFetchPairingsAllFail(t *testing.T) {
	srv := newTestServer(t)
	client := NewClientWithHTTP(srv.Client())

	if _, err := client.FetchPairings(context.Background(),
		srv.URL+"/missing.pgn", ""); err == nil {
		t.Errorf("expected error when the only source is missing")
	}
	if _, err := client.FetchPairings(context.Background(), "", ""); err == nil {
		t.Errorf("expected error without sources")
	}
}

func TestLoadPairings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round3.pgn")
	if err := os.WriteFile(path, []byte(roundFeed), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	srv := newTestServer(t)
	client := NewClientWithHTTP(srv.Client())

	fromFile, err := client.LoadPairings(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadPairings(file): %v", err)
	}
	fromURL, err := client.LoadPairings(context.Background(), srv.URL+"/round.pgn")
	if err != nil {
		t.Fatalf("LoadPairings(url): %v", err)
	}
	if len(fromFile) != len(fromURL) || fromFile[0].SubRound != fromURL[0].SubRound {
		t.Errorf("file and url pairings differ: %+v vs %+v", fromFile, fromURL)
	}

	if _, err := LoadPairingsFile(filepath.Join(t.TempDir(), "nope.pgn")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
