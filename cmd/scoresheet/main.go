/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tornelo/scoresheet/chessgame"
	"github.com/tornelo/scoresheet/tornelo"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"pairings":  handlePairings,
	"record":    handleRecord,
	"moves":     handleMoves,
	"cacheseed": handleCacheSeed,
}

func main() {
	ctx := context.Background()
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handlePairings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pairings", flag.ExitOnError)
	pgnSrc := fs.String("pgn", "", "PGN feed (file or URL) for the round")
	htmlURL := fs.String("html", "", "Published pairings page (fallback)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	pairings, err := loadPairings(ctx, *pgnSrc, *htmlURL)
	if err != nil {
		log.Fatalf("Error loading pairings: %v", err)
	}
	fmt.Print(renderPairings(pairings))
}

func handleRecord(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	pgnSrc := fs.String("pgn", "", "PGN feed (file or URL) for the round")
	htmlURL := fs.String("html", "", "Published pairings page (fallback)")
	board := fs.Int("board", 0, "Board number to record")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	pairings, err := loadPairings(ctx, *pgnSrc, *htmlURL)
	if err != nil {
		log.Fatalf("Error loading pairings: %v", err)
	}

	sess := newSession(os.Stdout)
	if err := sess.app.LoadPairings(pairings); err != nil {
		log.Fatalf("Error loading pairings: %v", err)
	}
	if *board != 0 {
		if err := sess.selectBoard(*board); err != nil {
			log.Fatalf("Error selecting board %v: %v", *board, err)
		}
	}
	sess.show()

	if err := sess.run(os.Stdin); err != nil {
		log.Fatalf("Error reading commands: %v", err)
	}
}

func handleMoves(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("moves", flag.ExitOnError)
	pgnPath := fs.String("pgn", "", "Recorded game PGN file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *pgnPath == "" {
		fmt.Fprintln(os.Stderr, "Please provide --pgn.")
		fs.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*pgnPath)
	if err != nil {
		log.Fatalf("Error opening %v: %v", *pgnPath, err)
	}
	defer f.Close()

	board, err := chessgame.ReplayPGN(f)
	if err != nil {
		log.Fatalf("Error replaying %v: %v", *pgnPath, err)
	}
	fmt.Print(renderMoves(chessgame.Moves(board.History())))
}

func handleCacheSeed(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("cacheseed", flag.ExitOnError)
	pause := fs.Duration("pause", 2*time.Second, "Pause between fetches")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Please provide one or more feed URLs.")
		os.Exit(1)
	}

	client := tornelo.NewClient(ctx)
	for idx, url := range fs.Args() {
		if idx > 0 {
			time.Sleep(*pause) // avoid pegging the pairings host
		}
		pairings, err := client.FetchPairings(ctx, url, "")
		if err != nil {
			// best effort
			log.Printf("scoresheet.cacheseed: %v: %v", url, err)
			continue
		}
		fmt.Printf("seeded %v (%d boards)\n", url, len(pairings))
	}
}

func loadPairings(ctx context.Context, pgnSrc,
	htmlURL string) ([]chessgame.GameInfo, error) {

	if pgnSrc == "" && htmlURL == "" {
		fmt.Fprintln(os.Stderr, "Please provide --pgn and/or --html.")
		os.Exit(1)
	}
	client := tornelo.NewClient(ctx)
	if htmlURL != "" || isURL(pgnSrc) {
		feedURL := pgnSrc
		if !isURL(feedURL) && feedURL != "" {
			pairings, err := tornelo.LoadPairingsFile(feedURL)
			if err == nil {
				return pairings, nil
			}
			log.Printf("scoresheet: %v; falling back to %v", err, htmlURL)
			feedURL = ""
		}
		return client.FetchPairings(ctx, feedURL, htmlURL)
	}

	return client.LoadPairings(ctx, pgnSrc)
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
