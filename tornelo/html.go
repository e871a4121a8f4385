/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tornelo

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tornelo/scoresheet/chessgame"
)

var (
	roundRe  = regexp.MustCompile(`(?i)round\s+(\d+)`)
	ratingRe = regexp.MustCompile(`\((\d{3,4})\)\s*$`)
)

// ParsePairingsHTML reads a published pairings page. The event name comes
// from the first h1, the round from a "Round N" heading, and each row of the
// pairings table is Bd | White | Res | Black.
func ParsePairingsHTML(r io.Reader) ([]chessgame.GameInfo, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("tornelo.parseHTML: unable to parse page: %w", err)
	}

	event := strings.TrimSpace(doc.Find("h1").First().Text())
	round := 0
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := roundRe.FindStringSubmatch(s.Text()); m != nil {
			round, _ = strconv.Atoi(m[1])
			return false
		}
		return true
	})

	var pairings []chessgame.GameInfo
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		info, ok := parsePairingRow(row)
		if !ok {
			return
		}
		info.Name = event
		info.Round = round
		pairings = append(pairings, info)
	})
	if len(pairings) == 0 {
		return nil, ErrNoPairings
	}

	return pairings, nil
}

// parsePairingRow parses one table row. Returns ok=false for header rows and
// byes.
func parsePairingRow(row *goquery.Selection) (chessgame.GameInfo, bool) {
	cells := row.Find("td")
	if cells.Length() < 4 {
		return chessgame.GameInfo{}, false
	}
	board, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
	if err != nil {
		return chessgame.GameInfo{}, false
	}
	whiteText := strings.TrimSpace(cells.Eq(1).Text())
	blackText := strings.TrimSpace(cells.Eq(3).Text())
	if isBye(whiteText) || isBye(blackText) {
		return chessgame.GameInfo{}, false
	}

	white := parsePlayerRef(whiteText)
	white.Colour = chessgame.White
	black := parsePlayerRef(blackText)
	black.Colour = chessgame.Black

	result := strings.TrimSpace(cells.Eq(2).Text())
	if result == "" {
		result = "*"
	}

	return chessgame.GameInfo{
		SubRound: board,
		Result:   strings.ReplaceAll(result, "½", "1/2"),
		Players:  []chessgame.Player{white, black},
	}, true
}

// parsePlayerRef extracts a player from cell text like "Polgar, Judit (2735)".
func parsePlayerRef(text string) chessgame.Player {
	elo := 0
	if m := ratingRe.FindStringSubmatch(text); m != nil {
		elo, _ = strconv.Atoi(m[1])
		text = strings.TrimSpace(text[:len(text)-len(m[0])])
	}
	p := parsePlayerName(text)
	p.Elo = elo

	return p
}

func isBye(text string) bool {
	return strings.EqualFold(text, "BYE") || text == ""
}
