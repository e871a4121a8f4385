/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tornelo

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/tornelo/scoresheet/chessgame"
	"github.com/tornelo/scoresheet/internal"
)

var ErrNoPairings = errors.New("no pairings found")

// ParsePairings reads a round's PGN feed, one game per board, into pairings.
// Only the tag section of each game is used; movetext may be empty.
func ParsePairings(r io.Reader) ([]chessgame.GameInfo, error) {
	var pairings []chessgame.GameInfo

	scanner := chess.NewScanner(io.LimitReader(r, internal.MaxPairingsBytes))
	for scanner.Scan() {
		game := scanner.Next()
		info := gameInfoFromTags(func(key string) string {
			tp := game.GetTagPair(key)
			if tp == nil {
				return ""
			}
			return strings.TrimSpace(tp.Value)
		})
		// the scanner yields an empty game for blank or non-PGN input
		if len(info.Players) != 2 {
			continue
		}
		info.Pgn = game.String()
		pairings = append(pairings, info)
	}
	err := scanner.Err()
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if len(pairings) == 0 {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoPairings, err)
		}
		return nil, ErrNoPairings
	}
	if err != nil {
		return nil, fmt.Errorf("tornelo.parse: unable to scan pgn: %w", err)
	}

	return pairings, nil
}

func gameInfoFromTags(tag func(key string) string) chessgame.GameInfo {
	info := chessgame.GameInfo{
		Name:   tag("Event"),
		Site:   tag("Site"),
		Result: tag("Result"),
	}
	info.Round, info.SubRound = parseRound(tag("Round"))

	date, err := internal.ParseDateOrZero(tag("Date"))
	if err != nil {
		log.Printf("tornelo.parse: unable to parse date %v: %v", tag("Date"), err)
	}
	info.Date = date

	for _, c := range []chessgame.PlayerColour{chessgame.White, chessgame.Black} {
		name := tag(c.String())
		if name == "" || name == "?" {
			continue
		}
		p := parsePlayerName(name)
		p.Colour = c
		p.Elo = parseInt(tag(c.String() + "Elo"))
		p.FideID = parseInt(tag(c.String() + "FideId"))
		p.Country = tag(c.String() + "Federation")
		info.Players = append(info.Players, p)
	}

	return info
}

// parseRound splits a Round tag such as "3.7" into round 3, board 7. A plain
// "3" has no board.
func parseRound(text string) (int, int) {
	roundText, boardText, _ := strings.Cut(text, ".")
	return parseInt(roundText), parseInt(boardText)
}

// parsePlayerName handles PGN's "Last, First" as well as "First Last".
func parsePlayerName(name string) chessgame.Player {
	if last, first, ok := strings.Cut(name, ","); ok {
		return chessgame.Player{
			FirstName: strings.TrimSpace(first),
			LastName:  strings.TrimSpace(last),
		}
	}
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return chessgame.Player{LastName: name}
	}

	return chessgame.Player{
		FirstName: strings.Join(fields[:len(fields)-1], " "),
		LastName:  fields[len(fields)-1],
	}
}

func parseInt(text string) int {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return v
}
