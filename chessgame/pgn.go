/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chessgame

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"

	pgnLineWidth     = 79
	drawOfferComment = "{draw offered}"
)

// ResultFor maps a winner to a PGN result token; nil is a draw.
func ResultFor(winner *PlayerColour) string {
	if winner == nil {
		return ResultDraw
	}
	if *winner == White {
		return ResultWhiteWins
	}
	return ResultBlackWins
}

// GeneratePgn renders plies recorded from startingFen as a PGN game for the
// given pairing. Skipped turns are written as "--" and draw offers as a
// comment after the ply they were made on.
func GeneratePgn(info GameInfo, startingFen string, plies []Ply,
	winner *PlayerColour) (string, error) {

	white, ok := info.Player(White)
	if !ok {
		return "", fmt.Errorf("%w: pairing has no white player", ErrPgnGeneration)
	}
	black, ok := info.Player(Black)
	if !ok {
		return "", fmt.Errorf("%w: pairing has no black player", ErrPgnGeneration)
	}
	if err := verifyPlies(plies); err != nil {
		return "", err
	}

	result := ResultFor(winner)
	var sb strings.Builder
	writeTag(&sb, "Event", orUnknown(info.Name))
	writeTag(&sb, "Site", orUnknown(info.Site))
	writeTag(&sb, "Date", pgnDate(info))
	writeTag(&sb, "Round", pgnRound(info))
	writeTag(&sb, "White", pgnName(white))
	writeTag(&sb, "Black", pgnName(black))
	writeTag(&sb, "Result", result)
	writePlayerTags(&sb, "White", white)
	writePlayerTags(&sb, "Black", black)
	if startingFen != "" && startingFen != chess.StartingPosition().String() {
		writeTag(&sb, "SetUp", "1")
		writeTag(&sb, "FEN", startingFen)
	}
	sb.WriteString("\n")
	sb.WriteString(wrapTokens(movetext(plies, result), pgnLineWidth))
	sb.WriteString("\n")

	return sb.String(), nil
}

// verifyPlies replays every move from the FEN it claims to start from.
func verifyPlies(plies []Ply) error {
	for idx, ply := range plies {
		if ply.Type == SkipPly {
			continue
		}
		pos, err := positionFromFEN(ply.StartingFen)
		if err != nil {
			return fmt.Errorf("%w: ply %v: %w", ErrPgnGeneration, idx, err)
		}
		m, err := findMove(pos, ply.Squares, ply.Promotion)
		if err != nil {
			return fmt.Errorf("%w: ply %v: %w", ErrPgnGeneration, idx, err)
		}
		if san := (chess.AlgebraicNotation{}).Encode(pos, m); san != ply.San {
			return fmt.Errorf("%w: ply %v: recorded %v but position gives %v",
				ErrPgnGeneration, idx, ply.San, san)
		}
	}

	return nil
}

func movetext(plies []Ply, result string) []string {
	var tokens []string
	for idx, ply := range plies {
		num := moveNumber(ply.StartingFen)
		if ply.Player == White {
			tokens = append(tokens, fmt.Sprintf("%d.", num))
		} else if idx == 0 || plies[idx-1].DrawOffered {
			tokens = append(tokens, fmt.Sprintf("%d...", num))
		}
		if ply.Type == SkipPly {
			tokens = append(tokens, "--")
		} else {
			tokens = append(tokens, ply.San)
		}
		if ply.DrawOffered {
			tokens = append(tokens, drawOfferComment)
		}
	}

	return append(tokens, result)
}

func moveNumber(fen string) int {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return 1
	}
	num, err := strconv.Atoi(fields[5])
	if err != nil || num < 1 {
		return 1
	}
	return num
}

// wrapTokens joins tokens with spaces, breaking lines before width is
// exceeded. The draw offer comment is a single token so it never splits.
func wrapTokens(tokens []string, width int) string {
	var sb strings.Builder
	lineLen := 0
	for _, tok := range tokens {
		if lineLen > 0 && lineLen+1+len(tok) > width {
			sb.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(tok)
		lineLen += len(tok)
	}
	return sb.String()
}

func writeTag(sb *strings.Builder, key, value string) {
	value = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
	sb.WriteString(fmt.Sprintf("[%s \"%s\"]\n", key, value))
}

func writePlayerTags(sb *strings.Builder, side string, p Player) {
	if p.Elo > 0 {
		writeTag(sb, side+"Elo", strconv.Itoa(p.Elo))
	}
	if p.FideID > 0 {
		writeTag(sb, side+"FideId", strconv.Itoa(p.FideID))
	}
	if p.Country != "" {
		writeTag(sb, side+"Federation", p.Country)
	}
}

// pgnName uses the "Last, First" convention of the PGN standard.
func pgnName(p Player) string {
	if p.LastName == "" {
		return orUnknown(p.FirstName)
	}
	if p.FirstName == "" {
		return p.LastName
	}
	return p.LastName + ", " + p.FirstName
}

func pgnDate(info GameInfo) string {
	if info.Date.IsZero() {
		return "????.??.??"
	}
	return info.Date.Format("2006.01.02")
}

func pgnRound(info GameInfo) string {
	if info.Round <= 0 {
		return "?"
	}
	if info.SubRound > 0 {
		return fmt.Sprintf("%d.%d", info.Round, info.SubRound)
	}
	return strconv.Itoa(info.Round)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "?"
	}
	return s
}
