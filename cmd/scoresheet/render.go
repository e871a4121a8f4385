/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"strings"

	"github.com/tornelo/scoresheet/appmode"
	"github.com/tornelo/scoresheet/chessgame"
)

func renderState(state appmode.State) string {
	switch s := state.(type) {
	case appmode.EnterPgnState:
		return "No pairings loaded.\n"
	case appmode.PairingSelectionState:
		return renderPairings(s.Pairings) +
			"\nRun 'select <board>' to choose a game\n"
	case appmode.TablePairingState:
		return renderTableCard(s.Pairing) +
			"\nRun 'start' to record this game or 'back' to choose another\n"
	case appmode.RecordingState:
		return renderRecording(s)
	case appmode.ResultDisplayState:
		return renderResult(s)
	}
	return ""
}

// renderPairings formats pairings into an aligned table.
func renderPairings(pairings []chessgame.GameInfo) string {
	type row struct{ board, white, black, result string }
	var rows []row
	for idx, p := range pairings {
		board := p.SubRound
		if board == 0 {
			board = idx + 1
		}
		rows = append(rows, row{
			board:  fmt.Sprintf("%d.", board),
			white:  playerText(p, chessgame.White),
			black:  playerText(p, chessgame.Black),
			result: p.Result,
		})
	}

	maxB, maxW, maxBl := len("Board"), len("White"), len("Black")
	for _, r := range rows {
		maxB = max(maxB, len(r.board))
		maxW = max(maxW, len(r.white))
		maxBl = max(maxBl, len(r.black))
	}

	var sb strings.Builder
	if len(pairings) > 0 && pairings[0].Name != "" {
		sb.WriteString(fmt.Sprintf("%v Round %v\n\n", pairings[0].Name,
			pairings[0].Round))
	}
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxB, "Board", maxW,
		"White", maxBl, "Black", "Result"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxB, r.board,
			maxW, r.white, maxBl, r.black, r.result))
	}

	return sb.String()
}

func playerText(info chessgame.GameInfo, c chessgame.PlayerColour) string {
	p, ok := info.Player(c)
	if !ok {
		return "?"
	}
	if p.Elo > 0 {
		return fmt.Sprintf("%v (%d)", p.FullName(), p.Elo)
	}
	return p.FullName()
}

func renderTableCard(info chessgame.GameInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v\n", info.Name))
	sb.WriteString(fmt.Sprintf("Round %v Board %v", info.Round, info.SubRound))
	if !info.Date.IsZero() {
		sb.WriteString(fmt.Sprintf("  %v", info.Date.Format("2006-01-02")))
	}
	sb.WriteString("\n\n")
	for _, c := range []chessgame.PlayerColour{chessgame.White, chessgame.Black} {
		sb.WriteString(fmt.Sprintf("  %-5v  %v", c, playerText(info, c)))
		if p, ok := info.Player(c); ok && p.Country != "" {
			sb.WriteString(fmt.Sprintf(" [%v]", p.Country))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderRecording(rs appmode.RecordingState) string {
	var sb strings.Builder
	sb.WriteString(rs.Diagram())
	sb.WriteString(renderMoves(rs.Moves()))
	sb.WriteString(fmt.Sprintf("%v to move\n", rs.CurrentPlayer()))

	switch rs.Popup {
	case appmode.PopupPromotion:
		sb.WriteString(fmt.Sprintf("Promote %v to? (promote q|r|b|n|p)\n",
			rs.PendingMove))
	case appmode.PopupEndGame:
		sb.WriteString("Who won? (winner white|black|draw, cancel)\n")
	case appmode.PopupSignature:
		sb.WriteString(fmt.Sprintf("Result: %v. Sign to confirm (sign <name>, cancel)\n",
			winnerText(rs.Selection.Winner)))
	}

	return sb.String()
}

// renderMoves writes one scoresheet row per move; "(=)" marks a draw offer.
func renderMoves(moves []chessgame.Move) string {
	var sb strings.Builder
	for idx, m := range moves {
		sb.WriteString(fmt.Sprintf("%3d. %-10s %-10s\n", idx+1, plyText(m.White),
			plyText(m.Black)))
	}
	return sb.String()
}

func plyText(p *chessgame.Ply) string {
	if p == nil {
		return ""
	}
	if p.DrawOffered {
		return p.San + " (=)"
	}
	return p.San
}

func renderResult(rd appmode.ResultDisplayState) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Result: %v\n", winnerText(rd.Winner)))
	sb.WriteString(fmt.Sprintf("Signed: %v\n\n", rd.Signature))
	sb.WriteString(rd.Pgn)
	sb.WriteString("\nRun 'next' to record another board or 'quit' to exit\n")

	return sb.String()
}

func winnerText(winner *chessgame.Player) string {
	if winner == nil {
		return "draw"
	}
	return winner.FullName() + " wins"
}
