/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chessgame

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testPairing() GameInfo {
	return GameInfo{
		Name:     "Spring Open",
		Site:     "Melbourne",
		Date:     time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		Round:    3,
		SubRound: 7,
		Players: []Player{
			{Colour: White, FirstName: "Magnus", LastName: "Carlsen", Elo: 2830,
				Country: "NOR", FideID: 1503014},
			{Colour: Black, FirstName: "Hikaru", LastName: "Nakamura", Elo: 2790},
		},
	}
}

func TestGeneratePgn(t *testing.T) {
	b := NewBoard()
	for _, m := range []string{"e2e4", "e7e5"} {
		if err := b.Move(sq(t, m), nil); err != nil {
			t.Fatalf("Move(%v): %v", m, err)
		}
	}
	if err := b.ToggleDraw(1); err != nil {
		t.Fatalf("ToggleDraw: %v", err)
	}
	if err := b.SkipTurnAndProcessMove(sq(t, "g8f6"), nil); err != nil {
		t.Fatalf("SkipTurnAndProcessMove: %v", err)
	}

	white := White
	pgn, err := b.GeneratePgn(testPairing(), &white)
	if err != nil {
		t.Fatalf("GeneratePgn: %v", err)
	}

	wantLines := []string{
		`[Event "Spring Open"]`,
		`[Site "Melbourne"]`,
		`[Date "2025.04.12"]`,
		`[Round "3.7"]`,
		`[White "Carlsen, Magnus"]`,
		`[Black "Nakamura, Hikaru"]`,
		`[Result "1-0"]`,
		`[WhiteElo "2830"]`,
		`[WhiteFideId "1503014"]`,
		`[WhiteFederation "NOR"]`,
		`[BlackElo "2790"]`,
		`1. e4 e5 {draw offered} 2. -- Nf6 1-0`,
	}
	for _, want := range wantLines {
		if !strings.Contains(pgn, want+"\n") {
			t.Errorf("pgn missing line %q:\n%v", want, pgn)
		}
	}
	if strings.Contains(pgn, "[FEN ") {
		t.Errorf("standard start should not carry a FEN tag:\n%v", pgn)
	}
}

func TestGeneratePgnResults(t *testing.T) {
	white, black := White, Black
	cases := []struct {
		name   string
		winner *PlayerColour
		want   string
	}{
		{"white wins", &white, ResultWhiteWins},
		{"black wins", &black, ResultBlackWins},
		{"draw", nil, ResultDraw},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pgn, err := GeneratePgn(testPairing(), "", nil, c.winner)
			if err != nil {
				t.Fatalf("GeneratePgn: %v", err)
			}
			if !strings.Contains(pgn, `[Result "`+c.want+`"]`) {
				t.Errorf("missing result tag %v:\n%v", c.want, pgn)
			}
			if !strings.HasSuffix(pgn, "\n"+c.want+"\n") {
				t.Errorf("movetext should end with %v:\n%v", c.want, pgn)
			}
		})
	}
}

func TestGeneratePgnBlackStarts(t *testing.T) {
	b, err := NewBoardFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatalf("NewBoardFromFEN: %v", err)
	}
	if err := b.Move(sq(t, "c7c5"), nil); err != nil {
		t.Fatalf("Move: %v", err)
	}
	pgn, err := b.GeneratePgn(testPairing(), nil)
	if err != nil {
		t.Fatalf("GeneratePgn: %v", err)
	}
	if !strings.Contains(pgn, "\n1... c5 1/2-1/2\n") {
		t.Errorf("expected black move number:\n%v", pgn)
	}
	if !strings.Contains(pgn, `[SetUp "1"]`) || !strings.Contains(pgn, `[FEN "`) {
		t.Errorf("expected setup tags:\n%v", pgn)
	}
}

func TestGeneratePgnFailures(t *testing.T) {
	noBlack := testPairing()
	noBlack.Players = noBlack.Players[:1]
	if _, err := GeneratePgn(noBlack, "", nil, nil); !errors.Is(err, ErrPgnGeneration) {
		t.Errorf("missing player: got %v; want ErrPgnGeneration", err)
	}

	b := NewBoard()
	if err := b.Move(sq(t, "e2e4"), nil); err != nil {
		t.Fatalf("Move: %v", err)
	}
	plies := b.History()
	plies[0].San = "e3"
	if _, err := GeneratePgn(testPairing(), b.StartingFen(), plies, nil); !errors.Is(err, ErrPgnGeneration) {
		t.Errorf("tampered ply: got %v; want ErrPgnGeneration", err)
	}
}

func TestWrapTokens(t *testing.T) {
	var tokens []string
	for i := 0; i < 40; i++ {
		tokens = append(tokens, "Nf3")
	}
	out := wrapTokens(tokens, 20)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Count(out, "Nf3") != 40 {
		t.Errorf("tokens lost while wrapping")
	}
}
