/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tornelo/scoresheet/appmode"
	"github.com/tornelo/scoresheet/chessgame"
)

func testPairings() []chessgame.GameInfo {
	return []chessgame.GameInfo{
		{
			Name: "Spring Open", Round: 3, SubRound: 1,
			Players: []chessgame.Player{
				{Colour: chessgame.White, FirstName: "Magnus", LastName: "Carlsen"},
				{Colour: chessgame.Black, FirstName: "Judit", LastName: "Polgar"},
			},
		},
		{
			Name: "Spring Open", Round: 3, SubRound: 2,
			Players: []chessgame.Player{
				{Colour: chessgame.White, FirstName: "Hikaru", LastName: "Nakamura"},
				{Colour: chessgame.Black, FirstName: "Fabiano", LastName: "Caruana"},
			},
		},
	}
}

func TestSessionRecordsGame(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(&out)
	if err := sess.app.LoadPairings(testPairings()); err != nil {
		t.Fatalf("LoadPairings: %v", err)
	}

	input := strings.Join([]string{
		"select 2",
		"start",
		"e2e4",
		"e7-e5",
		"draw",
		"skip",
		"g8f6",
		"end",
		"winner black",
		"sign Chief Arbiter",
		"quit",
		"e2e4",
	}, "\n")
	if err := sess.run(strings.NewReader(input)); err != nil {
		t.Fatalf("run: %v", err)
	}

	rd, ok := sess.app.State().(appmode.ResultDisplayState)
	if !ok {
		t.Fatalf("expected result display, got %v\n%v", sess.app.Mode(), out.String())
	}
	if rd.Pairing.SubRound != 2 {
		t.Errorf("expected board 2, got %v", rd.Pairing.SubRound)
	}
	if rd.Winner == nil || rd.Winner.LastName != "Caruana" {
		t.Errorf("expected Caruana to win, got %+v", rd.Winner)
	}
	if rd.Signature.Name != "Chief Arbiter" || rd.Signature.SignedAt.IsZero() {
		t.Errorf("unexpected signature %+v", rd.Signature)
	}
	for _, want := range []string{"{draw offered}", "--", "Nf6", "0-1"} {
		if !strings.Contains(rd.Pgn, want) {
			t.Errorf("pgn missing %q:\n%v", want, rd.Pgn)
		}
	}
	if strings.Contains(out.String(), "error:") {
		t.Errorf("unexpected error output:\n%v", out.String())
	}
}

func TestSessionReportsBadInput(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(&out)
	if err := sess.app.LoadPairings(testPairings()); err != nil {
		t.Fatalf("LoadPairings: %v", err)
	}

	input := "e2e4\nselect x\nselect 1\nstart\ne2e5\nwinner nobody\n"
	if err := sess.run(strings.NewReader(input)); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	for _, want := range []string{"not recording a game", "select needs a board number",
		"illegal move", "winner must be"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%v", want, got)
		}
	}
	rs, ok := sess.app.Recording()
	if !ok {
		t.Fatalf("expected to still be recording")
	}
	if len(rs.MoveHistory()) != 0 {
		t.Errorf("expected empty history, got %+v", rs.MoveHistory())
	}
}

func TestRenderPairings(t *testing.T) {
	got := renderPairings(testPairings())
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, blank, header and 2 rows, got:\n%v", got)
	}
	if !strings.HasPrefix(lines[0], "Spring Open Round 3") {
		t.Errorf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[4], "2.") || !strings.Contains(lines[4], "Hikaru Nakamura") {
		t.Errorf("unexpected row %q", lines[4])
	}
}

func TestRenderMoves(t *testing.T) {
	white := chessgame.Ply{Player: chessgame.White, San: "e4", DrawOffered: true}
	black := chessgame.Ply{Player: chessgame.Black, San: "c5"}
	got := renderMoves([]chessgame.Move{{White: &white, Black: &black}, {White: &white}})
	if !strings.Contains(got, "1. e4 (=)") || !strings.Contains(got, "c5") {
		t.Errorf("unexpected moves output:\n%v", got)
	}
	if strings.Count(got, "\n") != 2 {
		t.Errorf("expected 2 rows:\n%v", got)
	}
}

func TestSessionFlipDrawsFromBlack(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(&out)
	if err := sess.app.LoadPairings(testPairings()); err != nil {
		t.Fatalf("LoadPairings: %v", err)
	}
	if err := sess.run(strings.NewReader("select 1\nstart\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	out.Reset()

	if err := sess.run(strings.NewReader("flip\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "   h g f e d c b a\n1 ") {
		t.Errorf("expected the board from black's side:\n%v", got)
	}
	if strings.Contains(got, "   a b c d e f g h") {
		t.Errorf("flipped board still drawn from white's side:\n%v", got)
	}
}
