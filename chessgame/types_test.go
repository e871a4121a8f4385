/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chessgame

import (
	"testing"
)

func TestParseMoveSquares(t *testing.T) {
	cases := []struct {
		in      string
		want    MoveSquares
		wantErr bool
	}{
		{in: "e2e4", want: MoveSquares{From: "e2", To: "e4"}},
		{in: "E2-E4", want: MoveSquares{From: "e2", To: "e4"}},
		{in: " g8 f6 ", want: MoveSquares{From: "g8", To: "f6"}},
		{in: "e2e9", wantErr: true},
		{in: "i2e4", wantErr: true},
		{in: "e2", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, c := range cases {
		got, err := ParseMoveSquares(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseMoveSquares(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMoveSquares(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseMoveSquares(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestParsePieceType(t *testing.T) {
	cases := map[string]PieceType{
		"q":      Queen,
		"Queen":  Queen,
		"R":      Rook,
		"bishop": Bishop,
		"n":      Knight,
		"pawn":   Pawn,
	}
	for in, want := range cases {
		got, err := ParsePieceType(in)
		if err != nil {
			t.Errorf("ParsePieceType(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePieceType(%q) = %v; want %v", in, got, want)
		}
	}
	if _, err := ParsePieceType("x"); err == nil {
		t.Errorf("ParsePieceType(x): expected error")
	}
}

func TestPromotionPieces(t *testing.T) {
	for _, p := range []PieceType{Queen, Rook, Bishop, Knight, Pawn} {
		if !IsPromotionPiece(p) {
			t.Errorf("%v should be a promotion choice", p)
		}
	}
	if IsPromotionPiece(King) {
		t.Errorf("King should not be a promotion choice")
	}
}

func TestPlayerFullName(t *testing.T) {
	p := Player{FirstName: "Judit", LastName: "Polgar"}
	if p.FullName() != "Judit Polgar" {
		t.Errorf("FullName() = %q", p.FullName())
	}
	info := GameInfo{Players: []Player{{Colour: Black, LastName: "Polgar"}}}
	if _, ok := info.Player(White); ok {
		t.Errorf("expected no white player")
	}
	if got, ok := info.Player(Black); !ok || got.LastName != "Polgar" {
		t.Errorf("Player(Black) = %v, %v", got, ok)
	}
}
