/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chessgame

import (
	"fmt"
	"strings"
	"time"
)

type PlayerColour int

const (
	White PlayerColour = iota
	Black
)

func (c PlayerColour) String() string {
	if c == White {
		return "White"
	} else if c == Black {
		return "Black"
	} else {
		return "?"
	}
}

// Opponent returns the other colour.
func (c PlayerColour) Opponent() PlayerColour {
	if c == White {
		return Black
	}
	return White
}

// ParseColour accepts "white"/"w" and "black"/"b" in any case.
func ParseColour(s string) (PlayerColour, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown colour %q", s)
}

// Player is the reference data for one side of a pairing.
type Player struct {
	Colour    PlayerColour
	FirstName string
	LastName  string
	Elo       int
	Country   string
	FideID    int
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// GameInfo describes a single pairing on a board for a given round. It is
// read from the tournament feed and never modified while a game is recorded.
type GameInfo struct {
	Name     string
	Site     string
	Date     time.Time
	Round    int
	SubRound int
	Result   string
	Players  []Player
	Pgn      string
}

// Player returns the participant playing the given colour.
func (g GameInfo) Player(c PlayerColour) (Player, bool) {
	for _, p := range g.Players {
		if p.Colour == c {
			return p, true
		}
	}
	return Player{}, false
}

type PieceType int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceNames = map[PieceType]string{
	Pawn:   "Pawn",
	Knight: "Knight",
	Bishop: "Bishop",
	Rook:   "Rook",
	Queen:  "Queen",
	King:   "King",
}

func (p PieceType) String() string {
	if name, ok := pieceNames[p]; ok {
		return name
	}
	return "?"
}

// PromotionPieces is the fixed set offered when a pawn reaches the last rank.
var PromotionPieces = []PieceType{Queen, Rook, Bishop, Knight, Pawn}

func IsPromotionPiece(p PieceType) bool {
	for _, candidate := range PromotionPieces {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePieceType accepts a piece name or its SAN letter ("q", "queen", "N").
// Pawns are "p" or "pawn".
func ParsePieceType(s string) (PieceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "pawn":
		return Pawn, nil
	case "n", "knight":
		return Knight, nil
	case "b", "bishop":
		return Bishop, nil
	case "r", "rook":
		return Rook, nil
	case "q", "queen":
		return Queen, nil
	case "k", "king":
		return King, nil
	}
	return Pawn, fmt.Errorf("unknown piece %q", s)
}

// MoveSquares is the from/to pair produced by a drag on the board, in
// algebraic square names such as "e2".
type MoveSquares struct {
	From string
	To   string
}

func (m MoveSquares) String() string {
	return m.From + m.To
}

// ParseMoveSquares accepts "e2e4", "e2-e4" or "e2 e4".
func ParseMoveSquares(s string) (MoveSquares, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "", " ", "").Replace(s)
	if len(s) != 4 {
		return MoveSquares{}, fmt.Errorf("malformed move %q", s)
	}
	ms := MoveSquares{From: s[0:2], To: s[2:4]}
	if !validSquareName(ms.From) || !validSquareName(ms.To) {
		return MoveSquares{}, fmt.Errorf("malformed move %q", s)
	}

	return ms, nil
}

func validSquareName(s string) bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

type PlyType int

const (
	MovePly PlyType = iota
	SkipPly
)

// Ply is a single half-move. Plies are appended to a game's history and
// only the most recent one may be removed.
type Ply struct {
	Player      PlayerColour
	Type        PlyType
	Squares     MoveSquares
	Promotion   *PieceType
	San         string
	StartingFen string
	DrawOffered bool
}

// Move is one row of a scoresheet. Either side may be absent.
type Move struct {
	White *Ply
	Black *Ply
}
