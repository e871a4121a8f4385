/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chessgame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNoMoves       = errors.New("no moves to undo")
	ErrPlyIndex      = errors.New("ply index out of range")
	ErrPgnGeneration = errors.New("unable to generate pgn")
)

// Board records a game ply by ply on top of the rules engine. Every ply keeps
// the FEN it was played from, so undo never has to replay the history.
type Board struct {
	startingFen string
	position    *chess.Position
	history     []Ply
}

// NewBoard returns a board set up in the standard starting position.
func NewBoard() *Board {
	pos := chess.NewGame().Position()

	return &Board{
		startingFen: pos.String(),
		position:    pos,
	}
}

// NewBoardFromFEN returns a board set up from an arbitrary position.
func NewBoardFromFEN(fen string) (*Board, error) {
	pos, err := positionFromFEN(fen)
	if err != nil {
		return nil, err
	}

	return &Board{
		startingFen: pos.String(),
		position:    pos,
	}, nil
}

func (b *Board) CurrentPlayer() PlayerColour {
	return colourOf(b.position.Turn())
}

func (b *Board) Fen() string {
	return b.position.String()
}

func (b *Board) StartingFen() string {
	return b.startingFen
}

// History returns a copy of the recorded plies, oldest first.
func (b *Board) History() []Ply {
	ret := make([]Ply, len(b.history))
	copy(ret, b.history)
	return ret
}

// String draws the current position as text from White's side.
func (b *Board) String() string {
	return b.Draw(false)
}

// Draw draws the current position with rank and file labels. fromBlack puts
// Black's pieces at the bottom.
func (b *Board) Draw(fromBlack bool) string {
	board := b.position.Board()
	files := "abcdefgh"
	ranks := []int{7, 6, 5, 4, 3, 2, 1, 0}
	if fromBlack {
		files = "hgfedcba"
		ranks = []int{0, 1, 2, 3, 4, 5, 6, 7}
	}

	var sb strings.Builder
	sb.WriteString("  ")
	for _, f := range files {
		sb.WriteString(" " + string(f))
	}
	sb.WriteString("\n")
	for _, r := range ranks {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for _, f := range files {
			piece := board.Piece(chess.Square(r*8 + int(f-'a')))
			if piece == chess.NoPiece {
				sb.WriteString(" -")
			} else {
				sb.WriteString(" " + piece.String())
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// IsPawnPromotion reports whether the move takes a pawn to its last rank.
func (b *Board) IsPawnPromotion(squares MoveSquares) bool {
	from, to, err := parseSquares(squares)
	if err != nil {
		return false
	}
	piece := b.position.Board().Piece(from)
	if piece.Type() != chess.Pawn {
		return false
	}
	if piece.Color() == chess.White {
		return to.Rank() == chess.Rank8
	}
	return to.Rank() == chess.Rank1
}

// IsOtherPlayersPiece reports whether the piece on the from square belongs
// to the player who is not on turn.
func (b *Board) IsOtherPlayersPiece(squares MoveSquares) bool {
	from, _, err := parseSquares(squares)
	if err != nil {
		return false
	}
	piece := b.position.Board().Piece(from)
	if piece == chess.NoPiece {
		return false
	}
	return piece.Color() != b.position.Turn()
}

// Move commits a move for the player on turn. Illegal moves leave the board
// unchanged and return ErrIllegalMove.
func (b *Board) Move(squares MoveSquares, promotion *PieceType) error {
	ply, next, err := playMove(b.position, squares, promotion)
	if err != nil {
		return err
	}
	b.history = append(b.history, ply)
	b.position = next

	return nil
}

// SkipTurn records an empty ply and passes the turn to the other player.
func (b *Board) SkipTurn() error {
	next, err := skippedPosition(b.position)
	if err != nil {
		return err
	}
	b.history = append(b.history, skipPly(b.position))
	b.position = next

	return nil
}

// SkipTurnAndProcessMove skips the current player's turn and then plays the
// move for the opponent. Both plies are recorded or neither is.
func (b *Board) SkipTurnAndProcessMove(squares MoveSquares,
	promotion *PieceType) error {

	skipped, err := skippedPosition(b.position)
	if err != nil {
		return err
	}
	ply, next, err := playMove(skipped, squares, promotion)
	if err != nil {
		return err
	}
	b.history = append(b.history, skipPly(b.position), ply)
	b.position = next

	return nil
}

// UndoLastMove removes the most recent ply, whether a move or a skip.
func (b *Board) UndoLastMove() error {
	if len(b.history) == 0 {
		return ErrNoMoves
	}
	last := b.history[len(b.history)-1]
	pos, err := positionFromFEN(last.StartingFen)
	if err != nil {
		return err
	}
	b.history = b.history[:len(b.history)-1]
	b.position = pos

	return nil
}

// ToggleDraw flips the draw offer flag on the ply at plyIndex.
func (b *Board) ToggleDraw(plyIndex int) error {
	if plyIndex < 0 || plyIndex >= len(b.history) {
		return fmt.Errorf("%w: %v", ErrPlyIndex, plyIndex)
	}
	b.history[plyIndex].DrawOffered = !b.history[plyIndex].DrawOffered

	return nil
}

// GeneratePgn renders the recorded game for the given pairing. A nil winner
// records a draw.
func (b *Board) GeneratePgn(info GameInfo, winner *PlayerColour) (string, error) {
	return GeneratePgn(info, b.startingFen, b.history, winner)
}

func playMove(pos *chess.Position, squares MoveSquares,
	promotion *PieceType) (Ply, *chess.Position, error) {

	m, err := findMove(pos, squares, promotion)
	if err != nil {
		return Ply{}, nil, err
	}
	ply := Ply{
		Player:      colourOf(pos.Turn()),
		Type:        MovePly,
		Squares:     squares,
		San:         chess.AlgebraicNotation{}.Encode(pos, m),
		StartingFen: pos.String(),
	}
	if m.Promo() != chess.NoPieceType {
		p := fromChessPieceType(m.Promo())
		ply.Promotion = &p
	}

	return ply, pos.Update(m), nil
}

// findMove looks the move up among the legal moves of pos. A Pawn promotion
// means no promotion at all.
func findMove(pos *chess.Position, squares MoveSquares,
	promotion *PieceType) (*chess.Move, error) {

	from, to, err := parseSquares(squares)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	promo := chess.NoPieceType
	if promotion != nil {
		promo = toChessPieceType(*promotion)
	}
	for _, m := range pos.ValidMoves() {
		if m.S1() == from && m.S2() == to && m.Promo() == promo {
			return m, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrIllegalMove, squares)
}

func skipPly(pos *chess.Position) Ply {
	return Ply{
		Player:      colourOf(pos.Turn()),
		Type:        SkipPly,
		San:         "--",
		StartingFen: pos.String(),
	}
}

// skippedPosition hands the move to the other side. The en passant target
// only exists for the very next ply so it is cleared. Skipping out of check
// is illegal.
func skippedPosition(pos *chess.Position) (*chess.Position, error) {
	fields := strings.Fields(pos.String())
	if len(fields) != 6 {
		return nil, fmt.Errorf("unexpected fen %q", pos.String())
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
		fullMove, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("unexpected fen %q: %w", pos.String(), err)
		}
		fields[5] = strconv.Itoa(fullMove + 1)
	}
	fields[3] = "-"

	skipped, err := positionFromFEN(strings.Join(fields, " "))
	if err != nil {
		return nil, err
	}
	// a player in check cannot pass; the opponent would take the king
	board := skipped.Board()
	for _, m := range skipped.ValidMoves() {
		if board.Piece(m.S2()).Type() == chess.King {
			return nil, fmt.Errorf("%w: %v is in check and cannot skip",
				ErrIllegalMove, colourOf(pos.Turn()))
		}
	}

	return skipped, nil
}

func positionFromFEN(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", fen, err)
	}
	return chess.NewGame(opt).Position(), nil
}

func parseSquares(squares MoveSquares) (chess.Square, chess.Square, error) {
	from, err := parseSquare(squares.From)
	if err != nil {
		return chess.NoSquare, chess.NoSquare, err
	}
	to, err := parseSquare(squares.To)
	if err != nil {
		return chess.NoSquare, chess.NoSquare, err
	}
	return from, to, nil
}

func parseSquare(s string) (chess.Square, error) {
	if !validSquareName(s) {
		return chess.NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return chess.Square(int(s[1]-'1')*8 + int(s[0]-'a')), nil
}

func colourOf(c chess.Color) PlayerColour {
	if c == chess.Black {
		return Black
	}
	return White
}

func toChessPieceType(p PieceType) chess.PieceType {
	switch p {
	case Knight:
		return chess.Knight
	case Bishop:
		return chess.Bishop
	case Rook:
		return chess.Rook
	case Queen:
		return chess.Queen
	case King:
		return chess.King
	}
	return chess.NoPieceType
}

func fromChessPieceType(p chess.PieceType) PieceType {
	switch p {
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return Pawn
}
