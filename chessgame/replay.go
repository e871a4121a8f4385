/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chessgame

import (
	"fmt"
	"io"

	"github.com/notnil/chess"
)

// ReplayPGN plays a recorded game onto a fresh Board so its plies can be
// shown as scoresheet rows. Null moves are not understood by the PGN
// decoder, so games containing skips cannot be replayed.
func ReplayPGN(r io.Reader) (*Board, error) {
	opt, err := chess.PGN(r)
	if err != nil {
		return nil, fmt.Errorf("chessgame.replay: unable to decode pgn: %w", err)
	}
	game := chess.NewGame(opt)

	board, err := NewBoardFromFEN(game.Positions()[0].String())
	if err != nil {
		return nil, err
	}
	for i, m := range game.Moves() {
		squares := MoveSquares{From: m.S1().String(), To: m.S2().String()}
		var promotion *PieceType
		if m.Promo() != chess.NoPieceType {
			p := fromChessPieceType(m.Promo())
			promotion = &p
		}
		if err := board.Move(squares, promotion); err != nil {
			return nil, fmt.Errorf("chessgame.replay: ply %d: %w", i+1, err)
		}
	}

	return board, nil
}
