/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package chessgame

// Moves pairs a ply history (oldest first) into scoresheet rows. A white ply
// opens a new row and the black ply that follows closes it. A black ply with
// no open row gets a row of its own with the white side absent, so malformed
// histories are still displayed in full.
//
// The result is always rebuilt from scratch and shares no memory with plies.
func Moves(plies []Ply) []Move {
	moves := make([]Move, 0, (len(plies)+1)/2)
	for i := range plies {
		ply := plies[i]
		if ply.Player == White {
			moves = append(moves, Move{White: &ply})
			continue
		}

		last := len(moves) - 1
		if last < 0 || moves[last].Black != nil {
			moves = append(moves, Move{Black: &ply})
			continue
		}
		moves[last].Black = &ply
	}

	return moves
}
