/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package appmode

import (
	"fmt"
	"log"

	"github.com/tornelo/scoresheet/chessgame"
)

// withRecording applies fn to the recording state. Outside of recording, or
// without a board, the action is a no-op. fn returns the state to install.
func (a *App) withRecording(fn func(rs *RecordingState) (State, error)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	rs, ok := a.state.(RecordingState)
	if !ok || rs.Board == nil {
		return nil
	}
	next, err := fn(&rs)
	if next != nil {
		a.state = next
	}
	if err != nil {
		a.reporter.ReportError(err)
	}

	return err
}

// Move handles a drag on the board. Promotions wait for SelectPromotion,
// everything else is committed at once.
func (a *App) Move(squares chessgame.MoveSquares) error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupNone {
			return nil, nil
		}
		if rs.Board.IsPawnPromotion(squares) {
			pending := squares
			rs.PendingMove = &pending
			rs.Popup = PopupPromotion
			return *rs, nil
		}

		return nil, commitMove(rs.Board, squares, nil)
	})
}

// SelectPromotion resolves the promotion popup and plays the pending move.
func (a *App) SelectPromotion(piece chessgame.PieceType) error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupPromotion || rs.PendingMove == nil {
			return nil, nil
		}
		if !chessgame.IsPromotionPiece(piece) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPromotion, piece)
		}
		squares := *rs.PendingMove
		rs.PendingMove = nil
		rs.Popup = PopupNone

		return *rs, commitMove(rs.Board, squares, &piece)
	})
}

// commitMove plays the move, first skipping the turn when the piece belongs
// to the player who is not on move.
func commitMove(board Recorder, squares chessgame.MoveSquares,
	promotion *chessgame.PieceType) error {

	if board.IsOtherPlayersPiece(squares) {
		return board.SkipTurnAndProcessMove(squares, promotion)
	}
	return board.Move(squares, promotion)
}

func (a *App) SkipTurn() error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupNone {
			return nil, nil
		}
		return nil, rs.Board.SkipTurn()
	})
}

func (a *App) UndoLastMove() error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupNone {
			return nil, nil
		}
		return nil, rs.Board.UndoLastMove()
	})
}

// ToggleDraw flips the draw offer flag of the ply at plyIndex.
func (a *App) ToggleDraw(plyIndex int) error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupNone {
			return nil, nil
		}
		return nil, rs.Board.ToggleDraw(plyIndex)
	})
}

// ToggleDrawLatest flips the draw offer flag of the most recent ply.
func (a *App) ToggleDrawLatest() error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupNone {
			return nil, nil
		}
		n := len(rs.Board.History())
		if n == 0 {
			return nil, nil
		}
		return nil, rs.Board.ToggleDraw(n - 1)
	})
}

func (a *App) FlipBoard() error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		rs.Flipped = !rs.Flipped
		return *rs, nil
	})
}

// OpenEndGame shows the winner selection popup.
func (a *App) OpenEndGame() error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupNone {
			return nil, nil
		}
		rs.Popup = PopupEndGame
		return *rs, nil
	})
}

// SelectWinner generates the PGN for the chosen result and, only if that
// succeeds, asks for signatures. A nil winner is a draw.
func (a *App) SelectWinner(winner *chessgame.PlayerColour) error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupEndGame {
			return nil, nil
		}
		var player *chessgame.Player
		if winner != nil {
			p, ok := rs.Pairing.Player(*winner)
			if !ok {
				return nil, fmt.Errorf("%w: pairing has no %v player",
					chessgame.ErrPgnGeneration, *winner)
			}
			player = &p
		}
		pgn, err := rs.Board.GeneratePgn(rs.Pairing, winner)
		if err != nil {
			return nil, err
		}
		rs.Selection = &WinnerSelection{Winner: player, Pgn: pgn}
		rs.Popup = PopupSignature

		return *rs, nil
	})
}

// ConfirmSignature ends the recording and shows the result.
func (a *App) ConfirmSignature(sig Signature) error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		if rs.Popup != PopupSignature || rs.Selection == nil {
			return nil, nil
		}
		if sig.SignedAt.IsZero() {
			sig.SignedAt = a.now()
		}
		log.Printf("appmode.confirm: session %v result %v signed by %v",
			rs.SessionID, resultText(rs.Selection.Winner), sig.Name)

		return ResultDisplayState{
			SessionID: rs.SessionID,
			Pairing:   rs.Pairing,
			Winner:    rs.Selection.Winner,
			Signature: sig,
			Pgn:       rs.Selection.Pgn,
			pairings:  rs.pairings,
		}, nil
	})
}

// Cancel closes the signature or end game popup, going back one step. The
// promotion popup cannot be cancelled; it waits for a piece.
func (a *App) Cancel() error {
	return a.withRecording(func(rs *RecordingState) (State, error) {
		switch rs.Popup {
		case PopupSignature:
			rs.Selection = nil
			rs.Popup = PopupEndGame
		case PopupEndGame:
			rs.Popup = PopupNone
		default:
			return nil, nil
		}
		return *rs, nil
	})
}

func resultText(winner *chessgame.Player) string {
	if winner == nil {
		return "draw"
	}
	return winner.FullName() + " won"
}
