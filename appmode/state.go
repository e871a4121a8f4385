/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package appmode

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tornelo/scoresheet/chessgame"
)

type Mode int

const (
	ModeEnterPgn Mode = iota
	ModePairingSelection
	ModeTablePairing
	ModeRecording
	ModeResultDisplay
)

func (m Mode) String() string {
	switch m {
	case ModeEnterPgn:
		return "enter-pgn"
	case ModePairingSelection:
		return "pairing-selection"
	case ModeTablePairing:
		return "table-pairing"
	case ModeRecording:
		return "recording"
	case ModeResultDisplay:
		return "result-display"
	}
	return "?"
}

// State is one of EnterPgnState, PairingSelectionState, TablePairingState,
// RecordingState or ResultDisplayState.
type State interface {
	Mode() Mode
}

type EnterPgnState struct{}

func (EnterPgnState) Mode() Mode { return ModeEnterPgn }

type PairingSelectionState struct {
	Pairings []chessgame.GameInfo
}

func (PairingSelectionState) Mode() Mode { return ModePairingSelection }

type TablePairingState struct {
	Pairing chessgame.GameInfo

	pairings []chessgame.GameInfo
}

func (TablePairingState) Mode() Mode { return ModeTablePairing }

// Popup is the modal currently shown over the recording board.
type Popup int

const (
	PopupNone Popup = iota
	PopupPromotion
	PopupEndGame
	PopupSignature
)

func (p Popup) String() string {
	switch p {
	case PopupNone:
		return "none"
	case PopupPromotion:
		return "promotion"
	case PopupEndGame:
		return "end-game"
	case PopupSignature:
		return "signature"
	}
	return "?"
}

// WinnerSelection is what the operator chose in the end game popup together
// with the PGN generated for it. A nil Winner is a draw.
type WinnerSelection struct {
	Winner *chessgame.Player
	Pgn    string
}

// RecordingState is the game being recorded. Board is the live rules engine;
// outside of App use MoveHistory, CurrentPlayer and Diagram, which read the
// copy taken by App.State.
type RecordingState struct {
	SessionID uuid.UUID
	Pairing   chessgame.GameInfo
	Board     Recorder
	Popup     Popup
	Flipped   bool

	// PendingMove is set while the promotion popup waits for a piece.
	PendingMove *chessgame.MoveSquares
	// Selection is set only while the signature popup is shown.
	Selection *WinnerSelection

	pairings []chessgame.GameInfo
	snap     *boardSnapshot
}

type boardSnapshot struct {
	history []chessgame.Ply
	current chessgame.PlayerColour
	diagram string
}

func (RecordingState) Mode() Mode { return ModeRecording }

// MoveHistory returns the recorded plies, oldest first.
func (r RecordingState) MoveHistory() []chessgame.Ply {
	if r.snap != nil {
		ret := make([]chessgame.Ply, len(r.snap.history))
		copy(ret, r.snap.history)
		return ret
	}
	if r.Board == nil {
		return nil
	}
	return r.Board.History()
}

func (r RecordingState) CurrentPlayer() chessgame.PlayerColour {
	if r.snap != nil {
		return r.snap.current
	}
	if r.Board == nil {
		return chessgame.White
	}
	return r.Board.CurrentPlayer()
}

// Diagram draws the board, from Black's side when Flipped.
func (r RecordingState) Diagram() string {
	if r.snap != nil {
		return r.snap.diagram
	}
	if r.Board == nil {
		return ""
	}
	return r.Board.Draw(r.Flipped)
}

// Moves pairs the move history into scoresheet rows.
func (r RecordingState) Moves() []chessgame.Move {
	return chessgame.Moves(r.MoveHistory())
}

// Signature is the artifact captured from the players when confirming the
// result.
type Signature struct {
	Name     string
	Data     []byte
	SignedAt time.Time
}

func (s Signature) String() string {
	return fmt.Sprintf("%v (%v)", s.Name, s.SignedAt.Format(time.RFC3339))
}

type ResultDisplayState struct {
	SessionID uuid.UUID
	Pairing   chessgame.GameInfo
	Winner    *chessgame.Player
	Signature Signature
	Pgn       string

	pairings []chessgame.GameInfo
}

func (ResultDisplayState) Mode() Mode { return ModeResultDisplay }
