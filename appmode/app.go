/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package appmode

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tornelo/scoresheet/chessgame"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPairingIndex      = errors.New("no such pairing")
	ErrInvalidPromotion  = errors.New("invalid promotion piece")
)

// Recorder is the rules engine a recording session plays moves against.
// *chessgame.Board implements it.
type Recorder interface {
	Move(squares chessgame.MoveSquares, promotion *chessgame.PieceType) error
	UndoLastMove() error
	IsPawnPromotion(squares chessgame.MoveSquares) bool
	IsOtherPlayersPiece(squares chessgame.MoveSquares) bool
	SkipTurnAndProcessMove(squares chessgame.MoveSquares,
		promotion *chessgame.PieceType) error
	SkipTurn() error
	ToggleDraw(plyIndex int) error
	GeneratePgn(info chessgame.GameInfo, winner *chessgame.PlayerColour) (string, error)
	CurrentPlayer() chessgame.PlayerColour
	History() []chessgame.Ply
	Draw(fromBlack bool) string
}

// ErrorReporter is where failed user actions are surfaced.
type ErrorReporter interface {
	ReportError(err error)
}

type ErrorReporterFunc func(err error)

func (f ErrorReporterFunc) ReportError(err error) { f(err) }

type logReporter struct{}

func (logReporter) ReportError(err error) {
	log.Printf("appmode: %v", err)
}

// App holds the single active mode of a scoresheet session. Every method is
// one user event; events are applied one at a time.
type App struct {
	mu          sync.Mutex
	state       State
	newRecorder func(info chessgame.GameInfo) Recorder
	reporter    ErrorReporter
	now         func() time.Time
}

type Option func(*App)

// WithRecorderFactory replaces the rules engine used for new games. A factory
// returning nil leaves recording actions without a board, which makes them
// no-ops.
func WithRecorderFactory(f func(info chessgame.GameInfo) Recorder) Option {
	return func(a *App) {
		a.newRecorder = f
	}
}

func WithErrorReporter(r ErrorReporter) Option {
	return func(a *App) {
		a.reporter = r
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

func New(opts ...Option) *App {
	a := &App{
		state: EnterPgnState{},
		newRecorder: func(chessgame.GameInfo) Recorder {
			return chessgame.NewBoard()
		},
		reporter: logReporter{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// State returns the active mode. A RecordingState carries a copy of the
// board taken while events were held off, so it is safe to read while other
// goroutines keep recording.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	if rs, ok := a.state.(RecordingState); ok && rs.Board != nil {
		rs.snap = &boardSnapshot{
			history: rs.Board.History(),
			current: rs.Board.CurrentPlayer(),
			diagram: rs.Board.Draw(rs.Flipped),
		}
		return rs
	}
	return a.state
}

func (a *App) Mode() Mode {
	return a.State().Mode()
}

// Recording returns the recording state when the app is recording a game.
func (a *App) Recording() (RecordingState, bool) {
	rs, ok := a.State().(RecordingState)
	return rs, ok
}

// LoadPairings moves from EnterPgn to PairingSelection.
func (a *App) LoadPairings(pairings []chessgame.GameInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.state.(EnterPgnState); !ok {
		return a.invalid("load pairings")
	}
	a.state = PairingSelectionState{Pairings: pairings}

	return nil
}

// SelectPairing picks the board to record and shows its table card.
func (a *App) SelectPairing(idx int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ps, ok := a.state.(PairingSelectionState)
	if !ok {
		return a.invalid("select pairing")
	}
	if idx < 0 || idx >= len(ps.Pairings) {
		return fmt.Errorf("%w: %v", ErrPairingIndex, idx)
	}
	a.state = TablePairingState{
		Pairing:  ps.Pairings[idx],
		pairings: ps.Pairings,
	}

	return nil
}

// StartRecording sets up a fresh board for the selected pairing.
func (a *App) StartRecording() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	tp, ok := a.state.(TablePairingState)
	if !ok {
		return a.invalid("start recording")
	}
	rs := RecordingState{
		SessionID: uuid.New(),
		Pairing:   tp.Pairing,
		pairings:  tp.pairings,
	}
	if a.newRecorder != nil {
		rs.Board = a.newRecorder(tp.Pairing)
	}
	rs.Flipped = rs.CurrentPlayer() == chessgame.Black
	a.state = rs
	log.Printf("appmode.start: session %v recording round %v board %v",
		rs.SessionID, tp.Pairing.Round, tp.Pairing.SubRound)

	return nil
}

// Back steps from TablePairing to PairingSelection, or from
// PairingSelection to EnterPgn.
func (a *App) Back() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch s := a.state.(type) {
	case TablePairingState:
		a.state = PairingSelectionState{Pairings: s.pairings}
	case PairingSelectionState:
		a.state = EnterPgnState{}
	default:
		return a.invalid("back")
	}

	return nil
}

// NextGame leaves the result display for the pairing list it came from.
func (a *App) NextGame() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	rd, ok := a.state.(ResultDisplayState)
	if !ok {
		return a.invalid("next game")
	}
	a.state = PairingSelectionState{Pairings: rd.pairings}

	return nil
}

// Reset abandons whatever is in progress.
func (a *App) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = EnterPgnState{}
}

func (a *App) invalid(action string) error {
	return fmt.Errorf("%w: cannot %v in %v mode", ErrInvalidTransition, action,
		a.state.Mode())
}
