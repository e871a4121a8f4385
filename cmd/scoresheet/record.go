/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tornelo/scoresheet/appmode"
	"github.com/tornelo/scoresheet/chessgame"
)

var errQuit = errors.New("quit")

// session feeds typed commands into the app, one line per user event.
type session struct {
	app *appmode.App
	out io.Writer
}

func newSession(out io.Writer) *session {
	s := &session{out: out}
	s.app = appmode.New(appmode.WithErrorReporter(
		appmode.ErrorReporterFunc(s.reportError)))
	return s
}

func (s *session) reportError(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}

// run reads commands until quit or end of input.
func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		err := s.exec(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.reportError(err)
		}
	}
}

// exec runs one command. Recording actions report their own errors through
// the app, so only mode changes and bad input are returned here.
func (s *session) exec(line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprint(s.out, helpText)
		return nil
	case "show", "list":
		s.show()
		return nil
	case "select":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("select needs a board number: %w", err)
		}
		if err := s.selectBoard(n); err != nil {
			return err
		}
	case "back":
		if err := s.app.Back(); err != nil {
			return err
		}
	case "start":
		if err := s.app.StartRecording(); err != nil {
			return err
		}
	case "next":
		if err := s.app.NextGame(); err != nil {
			return err
		}
	case "promote":
		piece, err := chessgame.ParsePieceType(arg)
		if err != nil {
			return err
		}
		s.app.SelectPromotion(piece)
	case "skip":
		s.app.SkipTurn()
	case "undo":
		s.app.UndoLastMove()
	case "draw":
		if arg == "" {
			s.app.ToggleDrawLatest()
			break
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("draw needs a ply number: %w", err)
		}
		s.app.ToggleDraw(n - 1)
	case "flip":
		s.app.FlipBoard()
	case "end":
		s.app.OpenEndGame()
	case "winner":
		winner, err := parseWinner(arg)
		if err != nil {
			return err
		}
		s.app.SelectWinner(winner)
	case "sign":
		if arg == "" {
			return fmt.Errorf("sign needs a name")
		}
		s.app.ConfirmSignature(appmode.Signature{Name: arg})
	case "cancel":
		s.app.Cancel()
	default:
		squares, err := chessgame.ParseMoveSquares(line)
		if err != nil {
			return fmt.Errorf("unknown command %q", line)
		}
		if _, ok := s.app.Recording(); !ok {
			return fmt.Errorf("not recording a game")
		}
		s.app.Move(squares)
	}
	s.show()

	return nil
}

// selectBoard picks the pairing with board number n, or the n'th pairing
// when none carries board numbers.
func (s *session) selectBoard(n int) error {
	ps, ok := s.app.State().(appmode.PairingSelectionState)
	if !ok {
		return s.app.SelectPairing(n - 1)
	}
	for idx, p := range ps.Pairings {
		if p.SubRound == n {
			return s.app.SelectPairing(idx)
		}
	}

	return s.app.SelectPairing(n - 1)
}

func (s *session) show() {
	fmt.Fprint(s.out, renderState(s.app.State()))
}

func parseWinner(text string) (*chessgame.PlayerColour, error) {
	if strings.EqualFold(text, "draw") {
		return nil, nil
	}
	c, err := chessgame.ParseColour(text)
	if err != nil {
		return nil, fmt.Errorf("winner must be white, black or draw: %w", err)
	}
	return &c, nil
}
