package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/service"
)

// Session drives games over a line-oriented reader/writer pair, normally
// stdin and stdout. It is the only component that talks to the players; every
// recoverable move error becomes a message and a re-prompt here.
type Session struct {
	logger *slog.Logger

	conf     config.Game
	gameplay service.GamePlayService

	in  *bufio.Scanner
	out io.Writer
}

func New(logger *slog.Logger, conf config.Game, gameplay service.GamePlayService, in io.Reader, out io.Writer) *Session {
	return &Session{
		logger:   logger.With("component", "terminal"),
		conf:     conf,
		gameplay: gameplay,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run plays games until the players stop answering yes to another round, the
// input is exhausted, or the context is canceled between prompts.
func (that *Session) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		game, err := that.gameplay.StartGame(that.conf.BoardSize, that.conf.Mode, that.conf.PlayerXName, that.conf.PlayerOName)
		if err != nil {
			return fmt.Errorf("failed to start game: %w", err)
		}

		that.logger.Info("game started", "gameID", game.ID, "boardSize", game.Board.Size, "mode", that.conf.Mode)

		quit, err := that.playGame(ctx, game)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		if !that.askPlayAgain() {
			return nil
		}
	}
}

// playGame runs one game to completion. It reports quit=true when the input
// ends before the game does.
func (that *Session) playGame(ctx context.Context, game *entity.Game) (bool, error) {
	for game.IsOngoing() {
		if ctx.Err() != nil {
			return true, nil
		}

		current := game.CurrentPlayer()

		if current.IsBot() {
			coord, err := that.gameplay.BotTurn(game)
			if err != nil {
				return false, fmt.Errorf("bot turn failed: %w", err)
			}

			fmt.Fprintf(that.out, "%s (%s) plays %s.\n", current.Name(), current.Mark, coord.Label())
			continue
		}

		fmt.Fprintln(that.out)
		fmt.Fprint(that.out, Render(game.Board))
		fmt.Fprintf(that.out, "%s (%s), enter your move as rowcol (two digits, 0-%d each): ",
			current.Name(), current.Mark, game.Board.Size-1)

		raw, ok := that.readLine()
		if !ok {
			return true, nil
		}

		if _, err := that.gameplay.HumanTurn(game, raw); err != nil {
			that.explain(game, raw, err)
		}
	}

	fmt.Fprintln(that.out)
	fmt.Fprint(that.out, Render(game.Board))
	that.announceOutcome(game)

	that.gameplay.FinishMatch(ctx, game)

	return false, nil
}

// explain converts a rejected move into a user-facing message for its error
// class. Unexpected errors are logged and shown verbatim.
func (that *Session) explain(game *entity.Game, raw string, err error) {
	switch {
	case errors.Is(err, apperror.ErrMalformedCoordinate):
		fmt.Fprintf(that.out, "Invalid input %q: enter exactly two digits, row then column (for example 02).\n", raw)
	case errors.Is(err, apperror.ErrOutOfRange):
		fmt.Fprintf(that.out, "Move %q is out of range: rows and columns go from 0 to %d.\n", raw, game.Board.Size-1)
	case errors.Is(err, apperror.ErrCellOccupied):
		coord, parseErr := entity.ParseCoordinate(raw, game.Board.Size)
		if parseErr != nil {
			fmt.Fprintf(that.out, "Cell %s is already taken. Choose an empty cell.\n", raw)
			return
		}
		fmt.Fprintf(that.out, "Cell %s is already taken by %s. Choose an empty cell.\n", raw, game.Board.Cell(coord))
	default:
		that.logger.Error("unexpected move error", "input", raw, "error", err)
		fmt.Fprintf(that.out, "Move rejected: %v\n", err)
	}
}

func (that *Session) announceOutcome(game *entity.Game) {
	if game.IsTie() {
		fmt.Fprintf(that.out, "It's a tie: the board is full after %d moves.\n", game.Moves)
		return
	}

	winner, err := game.PlayerByMark(game.Winner)
	if err != nil {
		that.logger.Error("finished game without a resolvable winner", "winner", game.Winner, "error", err)
		return
	}

	fmt.Fprintf(that.out, "%s (%s) wins in %d moves!\n", winner.Name(), winner.Mark, game.Moves)
}

func (that *Session) askPlayAgain() bool {
	fmt.Fprint(that.out, "Play again? (y/n): ")

	answer, ok := that.readLine()
	if !ok {
		return false
	}

	answer = strings.ToLower(answer)

	return answer == "y" || answer == "yes"
}

func (that *Session) readLine() (string, bool) {
	if !that.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(that.in.Text()), true
}
