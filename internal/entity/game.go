package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	ModeLocal = "local"
	ModeBot   = "bot"
)

var (
	ErrDuplicateMarks = errors.New("players must hold distinct marks")
	ErrUnknownMark    = errors.New("no player holds this mark")
)

type Game struct {
	ID      string    `json:"id"`
	Board   *Board    `json:"board"`
	Players []*Player `json:"players"`
	Turn    string    `json:"player_turn"`
	Winner  string    `json:"winner"`
	Status  string    `json:"status"`
	Moves   int       `json:"moves"`
}

// NewGame builds an ongoing game on a fresh board. X always moves first.
func NewGame(id string, size int, playerX, playerO *Player) (*Game, error) {
	if playerX.Mark == playerO.Mark {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateMarks, playerX.Mark)
	}

	board, err := NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		ID:      id,
		Board:   board,
		Players: []*Player{playerX, playerO},
		Turn:    PlayerX,
		Status:  StatusOngoing,
	}, nil
}

func (that *Game) CurrentPlayer() *Player {
	for _, player := range that.Players {
		if player.Mark == that.Turn {
			return player
		}
	}

	return nil
}

func (that *Game) PlayerByMark(mark string) (*Player, error) {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMark, mark)
}

// MakeTurn places mark at coord and advances the game. Once the game is
// finished every further call fails, so Winner and Status never change again.
func (that *Game) MakeTurn(mark string, coord Coordinate) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.PlaceMark(coord, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Moves++
	that.updateState(mark)

	return nil
}

// updateState resolves the board into a win, a tie, or a turn swap.
func (that *Game) updateState(mark string) {
	switch winner := that.Board.CheckWinner(); winner {
	case EmptyCell:
		that.Turn = toggleMark(mark)
	default:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsTie() bool {
	return that.Winner == PlayerTie
}

// RandomMarks shuffles which side gets X. X still moves first.
func RandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
