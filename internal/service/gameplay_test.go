package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchRepo struct {
	saved  []*entity.Game
	failed error
}

func (that *fakeMatchRepo) Save(_ context.Context, game *entity.Game) error {
	if that.failed != nil {
		return that.failed
	}

	that.saved = append(that.saved, game)

	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGamePlayService_StartGame(t *testing.T) {
	t.Run("Local mode seats two named humans", func(t *testing.T) {
		gameplay := NewGamePlayService(discardLogger(), NewBotService(), nil)

		game, err := gameplay.StartGame(3, entity.ModeLocal, "Alice", "Bob")

		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.PlayerX, game.Turn)
		assert.Equal(t, "Alice", game.Players[0].Name())
		assert.Equal(t, "Bob", game.Players[1].Name())
		assert.False(t, game.Players[0].IsBot())
		assert.False(t, game.Players[1].IsBot())
	})

	t.Run("Bot mode seats exactly one bot with a distinct mark", func(t *testing.T) {
		gameplay := NewGamePlayService(discardLogger(), NewBotService(), nil)

		game, err := gameplay.StartGame(3, entity.ModeBot, "Alice", "Alice")

		require.NoError(t, err)
		bots := 0
		for _, player := range game.Players {
			if player.IsBot() {
				bots++
			}
		}
		assert.Equal(t, 1, bots)
		assert.NotEqual(t, game.Players[0].Mark, game.Players[1].Mark)
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		gameplay := NewGamePlayService(discardLogger(), NewBotService(), nil)

		_, err := gameplay.StartGame(3, "tournament", "", "")

		assert.ErrorIs(t, err, ErrUnknownGameMode)
	})

	t.Run("Propagates an invalid board size", func(t *testing.T) {
		gameplay := NewGamePlayService(discardLogger(), NewBotService(), nil)

		_, err := gameplay.StartGame(0, entity.ModeLocal, "", "")

		assert.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})
}

func TestGamePlayService_HumanTurn(t *testing.T) {
	newLocalGame := func(t *testing.T) (GamePlayService, *entity.Game) {
		t.Helper()

		gameplay := NewGamePlayService(discardLogger(), NewBotService(), nil)
		game, err := gameplay.StartGame(3, entity.ModeLocal, "", "")
		require.NoError(t, err)

		return gameplay, game
	}

	t.Run("Plays the parsed coordinate for the current player", func(t *testing.T) {
		gameplay, game := newLocalGame(t)

		coord, err := gameplay.HumanTurn(game, "11")

		require.NoError(t, err)
		assert.Equal(t, entity.Coordinate{Row: 1, Col: 1}, coord)
		assert.Equal(t, entity.PlayerX, game.Board.Cell(coord))
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Surfaces malformed input", func(t *testing.T) {
		gameplay, game := newLocalGame(t)

		_, err := gameplay.HumanTurn(game, "abc")

		assert.ErrorIs(t, err, apperror.ErrMalformedCoordinate)
		assert.Equal(t, 0, game.Moves)
	})

	t.Run("Surfaces an out-of-range coordinate", func(t *testing.T) {
		gameplay, game := newLocalGame(t)

		_, err := gameplay.HumanTurn(game, "33")

		assert.ErrorIs(t, err, apperror.ErrOutOfRange)
	})

	t.Run("Surfaces an occupied cell without advancing the turn", func(t *testing.T) {
		gameplay, game := newLocalGame(t)
		_, err := gameplay.HumanTurn(game, "00")
		require.NoError(t, err)

		_, err = gameplay.HumanTurn(game, "00")

		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.PlayerO, game.Turn)
	})
}

func TestGamePlayService_FinishMatch(t *testing.T) {
	finishedGame := func(t *testing.T) *entity.Game {
		t.Helper()

		game, err := entity.NewGame("123", 1, entity.NewPlayer(entity.PlayerX, ""), entity.NewPlayer(entity.PlayerO, ""))
		require.NoError(t, err)
		require.NoError(t, game.MakeTurn(entity.PlayerX, entity.Coordinate{}))

		return game
	}

	t.Run("Archives a finished game", func(t *testing.T) {
		repo := &fakeMatchRepo{}
		gameplay := NewGamePlayService(discardLogger(), NewBotService(), repo)

		gameplay.FinishMatch(context.Background(), finishedGame(t))

		require.Len(t, repo.saved, 1)
		assert.Equal(t, entity.PlayerX, repo.saved[0].Winner)
	})

	t.Run("Skips an unfinished game", func(t *testing.T) {
		repo := &fakeMatchRepo{}
		gameplay := NewGamePlayService(discardLogger(), NewBotService(), repo)
		game, err := gameplay.StartGame(3, entity.ModeLocal, "", "")
		require.NoError(t, err)

		gameplay.FinishMatch(context.Background(), game)

		assert.Empty(t, repo.saved)
	})

	t.Run("Swallows archive failures", func(t *testing.T) {
		repo := &fakeMatchRepo{failed: errors.New("redis is down")}
		gameplay := NewGamePlayService(discardLogger(), NewBotService(), repo)

		// An archive failure must not disturb the finished game.
		gameplay.FinishMatch(context.Background(), finishedGame(t))

		assert.Empty(t, repo.saved)
	})

	t.Run("Does nothing without a repository", func(t *testing.T) {
		gameplay := NewGamePlayService(discardLogger(), NewBotService(), nil)

		gameplay.FinishMatch(context.Background(), finishedGame(t))
	})
}
