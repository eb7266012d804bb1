package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) (entity.Coordinate, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays a uniformly random legal move for the game's bot player and
// returns the chosen cell.
func (that *botService) MakeTurn(game *entity.Game) (entity.Coordinate, error) {
	availableCells := make([]entity.Coordinate, 0, game.Board.Size*game.Board.Size)
	for row := 0; row < game.Board.Size; row++ {
		for col := 0; col < game.Board.Size; col++ {
			coord := entity.Coordinate{Row: row, Col: col}
			if game.Board.IsEmpty(coord) {
				availableCells = append(availableCells, coord)
			}
		}
	}

	if len(availableCells) == 0 {
		return entity.Coordinate{}, ErrNoAvailableMoves
	}

	var botPlayer *entity.Player
	for _, player := range game.Players {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return entity.Coordinate{}, ErrBotNotFound
	}

	chosenCell := availableCells[rand.Intn(len(availableCells))] //nolint: gosec // it's ok

	if err := game.MakeTurn(botPlayer.Mark, chosenCell); err != nil {
		return entity.Coordinate{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return chosenCell, nil
}
