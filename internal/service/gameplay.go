package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

var ErrUnknownGameMode = errors.New("unknown game mode")

type matchRepo interface {
	Save(ctx context.Context, game *entity.Game) error
}

type GamePlayService interface {
	StartGame(boardSize int, mode, playerXName, playerOName string) (*entity.Game, error)
	HumanTurn(game *entity.Game, raw string) (entity.Coordinate, error)
	BotTurn(game *entity.Game) (entity.Coordinate, error)
	FinishMatch(ctx context.Context, game *entity.Game)
}

type gamePlayService struct {
	logger *slog.Logger

	botService BotService
	matchRepo  matchRepo
}

// NewGamePlayService wires the per-turn orchestration. A nil matchRepo
// disables archiving of finished games.
func NewGamePlayService(logger *slog.Logger, botService BotService, matchRepo matchRepo) GamePlayService {
	return &gamePlayService{
		logger:     logger,
		botService: botService,
		matchRepo:  matchRepo,
	}
}

func (that *gamePlayService) StartGame(boardSize int, mode, playerXName, playerOName string) (*entity.Game, error) {
	var playerX, playerO *entity.Player

	switch mode {
	case entity.ModeLocal:
		playerX = entity.NewPlayer(entity.PlayerX, playerXName)
		playerO = entity.NewPlayer(entity.PlayerO, playerOName)
	case entity.ModeBot:
		humanMark, botMark := entity.RandomMarks()
		if humanMark == entity.PlayerX {
			playerX = entity.NewPlayer(humanMark, playerXName)
			playerO = entity.NewBotPlayer(botMark)
		} else {
			playerX = entity.NewBotPlayer(botMark)
			playerO = entity.NewPlayer(humanMark, playerOName)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameMode, mode)
	}

	game, err := entity.NewGame(uuid.NewString(), boardSize, playerX, playerO)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game started", "gameID", game.ID, "boardSize", boardSize, "mode", mode)

	return game, nil
}

// HumanTurn parses raw into a coordinate and plays it for the player whose
// turn it is.
func (that *gamePlayService) HumanTurn(game *entity.Game, raw string) (entity.Coordinate, error) {
	coord, err := entity.ParseCoordinate(raw, game.Board.Size)
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("failed to parse coordinate: %w", err)
	}

	if err = game.MakeTurn(game.Turn, coord); err != nil {
		return coord, fmt.Errorf("failed to make turn: %w", err)
	}

	return coord, nil
}

func (that *gamePlayService) BotTurn(game *entity.Game) (entity.Coordinate, error) {
	coord, err := that.botService.MakeTurn(game)
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return coord, nil
}

// FinishMatch archives a finished game. Archive failures are logged, never
// surfaced: the game result was already shown to the players.
func (that *gamePlayService) FinishMatch(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "FinishMatch", "gameID", game.ID)

	if !game.IsFinished() {
		log.Warn("refusing to archive an unfinished game")
		return
	}

	if that.matchRepo == nil {
		return
	}

	if err := that.matchRepo.Save(ctx, game); err != nil {
		log.Error("failed to archive match", "error", err)
		return
	}

	log.Info("match archived", "winner", game.Winner, "moves", game.Moves)
}
