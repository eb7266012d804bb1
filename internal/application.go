package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-console/internal/service"
	"github.com/rocketscienceinc/tictactoe-console/internal/transport/terminal"
)

const recentMatchesShown = 5

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var matchRepo repository.MatchRepository
	if conf.Archive.Enabled {
		redisStorage, err := storage.New(ctx, conf.Archive.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		matchRepo = repository.NewMatchRepository(redisStorage.Connection)
		logRecentMatches(ctx, log, matchRepo)
	}

	botService := service.NewBotService()
	gameplay := service.NewGamePlayService(logger, botService, matchRepo)

	session := terminal.New(logger, conf.Game, gameplay, os.Stdin, os.Stdout)

	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("terminal session failed: %w", err)
	}

	return nil
}

func logRecentMatches(ctx context.Context, log *slog.Logger, matchRepo repository.MatchRepository) {
	records, err := matchRepo.ListRecent(ctx, recentMatchesShown)
	if err != nil {
		log.Error("could not list recent matches", "error", err)
		return
	}

	for _, record := range records {
		log.Info("recent match", "matchID", record.ID, "winner", record.Winner, "moves", record.Moves, "finishedAt", record.FinishedAt)
	}
}
