package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

var ErrMatchNotFound = errors.New("match not found")

// recentMatchLimit caps the recent-match index so the archive cannot grow
// without bound.
const recentMatchLimit = 100

const recentMatchesKey = "matches:recent"

// MatchRecord is the archived result of one finished game.
type MatchRecord struct {
	ID         string           `json:"id"`
	BoardSize  int              `json:"board_size"`
	Winner     string           `json:"winner"`
	Moves      int              `json:"moves"`
	Players    []*entity.Player `json:"players"`
	FinishedAt time.Time        `json:"finished_at"`
}

type MatchRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*MatchRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*MatchRecord, error)
}

type dbMatch struct {
	client *redis.Client
	now    func() time.Time
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
		now:    time.Now,
	}
}

func (that *dbMatch) Save(ctx context.Context, game *entity.Game) error {
	record := &MatchRecord{
		ID:         game.ID,
		BoardSize:  game.Board.Size,
		Winner:     game.Winner,
		Moves:      game.Moves,
		Players:    game.Players,
		FinishedAt: that.now().UTC(),
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal match record: %w", err)
	}

	matchKey := "match:" + record.ID
	if err = that.client.Set(ctx, matchKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set match record: %w", err)
	}

	if err = that.client.LPush(ctx, recentMatchesKey, record.ID).Err(); err != nil {
		return fmt.Errorf("failed to index match record: %w", err)
	}

	if err = that.client.LTrim(ctx, recentMatchesKey, 0, recentMatchLimit-1).Err(); err != nil {
		return fmt.Errorf("failed to trim match index: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*MatchRecord, error) {
	matchKey := "match:" + id

	response, err := that.client.Get(ctx, matchKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var record MatchRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match record: %w", err)
	}

	return &record, nil
}

// ListRecent returns up to limit records, newest first. Records whose index
// entry outlived the record itself are skipped.
func (that *dbMatch) ListRecent(ctx context.Context, limit int) ([]*MatchRecord, error) {
	ids, err := that.client.LRange(ctx, recentMatchesKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	records := make([]*MatchRecord, 0, len(ids))
	for _, id := range ids {
		record, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrMatchNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load match %s: %w", id, err)
		}

		records = append(records, record)
	}

	return records, nil
}
