package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// MoveRepository caches search results. Search is deterministic, so a cached result
// for a board and mark never goes stale.
type MoveRepository interface {
	Set(ctx context.Context, board *entity.Board, mark entity.Cell, result tictactoe.SearchResult) error
	Get(ctx context.Context, board *entity.Board, mark entity.Cell) (tictactoe.SearchResult, error)
	Delete(ctx context.Context, board *entity.Board, mark entity.Cell) error
}

type dbMove struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMoveRepository(client *redis.Client, ttl time.Duration) MoveRepository {
	return &dbMove{
		client: client,
		ttl:    ttl,
	}
}

func moveKey(board *entity.Board, mark entity.Cell) string {
	return "move:" + mark.String() + ":" + board.Key()
}

func (that *dbMove) Set(ctx context.Context, board *entity.Board, mark entity.Cell, result tictactoe.SearchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal search result: %w", err)
	}

	if err = that.client.Set(ctx, moveKey(board, mark), resultJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set search result: %w", err)
	}

	return nil
}

func (that *dbMove) Get(ctx context.Context, board *entity.Board, mark entity.Cell) (tictactoe.SearchResult, error) {
	response, err := that.client.Get(ctx, moveKey(board, mark)).Result()

	if errors.Is(err, redis.Nil) {
		return tictactoe.SearchResult{}, apperror.ErrNotCached
	}

	if err != nil {
		return tictactoe.SearchResult{}, fmt.Errorf("failed to get search result: %w", err)
	}

	var result tictactoe.SearchResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return tictactoe.SearchResult{}, fmt.Errorf("failed to unmarshal search result: %w", err)
	}

	return result, nil
}

func (that *dbMove) Delete(ctx context.Context, board *entity.Board, mark entity.Cell) error {
	if err := that.client.Del(ctx, moveKey(board, mark)).Err(); err != nil {
		return fmt.Errorf("failed to delete search result: %w", err)
	}

	return nil
}
