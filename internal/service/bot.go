package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type BotService interface {
	ChooseMove(ctx context.Context, board *entity.Board, mark entity.Cell) (tictactoe.SearchResult, error)
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Move, error)
}

type moveRepo interface {
	Set(ctx context.Context, board *entity.Board, mark entity.Cell, result tictactoe.SearchResult) error
	Get(ctx context.Context, board *entity.Board, mark entity.Cell) (tictactoe.SearchResult, error)
}

type botService struct {
	logger *slog.Logger

	moveRepo moveRepo
	parallel bool
}

// NewBotService - moveRepo may be nil, in which case every move is searched.
func NewBotService(logger *slog.Logger, moveRepo moveRepo, parallel bool) BotService {
	return &botService{
		logger:   logger.With("component", "bot"),
		moveRepo: moveRepo,
		parallel: parallel,
	}
}

func (that *botService) ChooseMove(ctx context.Context, board *entity.Board, mark entity.Cell) (tictactoe.SearchResult, error) {
	log := that.logger.With("method", "ChooseMove", "board", board.Key(), "mark", mark.String())

	if result, ok := that.cached(ctx, log, board, mark); ok {
		return result, nil
	}

	result, err := that.search(ctx, board, mark)
	if err != nil {
		return tictactoe.SearchResult{}, fmt.Errorf("failed to search: %w", err)
	}

	log.Debug("search finished", "move", result.Move.String(), "score", result.Score, "nodes", result.Nodes)

	if that.moveRepo != nil {
		if err = that.moveRepo.Set(ctx, board, mark, result); err != nil {
			log.Warn("failed to cache search result", "error", err)
		}
	}

	return result, nil
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Move, error) {
	if game.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	result, err := that.ChooseMove(ctx, &game.Board, game.Turn)
	if err != nil {
		return entity.Move{}, err
	}

	move := *result.Move
	if err = game.MakeTurn(game.Turn, move); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return move, nil
}

func (that *botService) search(ctx context.Context, board *entity.Board, mark entity.Cell) (tictactoe.SearchResult, error) {
	if that.parallel {
		return tictactoe.BestMoveParallel(ctx, board, mark)
	}

	return tictactoe.BestMove(board, mark)
}

// cached - a usable cache hit; misses and failures fall through to a search.
func (that *botService) cached(ctx context.Context, log *slog.Logger, board *entity.Board, mark entity.Cell) (tictactoe.SearchResult, bool) {
	if that.moveRepo == nil {
		return tictactoe.SearchResult{}, false
	}

	result, err := that.moveRepo.Get(ctx, board, mark)
	if errors.Is(err, apperror.ErrNotCached) {
		return tictactoe.SearchResult{}, false
	}

	if err != nil {
		log.Warn("failed to read cached search result", "error", err)
		return tictactoe.SearchResult{}, false
	}

	if result.Move == nil || !result.Move.InRange() || board.At(*result.Move) != entity.Empty {
		log.Warn("ignoring unusable cached search result")
		return tictactoe.SearchResult{}, false
	}

	log.Debug("cache hit", "move", result.Move.String(), "score", result.Score)

	return result, true
}
