package tictactoe

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type rootScore struct {
	score int
	nodes int
}

// BestMoveParallel - evaluates every root move concurrently, each on its own copy of the board.
// Scores match BestMove; among tied moves the first in row-major order is chosen,
// which may differ from the move the pruned sequential search settles on.
func BestMoveParallel(ctx context.Context, board *entity.Board, mark entity.Cell) (SearchResult, error) {
	if err := checkPreconditions(board, mark); err != nil {
		return SearchResult{}, err
	}

	moves := board.LegalMoves()
	scores := make([]rootScore, len(moves))

	group, ctx := errgroup.WithContext(ctx)
	for i, move := range moves {
		branch := *board

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s := &searcher{maximizer: mark, minimizer: mark.Opponent()}
			scores[i] = rootScore{
				score: s.child(&branch, move, mark, 0, negInf, posInf, false),
				nodes: s.nodes,
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return SearchResult{}, fmt.Errorf("parallel search: %w", err)
	}

	result := SearchResult{Score: negInf, Nodes: 1}
	for i, rs := range scores {
		result.Nodes += rs.nodes
		if rs.score > result.Score {
			result.Score = rs.score
			result.Move = &moves[i]
		}
	}

	return result, nil
}
