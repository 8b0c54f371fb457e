// Package tictactoe finds optimal moves by exhaustive minimax search with alpha-beta pruning.
package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// WinScore is the score of a win at the root; every ply of depth costs one point.
const WinScore = 10

const (
	negInf = math.MinInt
	posInf = math.MaxInt
)

// SearchResult is scored from the maximizing side's perspective.
// Move is nil only for a board that was already terminal.
type SearchResult struct {
	Score int          `json:"score"`
	Move  *entity.Move `json:"move,omitempty"`
	Nodes int          `json:"nodes"`
}

type searcher struct {
	maximizer entity.Cell
	minimizer entity.Cell
	nodes     int
}

// BestMove - returns the optimal move for mark on board and its score.
// The board is mutated during the search and restored before returning.
func BestMove(board *entity.Board, mark entity.Cell) (SearchResult, error) {
	if err := checkPreconditions(board, mark); err != nil {
		return SearchResult{}, err
	}

	s := &searcher{maximizer: mark, minimizer: mark.Opponent()}
	score, move := s.minimax(board, 0, negInf, posInf, true)

	return SearchResult{Score: score, Move: move, Nodes: s.nodes}, nil
}

func checkPreconditions(board *entity.Board, mark entity.Cell) error {
	if !mark.IsMark() {
		return fmt.Errorf("%w: %w", apperror.ErrNoLegalMove, apperror.ErrInvalidMark)
	}

	if winner := board.Winner(); winner != entity.Empty {
		return fmt.Errorf("%w: %s has won", apperror.ErrNoLegalMove, winner)
	}

	if board.IsFull() {
		return fmt.Errorf("%w: board is full", apperror.ErrNoLegalMove)
	}

	return nil
}

// terminalScore - the score of a finished position at depth, ok is false if the game goes on.
func (that *searcher) terminalScore(board *entity.Board, depth int) (int, bool) {
	switch board.Winner() {
	case that.maximizer:
		return WinScore - depth, true
	case that.minimizer:
		return depth - WinScore, true
	}

	if board.IsFull() {
		return 0, true
	}

	return 0, false
}

func (that *searcher) minimax(board *entity.Board, depth, alpha, beta int, maximizing bool) (int, *entity.Move) {
	that.nodes++

	if score, ok := that.terminalScore(board, depth); ok {
		return score, nil
	}

	var bestMove *entity.Move

	if maximizing {
		best := negInf
		for _, move := range board.LegalMoves() {
			score := that.child(board, move, that.maximizer, depth, alpha, beta, false)
			if score > best {
				best = score
				bestMove = &move
			}
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best, bestMove
	}

	best := posInf
	for _, move := range board.LegalMoves() {
		score := that.child(board, move, that.minimizer, depth, alpha, beta, true)
		if score < best {
			best = score
			bestMove = &move
		}
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best, bestMove
}

// child - scores move one ply deeper, undoing it on every exit path.
func (that *searcher) child(board *entity.Board, move entity.Move, mark entity.Cell, depth, alpha, beta int, maximizing bool) int {
	if err := board.Apply(move, mark); err != nil {
		panic(fmt.Sprintf("search generated illegal move %s on %s: %v", move, board.Key(), err))
	}
	defer board.Undo(move)

	score, _ := that.minimax(board, depth+1, alpha, beta, maximizing)

	return score
}
