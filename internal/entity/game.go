package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"
)

// Game is the state machine around a Board: InProgress until someone wins or the board fills.
type Game struct {
	Board  Board  `json:"board"`
	Turn   Cell   `json:"turn"`
	Winner Cell   `json:"winner"`
	Status Status `json:"status"`
}

func NewGame() *Game {
	return &Game{
		Turn:   PlayerX,
		Status: StatusInProgress,
	}
}

func (that *Game) MakeTurn(mark Cell, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.Turn)
	}

	if err := that.Board.Apply(move, mark); err != nil {
		return err
	}

	that.Turn = mark.Opponent()
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	if winner := that.Board.Winner(); winner != Empty {
		that.Winner = winner
		that.Status = StatusWon
		that.Turn = Empty
		return
	}

	if that.Board.IsFull() {
		that.Status = StatusDrawn
		that.Turn = Empty
		return
	}

	that.Status = StatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}
