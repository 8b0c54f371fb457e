package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type botService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Move, error)
}

// GameManager drives one game between a human and the bot.
type GameManager struct {
	logger *slog.Logger

	bot       botService
	humanMark entity.Cell
	game      *entity.Game
}

func NewGameManager(logger *slog.Logger, bot botService, humanMark entity.Cell) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game"),
		bot:       bot,
		humanMark: humanMark,
		game:      entity.NewGame(),
	}
}

// Start - lets the bot open when the human plays O. Returns the bot's move, if any.
func (that *GameManager) Start(ctx context.Context) (*entity.Move, error) {
	if that.game.Turn == that.humanMark {
		return nil, nil
	}

	return that.botTurn(ctx)
}

// HumanTurn - applies the human's move and, if the game goes on, the bot's reply.
// The returned move is the bot's, nil when the game ended on the human's move.
func (that *GameManager) HumanTurn(ctx context.Context, move entity.Move) (*entity.Move, error) {
	if err := that.game.MakeTurn(that.humanMark, move); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	that.logger.Debug("human played", "move", move.String(), "board", that.game.Board.Key())

	if that.game.IsFinished() {
		that.logOutcome()
		return nil, nil
	}

	return that.botTurn(ctx)
}

func (that *GameManager) botTurn(ctx context.Context) (*entity.Move, error) {
	move, err := that.bot.MakeTurn(ctx, that.game)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot played", "move", move.String(), "board", that.game.Board.Key())

	if that.game.IsFinished() {
		that.logOutcome()
	}

	return &move, nil
}

func (that *GameManager) logOutcome() {
	that.logger.Info("game finished", "status", that.game.Status, "winner", that.game.Winner.String())
}

func (that *GameManager) Game() *entity.Game {
	return that.game
}

func (that *GameManager) HumanMark() entity.Cell {
	return that.humanMark
}

// Outcome - a human readable result, empty while the game is in progress.
func (that *GameManager) Outcome() string {
	switch that.game.Status {
	case entity.StatusWon:
		return fmt.Sprintf("%s wins!", that.game.Winner)
	case entity.StatusDrawn:
		return "It's a draw!"
	default:
		return ""
	}
}
