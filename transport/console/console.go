// Package console plays a game against the bot over a line based text stream.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var errBadInput = errors.New("expected two integers 0-2")

type gameManager interface {
	Start(ctx context.Context) (*entity.Move, error)
	HumanTurn(ctx context.Context, move entity.Move) (*entity.Move, error)
	Game() *entity.Game
	HumanMark() entity.Cell
	Outcome() string
}

type Console struct {
	logger  *slog.Logger
	manager gameManager

	in  io.Reader
	out io.Writer
}

func New(logger *slog.Logger, manager gameManager, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:  logger.With("component", "console"),
		manager: manager,
		in:      in,
		out:     out,
	}
}

// Run - plays until the game ends, the input is exhausted or ctx is canceled.
func (that *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := that.readLines(ctx)

	human := that.manager.HumanMark()
	that.printf("\n=== Tic-Tac-Toe ===\n")
	that.printf("You are %s, AI is %s.\n", human, human.Opponent())
	that.printf("Enter moves as row col, e.g. 0 2 for top-right.\n")

	botMove, err := that.manager.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	that.printBotMove(botMove)

	for {
		that.printf("\n%s\n", that.manager.Game().Board.String())

		if outcome := that.manager.Outcome(); outcome != "" {
			that.printf("%s\n", outcome)
			return nil
		}

		that.printf("Your move (row col): ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			that.printf("\nInterrupted. Bye!\n")
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			that.printf("\nInterrupted. Bye!\n")
			if err = <-readErr; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		move, err := parseMove(line)
		if err != nil {
			that.printf("Please enter two integers 0-2 separated by space, e.g. 1 2\n")
			continue
		}

		botMove, err = that.manager.HumanTurn(ctx, move)
		if errors.Is(err, apperror.ErrInvalidMove) {
			that.printf("Cell already taken. Try again.\n")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to play turn: %w", err)
		}

		that.printBotMove(botMove)
	}
}

// readLines - feeds input lines to the game loop; the error channel yields once input ends.
func (that *Console) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}

		if err := scanner.Err(); err != nil {
			that.logger.Error("failed to read input", "error", err)
			readErr <- err
			return
		}
		readErr <- nil
	}()

	return lines, readErr
}

func (that *Console) printBotMove(move *entity.Move) {
	if move == nil {
		return
	}

	that.printf("AI plays %s\n", move)
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func parseMove(line string) (entity.Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return entity.Move{}, errBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Move{}, errBadInput
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Move{}, errBadInput
	}

	move := entity.Move{Row: row, Col: col}
	if !move.InRange() {
		return entity.Move{}, errBadInput
	}

	return move, nil
}
