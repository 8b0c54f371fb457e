package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const BoardSize = 3

type Cell uint8

const (
	Empty Cell = iota
	PlayerX
	PlayerO
)

// WinCombos lists every line in scan order: rows, columns, main diagonal, anti-diagonal.
var WinCombos = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "."
	}
}

// IsMark reports whether the cell holds one of the two player marks.
func (that Cell) IsMark() bool {
	return that == PlayerX || that == PlayerO
}

func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// ParseMark - converts "X" or "O" (any case) into a mark.
func ParseMark(s string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Move) String() string {
	return fmt.Sprintf("%d %d", that.Row, that.Col)
}

// Board is a 3x3 grid of cells, indexed [row][col].
type Board [BoardSize][BoardSize]Cell

func NewBoard() *Board {
	return &Board{}
}

// ParseBoard - builds a board from the 9-character form produced by Key.
func ParseBoard(key string) (*Board, error) {
	if len(key) != BoardSize*BoardSize {
		return nil, fmt.Errorf("board key must have %d cells, got %d", BoardSize*BoardSize, len(key))
	}

	board := NewBoard()
	for i, r := range key {
		switch r {
		case 'X', 'x':
			board[i/BoardSize][i%BoardSize] = PlayerX
		case 'O', 'o':
			board[i/BoardSize][i%BoardSize] = PlayerO
		case '.', ' ', '_':
		default:
			return nil, fmt.Errorf("unknown cell %q at index %d", r, i)
		}
	}

	return board, nil
}

// Winner - returns the mark occupying the first complete line found, or Empty.
func (that *Board) Winner() Cell {
	for _, combo := range WinCombos {
		a := that.At(combo[0])
		if a != Empty && a == that.At(combo[1]) && a == that.At(combo[2]) {
			return a
		}
	}

	return Empty
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

func (that *Board) IsTerminal() bool {
	return that.Winner() != Empty || that.IsFull()
}

// LegalMoves - returns every empty cell in row-major order.
func (that *Board) LegalMoves() []Move {
	moves := make([]Move, 0, BoardSize*BoardSize)
	for r, row := range that {
		for c, cell := range row {
			if cell == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}

	return moves
}

func (that *Board) At(move Move) Cell {
	return that[move.Row][move.Col]
}

func (that *Board) Apply(move Move, mark Cell) error {
	if !move.InRange() {
		return fmt.Errorf("%w: cell (%d, %d) is out of range", apperror.ErrInvalidMove, move.Row, move.Col)
	}

	if !mark.IsMark() {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrInvalidMark)
	}

	if that.At(move) != Empty {
		return fmt.Errorf("%w: cell (%d, %d) is already occupied", apperror.ErrInvalidMove, move.Row, move.Col)
	}

	that[move.Row][move.Col] = mark

	return nil
}

// Undo - clears a cell set by Apply. Search-internal: no checks.
func (that *Board) Undo(move Move) {
	that[move.Row][move.Col] = Empty
}

// Key - the row-major 9-character form, e.g. "XO..X...O".
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for _, row := range that {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

func (that *Board) String() string {
	lines := make([]string, 0, 2*BoardSize)
	for _, row := range that {
		cells := make([]string, 0, BoardSize)
		for _, cell := range row {
			if cell == Empty {
				cells = append(cells, " ")
				continue
			}
			cells = append(cells, cell.String())
		}
		lines = append(lines, strings.Join(cells, " | "), strings.Repeat("-", 9))
	}

	return strings.Join(lines, "\n")
}
