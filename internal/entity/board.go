package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// Coordinates are a row digit followed by a column digit, so a board can
// never address more than 10 cells per axis.
const (
	MinBoardSize = 1
	MaxBoardSize = 10
)

// Coordinate addresses a single cell, zero-indexed from the top-left corner.
type Coordinate struct {
	Row int
	Col int
}

// ParseCoordinate decodes a raw "rowcol" string against a board of the given
// size. Malformed input and digits outside [0, size-1] are distinct errors so
// callers can explain them separately.
func ParseCoordinate(raw string, size int) (Coordinate, error) {
	if len(raw) != 2 {
		return Coordinate{}, fmt.Errorf("%w: got %q", apperror.ErrMalformedCoordinate, raw)
	}

	row, col := raw[0], raw[1]
	if row < '0' || row > '9' || col < '0' || col > '9' {
		return Coordinate{}, fmt.Errorf("%w: got %q", apperror.ErrMalformedCoordinate, raw)
	}

	coord := Coordinate{Row: int(row - '0'), Col: int(col - '0')}
	if coord.Row >= size || coord.Col >= size {
		return Coordinate{}, fmt.Errorf("%w: %q exceeds 0..%d", apperror.ErrOutOfRange, raw, size-1)
	}

	return coord, nil
}

// Label renders the coordinate back into its two-digit form.
func (that Coordinate) Label() string {
	return fmt.Sprintf("%d%d", that.Row, that.Col)
}

// Board owns the grid state. Cells hold EmptyCell until a mark is placed;
// the two-digit cell labels shown to players exist only in the renderer.
type Board struct {
	Size  int        `json:"size"`
	Cells [][]string `json:"cells"`
}

func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", apperror.ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}

	cells := make([][]string, size)
	for row := range cells {
		cells[row] = make([]string, size)
	}

	return &Board{Size: size, Cells: cells}, nil
}

func (that *Board) Cell(coord Coordinate) string {
	return that.Cells[coord.Row][coord.Col]
}

func (that *Board) IsEmpty(coord Coordinate) bool {
	return that.Cell(coord) == EmptyCell
}

// IsValidMove reports whether raw decodes to an unoccupied cell on this
// board. It never returns an error: malformed and out-of-range input are
// simply invalid moves.
func (that *Board) IsValidMove(raw string) bool {
	coord, err := ParseCoordinate(raw, that.Size)
	if err != nil {
		return false
	}

	return that.IsEmpty(coord)
}

// PlaceMark writes mark into the cell at coord. The caller is expected to
// have validated the move already; the occupancy re-check keeps a stale
// coordinate from silently overwriting a mark.
func (that *Board) PlaceMark(coord Coordinate, mark string) error {
	if coord.Row < 0 || coord.Row >= that.Size || coord.Col < 0 || coord.Col >= that.Size {
		return fmt.Errorf("%w: %s exceeds 0..%d", apperror.ErrOutOfRange, coord.Label(), that.Size-1)
	}

	if occupant := that.Cell(coord); occupant != EmptyCell {
		return fmt.Errorf("%w: %s holds %q", apperror.ErrCellOccupied, coord.Label(), occupant)
	}

	that.Cells[coord.Row][coord.Col] = mark

	return nil
}

func (that *Board) OccupiedCells() int {
	count := 0
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell != EmptyCell {
				count++
			}
		}
	}

	return count
}

func (that *Board) IsFull() bool {
	return that.OccupiedCells() == that.Size*that.Size
}

// CheckWinner scans rows first, then columns, then the main diagonal, then
// the anti-diagonal. It returns the winning mark, PlayerTie when the board
// is full with no winner, or EmptyCell while the game can continue.
func (that *Board) CheckWinner() string {
	for row := 0; row < that.Size; row++ {
		if mark := that.lineWinner(func(i int) string { return that.Cells[row][i] }); mark != EmptyCell {
			return mark
		}
	}

	for col := 0; col < that.Size; col++ {
		if mark := that.lineWinner(func(i int) string { return that.Cells[i][col] }); mark != EmptyCell {
			return mark
		}
	}

	if mark := that.lineWinner(func(i int) string { return that.Cells[i][i] }); mark != EmptyCell {
		return mark
	}

	if mark := that.lineWinner(func(i int) string { return that.Cells[i][that.Size-1-i] }); mark != EmptyCell {
		return mark
	}

	if that.IsFull() {
		return PlayerTie
	}

	return EmptyCell
}

// lineWinner returns the mark held by every cell along one line, or
// EmptyCell if the line is incomplete or mixed.
func (that *Board) lineWinner(cell func(i int) string) string {
	first := cell(0)
	if first == EmptyCell {
		return EmptyCell
	}

	for i := 1; i < that.Size; i++ {
		if cell(i) != first {
			return EmptyCell
		}
	}

	return first
}
