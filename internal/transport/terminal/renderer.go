package terminal

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// Render produces a deterministic string for the grid. Empty cells show
// their two-digit coordinate label so players always see what to type; every
// cell is padded to the label width, which keeps the layout stable for any
// board size.
func Render(board *entity.Board) string {
	var builder strings.Builder

	rowWidth := 1 + 2*board.Size + 3*(board.Size-1)

	for row := 0; row < board.Size; row++ {
		cells := make([]string, 0, board.Size)
		for col := 0; col < board.Size; col++ {
			coord := entity.Coordinate{Row: row, Col: col}
			value := board.Cell(coord)
			if value == entity.EmptyCell {
				value = coord.Label()
			}
			cells = append(cells, fmt.Sprintf("%-2s", value))
		}

		builder.WriteString(" " + strings.Join(cells, " | ") + "\n")

		if row < board.Size-1 {
			builder.WriteString(strings.Repeat("-", rowWidth) + "\n")
		}
	}

	return builder.String()
}
