package battleship

import (
	"strconv"
	"strings"
	"unicode/utf8"

	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

const (
	GridSize = 10

	GridValidLowerBound = 0
	GridValidUpperBound = GridSize - 1
)

const (
	PositionStateEmpty uint8 = iota
	PositionStateShip
)

// Column letters of the paper board, left to right.
var columnLetters = [GridSize]rune{'А', 'Б', 'В', 'Г', 'Д', 'Е', 'Ж', 'З', 'И', 'К'}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// Validate rejects coordinates outside the grid. Nothing is clamped;
// an out of range coordinate always means a bug in the caller.
func (c Coordinates) Validate() error {
	if c.Row < GridValidLowerBound || c.Row > GridValidUpperBound || c.Col < GridValidLowerBound || c.Col > GridValidUpperBound {
		return cerr.ErrRowOrColOutOfGridBound(c.Row, c.Col)
	}
	return nil
}

func (c Coordinates) inBound() bool {
	return c.Validate() == nil
}

// Label returns the paper board name of the cell, e.g. "А1" or "К10".
// Out of bound coordinates are rendered as "?".
func (c Coordinates) Label() string {
	if !c.inBound() {
		return "?"
	}
	return string(columnLetters[c.Col]) + strconv.Itoa(c.Row+1)
}

func (c Coordinates) String() string {
	return c.Label()
}

// ParseLabel is the inverse of Coordinates.Label.
func ParseLabel(label string) (Coordinates, error) {
	label = strings.TrimSpace(label)
	letter, size := utf8.DecodeRuneInString(label)
	if letter == utf8.RuneError {
		return Coordinates{}, cerr.ErrInvalidCoordinateLabel(label)
	}

	col := -1
	for i, l := range columnLetters {
		if l == letter {
			col = i
			break
		}
	}
	if col == -1 {
		return Coordinates{}, cerr.ErrInvalidCoordinateLabel(label)
	}

	// Only the forms Label produces: no sign, no leading zero
	digits := label[size:]
	if digits == "" || digits[0] < '1' || digits[0] > '9' {
		return Coordinates{}, cerr.ErrInvalidCoordinateLabel(label)
	}

	number, err := strconv.Atoi(digits)
	if err != nil {
		return Coordinates{}, cerr.ErrInvalidCoordinateLabel(label)
	}

	coords := NewCoordinates(number-1, col)
	if err := coords.Validate(); err != nil {
		return Coordinates{}, cerr.ErrInvalidCoordinateLabel(label)
	}
	return coords, nil
}

// 8-connected neighbourhood offsets
var neighbourOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbours returns the in-bound cells touching c, diagonals included.
func (c Coordinates) Neighbours() []Coordinates {
	neighbours := make([]Coordinates, 0, len(neighbourOffsets))
	for _, offset := range neighbourOffsets {
		n := NewCoordinates(c.Row+offset[0], c.Col+offset[1])
		if n.inBound() {
			neighbours = append(neighbours, n)
		}
	}
	return neighbours
}

// Grid is indexed as grid[row][col].
type Grid [GridSize][GridSize]uint8

// Creates a new default grid
// All indexes are zero/PositionStateEmpty
func NewGrid() Grid {
	return Grid{}
}

func (g *Grid) At(c Coordinates) (uint8, error) {
	if err := c.Validate(); err != nil {
		return PositionStateEmpty, err
	}
	return g[c.Row][c.Col], nil
}

func (g *Grid) IsShip(c Coordinates) (bool, error) {
	state, err := g.At(c)
	if err != nil {
		return false, err
	}
	return state == PositionStateShip, nil
}

func (g *Grid) ShipCells() int {
	var count int
	for row := range g {
		for col := range g[row] {
			if g[row][col] == PositionStateShip {
				count++
			}
		}
	}
	return count
}

func (g *Grid) isShipAt(c Coordinates) bool {
	return c.inBound() && g[c.Row][c.Col] == PositionStateShip
}

// String draws the grid with paper board labels. Ship cells are '#'.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for _, l := range columnLetters {
		sb.WriteRune(' ')
		sb.WriteRune(l)
	}
	sb.WriteByte('\n')

	for row := range g {
		sb.WriteString(padLeft(strconv.Itoa(row+1), 3))
		for col := range g[row] {
			sb.WriteByte(' ')
			if g[row][col] == PositionStateShip {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
