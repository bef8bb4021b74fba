package battleship

import (
	"slices"

	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

const (
	OrientationHorizontal uint8 = iota
	OrientationVertical
)

const (
	ShipSizeBattleship  = 4
	ShipSizeCruiser     = 3
	ShipSizeDestroyer   = 2
	ShipSizeTorpedoBoat = 1
)

// FleetRoster lists every ship placed on a board, largest first.
// One battleship, two cruisers, three destroyers and four torpedo boats.
var FleetRoster = []int{
	ShipSizeBattleship,
	ShipSizeCruiser, ShipSizeCruiser,
	ShipSizeDestroyer, ShipSizeDestroyer, ShipSizeDestroyer,
	ShipSizeTorpedoBoat, ShipSizeTorpedoBoat, ShipSizeTorpedoBoat, ShipSizeTorpedoBoat,
}

// FleetCells is the number of ship cells of a complete fleet.
const FleetCells = 20

type Ship struct {
	Anchor      Coordinates `json:"anchor"`
	Size        int         `json:"size"`
	Orientation uint8       `json:"orientation"`
}

func NewShip(anchor Coordinates, size int, orientation uint8) Ship {
	return Ship{Anchor: anchor, Size: size, Orientation: orientation}
}

// Cells returns the run of cells covered by the ship starting at the
// anchor and going right (horizontal) or down (vertical). Cells may
// fall outside the grid; CanPlaceShip checks that.
func (s Ship) Cells() []Coordinates {
	cells := make([]Coordinates, 0, s.Size)
	for i := 0; i < s.Size; i++ {
		if s.Orientation == OrientationHorizontal {
			cells = append(cells, NewCoordinates(s.Anchor.Row, s.Anchor.Col+i))
		} else {
			cells = append(cells, NewCoordinates(s.Anchor.Row+i, s.Anchor.Col))
		}
	}
	return cells
}

func (s Ship) validate() error {
	if s.Size < ShipSizeTorpedoBoat || s.Size > ShipSizeBattleship {
		return cerr.ErrShipSizeInvalid(s.Size)
	}
	if s.Orientation != OrientationHorizontal && s.Orientation != OrientationVertical {
		return cerr.ErrShipOrientationInvalid(s.Orientation)
	}
	return nil
}

// CanPlaceShip reports whether every cell of the ship is inside the grid,
// free, and not touching an occupied cell in any of the 8 directions.
// The check runs before the ship is written, so any occupied neighbour
// belongs to another ship.
func (g *Grid) CanPlaceShip(s Ship) bool {
	return g.checkShip(s) == nil
}

func (g *Grid) checkShip(s Ship) error {
	if err := s.validate(); err != nil {
		return err
	}

	for _, cell := range s.Cells() {
		if !cell.inBound() {
			return cerr.ErrShipOutOfGridBound(cell.Row, cell.Col)
		}
		if g.isShipAt(cell) {
			return cerr.ErrShipPositionTaken(cell.Row, cell.Col)
		}
		for _, n := range cell.Neighbours() {
			if g.isShipAt(n) {
				return cerr.ErrShipPositionTaken(cell.Row, cell.Col)
			}
		}
	}
	return nil
}

// PlaceShip writes the ship onto the grid if the placement rules allow it.
func (g *Grid) PlaceShip(s Ship) error {
	if err := g.checkShip(s); err != nil {
		return err
	}
	for _, cell := range s.Cells() {
		g[cell.Row][cell.Col] = PositionStateShip
	}
	return nil
}

// PlaceFleet builds a grid from a layout chosen by the user. The ship
// sizes must match FleetRoster exactly, in any order.
func PlaceFleet(ships []Ship) (Grid, error) {
	sizes := make([]int, 0, len(ships))
	for _, s := range ships {
		sizes = append(sizes, s.Size)
	}
	if !sameRoster(sizes) {
		return Grid{}, cerr.ErrFleetRosterMismatch(FleetRoster, sizes)
	}

	grid := NewGrid()
	for _, s := range ships {
		if err := grid.PlaceShip(s); err != nil {
			return Grid{}, err
		}
	}
	return grid, nil
}

func sameRoster(sizes []int) bool {
	if len(sizes) != len(FleetRoster) {
		return false
	}
	sorted := slices.Clone(sizes)
	slices.Sort(sorted)
	slices.Reverse(sorted)
	return slices.Equal(sorted, FleetRoster)
}

// ValidateFleet checks a finished grid: FleetCells ship cells, grouped
// into straight runs whose sizes match FleetRoster, with no two runs
// touching, diagonals included.
func ValidateFleet(g Grid) error {
	if cells := g.ShipCells(); cells != FleetCells {
		return cerr.ErrFleetShipCells(FleetCells, cells)
	}

	visited := make(map[Coordinates]bool, FleetCells)
	sizes := make([]int, 0, len(FleetRoster))

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			start := NewCoordinates(row, col)
			if !g.isShipAt(start) || visited[start] {
				continue
			}

			// Ships are found through 8-connected flood fill. Touching ships
			// merge into one blob, which then fails the straightness check.
			blob := g.floodFill(start, visited)
			if !isStraightRun(blob) {
				return cerr.ErrFleetShipNotStraight(start.Row, start.Col)
			}
			sizes = append(sizes, len(blob))
		}
	}

	if !sameRoster(sizes) {
		return cerr.ErrFleetRosterMismatch(FleetRoster, sizes)
	}
	return nil
}

func (g *Grid) floodFill(start Coordinates, visited map[Coordinates]bool) []Coordinates {
	blob := []Coordinates{}
	stack := []Coordinates{start}
	visited[start] = true

	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		blob = append(blob, cell)

		for _, n := range cell.Neighbours() {
			if g.isShipAt(n) && !visited[n] {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return blob
}

func isStraightRun(cells []Coordinates) bool {
	if len(cells) == 1 {
		return true
	}

	minRow, maxRow := cells[0].Row, cells[0].Row
	minCol, maxCol := cells[0].Col, cells[0].Col
	for _, c := range cells[1:] {
		minRow, maxRow = min(minRow, c.Row), max(maxRow, c.Row)
		minCol, maxCol = min(minCol, c.Col), max(maxCol, c.Col)
	}

	// A blob of distinct cells is a straight contiguous run exactly when
	// its bounding box is one cell thick and as long as the blob.
	if minRow == maxRow {
		return maxCol-minCol+1 == len(cells)
	}
	if minCol == maxCol {
		return maxRow-minRow+1 == len(cells)
	}
	return false
}
