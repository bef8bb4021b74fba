package battleship

import (
	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

const (
	GridKindPlayer uint8 = iota
	GridKindOpponent
)

// Display states of a single cell, as the client should render it.
const (
	CellStateEmpty uint8 = iota
	CellStateShip
	CellStateMiss
	CellStateHit
)

// Game is the state of one companion session: the user's own fleet, the
// blank opponent grid, and the marks recorded on each.
//
// IncomingShots are the opponent's shots on the player grid; their value is
// derived from PlayerGrid. OutgoingShots are the user's shots on the
// opponent grid as reported by the opponent; their value is PendingMark.
type Game struct {
	uuid          string
	PlayerGrid    Grid
	OpponentGrid  Grid
	IncomingShots *MarkTracker
	OutgoingShots *MarkTracker
	PendingMark   uint8
	generator     FleetGenerator
}

func newGame(gameUuid string, generator FleetGenerator) *Game {
	return &Game{
		uuid:          gameUuid,
		PlayerGrid:    generator.Generate(),
		OpponentGrid:  NewGrid(),
		IncomingShots: NewMarkTracker(),
		OutgoingShots: NewMarkTracker(),
		PendingMark:   MarkMiss,
		generator:     generator,
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

// Randomize replaces the player's fleet with a new random layout.
// Recorded marks are kept.
func (g *Game) Randomize() {
	g.PlayerGrid = g.generator.Generate()
}

// PlaceFleet replaces the player's fleet with a layout chosen by the user.
// The current fleet is left untouched if the layout breaks a rule.
func (g *Game) PlaceFleet(ships []Ship) error {
	grid, err := PlaceFleet(ships)
	if err != nil {
		return err
	}
	g.PlayerGrid = grid
	return nil
}

// Restart starts a new game in place: new fleet, empty opponent grid,
// no marks and the pending mark back to miss.
func (g *Game) Restart() {
	g.PlayerGrid = g.generator.Generate()
	g.OpponentGrid = NewGrid()
	g.IncomingShots.Reset()
	g.OutgoingShots.Reset()
	g.PendingMark = MarkMiss
}

func (g *Game) SetPendingMark(mark uint8) error {
	if err := validateMark(mark); err != nil {
		return err
	}
	g.PendingMark = mark
	return nil
}

// MarkPlayerGrid records an opponent shot at c. The mark is hit when c
// holds part of the player's fleet and miss otherwise. It returns the mark
// stored at c, which is the earlier one if c was already marked.
func (g *Game) MarkPlayerGrid(c Coordinates) (uint8, bool, error) {
	isShip, err := g.PlayerGrid.IsShip(c)
	if err != nil {
		return MarkUnset, false, err
	}

	mark := MarkMiss
	if isShip {
		mark = MarkHit
	}
	return setAndGet(g.IncomingShots, c, mark)
}

// MarkOpponentGrid records the result of the user's shot at c using the
// pending mark.
func (g *Game) MarkOpponentGrid(c Coordinates) (uint8, bool, error) {
	return setAndGet(g.OutgoingShots, c, g.PendingMark)
}

func setAndGet(mt *MarkTracker, c Coordinates, mark uint8) (uint8, bool, error) {
	inserted, err := mt.SetIfAbsent(c, mark)
	if err != nil {
		return MarkUnset, false, err
	}
	stored, err := mt.Get(c)
	if err != nil {
		return MarkUnset, false, err
	}
	return stored, inserted, nil
}

func (g *Game) UnmarkPlayerGrid(c Coordinates) error {
	return g.IncomingShots.Clear(c)
}

func (g *Game) UnmarkOpponentGrid(c Coordinates) error {
	return g.OutgoingShots.Clear(c)
}

// Mark dispatches to MarkPlayerGrid or MarkOpponentGrid.
func (g *Game) Mark(kind uint8, c Coordinates) (uint8, bool, error) {
	switch kind {
	case GridKindPlayer:
		return g.MarkPlayerGrid(c)
	case GridKindOpponent:
		return g.MarkOpponentGrid(c)
	default:
		return MarkUnset, false, cerr.ErrGridKindInvalid(kind)
	}
}

func (g *Game) Unmark(kind uint8, c Coordinates) error {
	switch kind {
	case GridKindPlayer:
		return g.UnmarkPlayerGrid(c)
	case GridKindOpponent:
		return g.UnmarkOpponentGrid(c)
	default:
		return cerr.ErrGridKindInvalid(kind)
	}
}

// CellState is what the client shows at c. A mark always wins over the
// ship underneath; ships are only shown on the player's own grid.
func (g *Game) CellState(kind uint8, c Coordinates) (uint8, error) {
	var (
		grid  *Grid
		marks *MarkTracker
	)
	switch kind {
	case GridKindPlayer:
		grid, marks = &g.PlayerGrid, g.IncomingShots
	case GridKindOpponent:
		grid, marks = &g.OpponentGrid, g.OutgoingShots
	default:
		return CellStateEmpty, cerr.ErrGridKindInvalid(kind)
	}

	mark, err := marks.Get(c)
	if err != nil {
		return CellStateEmpty, err
	}
	switch mark {
	case MarkHit:
		return CellStateHit, nil
	case MarkMiss:
		return CellStateMiss, nil
	}

	if kind == GridKindPlayer && grid.isShipAt(c) {
		return CellStateShip, nil
	}
	return CellStateEmpty, nil
}

type GridView [GridSize][GridSize]uint8

type GameView struct {
	Player   GridView
	Opponent GridView
}

// View computes the display state of every cell of both grids.
func (g *Game) View() GameView {
	var view GameView
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c := NewCoordinates(row, col)
			// coordinates come from the grid itself, errors are impossible
			view.Player[row][col], _ = g.CellState(GridKindPlayer, c)
			view.Opponent[row][col], _ = g.CellState(GridKindOpponent, c)
		}
	}
	return view
}

type GameStats struct {
	IncomingHits   int `json:"incoming_hits"`
	IncomingMisses int `json:"incoming_misses"`
	OutgoingHits   int `json:"outgoing_hits"`
	OutgoingMisses int `json:"outgoing_misses"`
}

func (g *Game) Stats() GameStats {
	return GameStats{
		IncomingHits:   g.IncomingShots.Count(MarkHit),
		IncomingMisses: g.IncomingShots.Count(MarkMiss),
		OutgoingHits:   g.OutgoingShots.Count(MarkHit),
		OutgoingMisses: g.OutgoingShots.Count(MarkMiss),
	}
}
