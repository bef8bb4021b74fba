package battleship

import (
	"errors"
	"math/rand/v2"
	"testing"

	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

// fixedGenerator hands out FallbackFleet and counts calls.
type fixedGenerator struct {
	calls int
}

func (f *fixedGenerator) Generate() Grid {
	f.calls++
	return FallbackFleet()
}

func newTestGame() (*Game, *fixedGenerator) {
	gen := &fixedGenerator{}
	return newGame("test01", gen), gen
}

func TestNewGameState(t *testing.T) {
	game, gen := newTestGame()

	if gen.calls != 1 {
		t.Fatalf("expected generator calls: %d\tgot: %d", 1, gen.calls)
	}
	if game.PlayerGrid.ShipCells() != FleetCells {
		t.Fatalf("expected player ship cells: %d\tgot: %d", FleetCells, game.PlayerGrid.ShipCells())
	}
	if game.OpponentGrid.ShipCells() != 0 {
		t.Fatalf("expected empty opponent grid\tgot: %d", game.OpponentGrid.ShipCells())
	}
	if game.IncomingShots.Len() != 0 || game.OutgoingShots.Len() != 0 {
		t.Fatal("expected no marks in a new game")
	}
	if game.PendingMark != MarkMiss {
		t.Fatalf("expected pending mark miss\tgot: %s", MarkName(game.PendingMark))
	}
}

func TestMarkPlayerGrid(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		mark   uint8
	}{
		{name: "battleship cell", coords: NewCoordinates(0, 2), mark: MarkHit},
		{name: "torpedo boat", coords: NewCoordinates(4, 9), mark: MarkHit},
		{name: "water", coords: NewCoordinates(9, 9), mark: MarkMiss},
		{name: "gap between ships", coords: NewCoordinates(0, 4), mark: MarkMiss},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game, _ := newTestGame()

			mark, inserted, err := game.MarkPlayerGrid(test.coords)
			if err != nil {
				t.Fatal(err)
			}
			if !inserted || mark != test.mark {
				t.Fatalf("expected mark: %s inserted\tgot: %s inserted=%t", MarkName(test.mark), MarkName(mark), inserted)
			}

			// repeating never changes the recorded mark
			for i := 0; i < 3; i++ {
				again, inserted, err := game.MarkPlayerGrid(test.coords)
				if err != nil {
					t.Fatal(err)
				}
				if inserted || again != test.mark {
					t.Fatalf("expected unchanged mark: %s\tgot: %s inserted=%t", MarkName(test.mark), MarkName(again), inserted)
				}
			}
		})
	}
}

func TestMarkPlayerGridFirstWriteWinsAfterRandomize(t *testing.T) {
	game := newGame("test02", MustNewRandomFleetGenerator(WithRandomSource(rand.New(rand.NewPCG(7, 7)))))

	var ship, water Coordinates
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c := NewCoordinates(row, col)
			if isShip, _ := game.PlayerGrid.IsShip(c); isShip {
				ship = c
			} else {
				water = c
			}
		}
	}

	shipMark, _, _ := game.MarkPlayerGrid(ship)
	waterMark, _, _ := game.MarkPlayerGrid(water)
	if shipMark != MarkHit || waterMark != MarkMiss {
		t.Fatalf("expected hit and miss\tgot: %s and %s", MarkName(shipMark), MarkName(waterMark))
	}

	// the fleet moves, the recorded marks stay
	game.Randomize()
	if got, _ := game.IncomingShots.Get(ship); got != MarkHit {
		t.Fatalf("expected recorded hit to survive randomize\tgot: %s", MarkName(got))
	}
	if got, _, _ := game.MarkPlayerGrid(water); got != MarkMiss {
		t.Fatalf("expected first write to win\tgot: %s", MarkName(got))
	}
}

func TestMarkOpponentGridUsesPendingMark(t *testing.T) {
	game, _ := newTestGame()
	c := NewCoordinates(3, 3)

	if err := game.SetPendingMark(MarkHit); err != nil {
		t.Fatal(err)
	}
	mark, inserted, err := game.MarkOpponentGrid(c)
	if err != nil {
		t.Fatal(err)
	}
	if !inserted || mark != MarkHit {
		t.Fatalf("expected hit inserted\tgot: %s inserted=%t", MarkName(mark), inserted)
	}

	if err := game.SetPendingMark(MarkMiss); err != nil {
		t.Fatal(err)
	}
	mark, inserted, err = game.MarkOpponentGrid(c)
	if err != nil {
		t.Fatal(err)
	}
	if inserted || mark != MarkHit {
		t.Fatalf("expected hit to stay\tgot: %s inserted=%t", MarkName(mark), inserted)
	}

	other, _, _ := game.MarkOpponentGrid(NewCoordinates(3, 4))
	if other != MarkMiss {
		t.Fatalf("expected pending miss on a new cell\tgot: %s", MarkName(other))
	}

	if err := game.SetPendingMark(MarkUnset); !errors.Is(err, cerr.ErrInvalidMark) {
		t.Fatalf("expected ErrInvalidMark\tgot: %v", err)
	}
}

func TestUnmark(t *testing.T) {
	game, _ := newTestGame()
	c := NewCoordinates(0, 0)

	if _, _, err := game.Mark(GridKindPlayer, c); err != nil {
		t.Fatal(err)
	}
	if err := game.Unmark(GridKindPlayer, c); err != nil {
		t.Fatal(err)
	}
	if mark, _ := game.IncomingShots.Get(c); mark != MarkUnset {
		t.Fatalf("expected no entry for А1\tgot: %s", MarkName(mark))
	}

	if _, _, err := game.Mark(GridKindOpponent, c); err != nil {
		t.Fatal(err)
	}
	if err := game.Unmark(GridKindOpponent, c); err != nil {
		t.Fatal(err)
	}
	if game.OutgoingShots.Len() != 0 {
		t.Fatalf("expected empty outgoing shots\tgot: %d", game.OutgoingShots.Len())
	}

	if _, _, err := game.Mark(7, c); !errors.Is(err, cerr.ErrInvalidGridKind) {
		t.Fatalf("expected ErrInvalidGridKind\tgot: %v", err)
	}
	if err := game.Unmark(7, c); !errors.Is(err, cerr.ErrInvalidGridKind) {
		t.Fatalf("expected ErrInvalidGridKind\tgot: %v", err)
	}
	if _, _, err := game.Mark(GridKindPlayer, NewCoordinates(10, 10)); !errors.Is(err, cerr.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate\tgot: %v", err)
	}
}

func TestRandomizeReplacesLayout(t *testing.T) {
	game := newGame("test03", MustNewRandomFleetGenerator(WithRandomSource(rand.New(rand.NewPCG(1, 2)))))

	for i := 0; i < 2; i++ {
		game.Randomize()
		if err := ValidateFleet(game.PlayerGrid); err != nil {
			t.Fatalf("randomize %d: %v", i+1, err)
		}
	}
}

func TestPlaceFleetKeepsLayoutOnError(t *testing.T) {
	game, _ := newTestGame()
	before := game.PlayerGrid

	if err := game.PlaceFleet(fallbackShips[:3]); !errors.Is(err, cerr.ErrInvalidFleet) {
		t.Fatalf("expected ErrInvalidFleet\tgot: %v", err)
	}
	if game.PlayerGrid != before {
		t.Fatal("rejected layout must not replace the fleet")
	}

	ships := []Ship{
		NewShip(NewCoordinates(9, 0), 4, OrientationHorizontal),
		NewShip(NewCoordinates(0, 9), 3, OrientationVertical),
		NewShip(NewCoordinates(4, 9), 3, OrientationVertical),
		NewShip(NewCoordinates(0, 0), 2, OrientationVertical),
		NewShip(NewCoordinates(0, 2), 2, OrientationVertical),
		NewShip(NewCoordinates(0, 4), 2, OrientationVertical),
		NewShip(NewCoordinates(5, 0), 1, OrientationVertical),
		NewShip(NewCoordinates(5, 2), 1, OrientationVertical),
		NewShip(NewCoordinates(5, 4), 1, OrientationVertical),
		NewShip(NewCoordinates(5, 6), 1, OrientationVertical),
	}
	if err := game.PlaceFleet(ships); err != nil {
		t.Fatal(err)
	}
	if isShip, _ := game.PlayerGrid.IsShip(NewCoordinates(9, 3)); !isShip {
		t.Fatal("expected battleship at Г10")
	}
	if err := ValidateFleet(game.PlayerGrid); err != nil {
		t.Fatal(err)
	}
}

func TestRestart(t *testing.T) {
	game, gen := newTestGame()

	_ = game.SetPendingMark(MarkHit)
	_, _, _ = game.MarkPlayerGrid(NewCoordinates(0, 0))
	_, _, _ = game.MarkOpponentGrid(NewCoordinates(1, 1))

	game.Restart()

	if gen.calls != 2 {
		t.Fatalf("expected generator calls: %d\tgot: %d", 2, gen.calls)
	}
	if game.IncomingShots.Len() != 0 || game.OutgoingShots.Len() != 0 {
		t.Fatal("expected both mark sets to be empty")
	}
	if game.PendingMark != MarkMiss {
		t.Fatalf("expected pending mark miss\tgot: %s", MarkName(game.PendingMark))
	}
	if game.PlayerGrid.ShipCells() != FleetCells || game.OpponentGrid.ShipCells() != 0 {
		t.Fatal("unexpected grids after restart")
	}
}

func TestCellState(t *testing.T) {
	game, _ := newTestGame()
	_ = game.SetPendingMark(MarkHit)

	_, _, _ = game.MarkPlayerGrid(NewCoordinates(0, 0))   // ship: hit
	_, _, _ = game.MarkPlayerGrid(NewCoordinates(9, 9))   // water: miss
	_, _, _ = game.MarkOpponentGrid(NewCoordinates(0, 1)) // pending hit

	tests := []struct {
		name   string
		kind   uint8
		coords Coordinates
		state  uint8
	}{
		{name: "own hit ship", kind: GridKindPlayer, coords: NewCoordinates(0, 0), state: CellStateHit},
		{name: "own ship", kind: GridKindPlayer, coords: NewCoordinates(0, 1), state: CellStateShip},
		{name: "own miss", kind: GridKindPlayer, coords: NewCoordinates(9, 9), state: CellStateMiss},
		{name: "own water", kind: GridKindPlayer, coords: NewCoordinates(8, 8), state: CellStateEmpty},
		{name: "opponent hit", kind: GridKindOpponent, coords: NewCoordinates(0, 1), state: CellStateHit},
		{name: "opponent unknown", kind: GridKindOpponent, coords: NewCoordinates(0, 0), state: CellStateEmpty},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state, err := game.CellState(test.kind, test.coords)
			if err != nil {
				t.Fatal(err)
			}
			if state != test.state {
				t.Fatalf("expected state: %d\tgot: %d", test.state, state)
			}
		})
	}

	view := game.View()
	if view.Player[0][0] != CellStateHit || view.Player[0][1] != CellStateShip || view.Opponent[0][1] != CellStateHit {
		t.Fatalf("view does not match cell states: %+v", view)
	}

	stats := game.Stats()
	expected := GameStats{IncomingHits: 1, IncomingMisses: 1, OutgoingHits: 1}
	if stats != expected {
		t.Fatalf("expected stats: %+v\tgot: %+v", expected, stats)
	}
}
