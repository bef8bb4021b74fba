package battleship

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"

	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

const (
	defaultMaxAttemptsPerShip = 200
	defaultMaxRestarts        = 50
)

type FleetGenerator interface {
	Generate() Grid
}

// RandomSource is the subset of *rand.Rand the generator needs.
type RandomSource interface {
	IntN(n int) int
}

// RandomFleetGenerator is shared by every session; mu guards rnd.
type RandomFleetGenerator struct {
	rnd                RandomSource
	maxAttemptsPerShip int
	maxRestarts        int
	mu                 sync.Mutex
}

var _ FleetGenerator = (*RandomFleetGenerator)(nil)

type Option func(*RandomFleetGenerator) error

func NewRandomFleetGenerator(optFuncs ...Option) (*RandomFleetGenerator, error) {
	gen := &RandomFleetGenerator{
		maxAttemptsPerShip: defaultMaxAttemptsPerShip,
		maxRestarts:        defaultMaxRestarts,
	}
	for _, opt := range optFuncs {
		if err := opt(gen); err != nil {
			return nil, err
		}
	}
	if gen.rnd == nil {
		gen.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return gen, nil
}

// MustNewRandomFleetGenerator panics on invalid options.
func MustNewRandomFleetGenerator(optFuncs ...Option) *RandomFleetGenerator {
	gen, err := NewRandomFleetGenerator(optFuncs...)
	if err != nil {
		panic(err)
	}
	return gen
}

func WithRandomSource(rnd RandomSource) Option {
	return func(g *RandomFleetGenerator) error {
		if rnd == nil {
			return fmt.Errorf("random source must not be nil")
		}
		g.rnd = rnd
		return nil
	}
}

func WithMaxAttemptsPerShip(attempts int) Option {
	return func(g *RandomFleetGenerator) error {
		if attempts < 1 {
			return fmt.Errorf("max attempts per ship must be positive: %d", attempts)
		}
		g.maxAttemptsPerShip = attempts
		return nil
	}
}

func WithMaxRestarts(restarts int) Option {
	return func(g *RandomFleetGenerator) error {
		if restarts < 1 {
			return fmt.Errorf("max restarts must be positive: %d", restarts)
		}
		g.maxRestarts = restarts
		return nil
	}
}

// Generate returns a grid holding the whole FleetRoster. When a ship cannot
// be placed within maxAttemptsPerShip tries the board is thrown away and
// placement starts over from an empty grid. After maxRestarts failed boards
// the fixed FallbackFleet layout is returned, so the call always terminates
// with a complete fleet.
func (rfg *RandomFleetGenerator) Generate() Grid {
	rfg.mu.Lock()
	defer rfg.mu.Unlock()

	for round := 1; round <= rfg.maxRestarts; round++ {
		grid, err := rfg.placeFleet()
		if err == nil {
			return grid
		}
		if !errors.Is(err, cerr.ErrPlacementExhausted) {
			// placeFleet only fails with exhaustion
			panic(err)
		}
	}

	log.Printf("fleet placement failed %d times; using fallback layout\n", rfg.maxRestarts)
	return FallbackFleet()
}

func (rfg *RandomFleetGenerator) placeFleet() (Grid, error) {
	grid := NewGrid()
	for _, size := range FleetRoster {
		if err := rfg.placeShip(&grid, size); err != nil {
			return Grid{}, err
		}
	}
	return grid, nil
}

func (rfg *RandomFleetGenerator) placeShip(grid *Grid, size int) error {
	for attempt := 0; attempt < rfg.maxAttemptsPerShip; attempt++ {
		orientation := OrientationHorizontal
		if rfg.rnd.IntN(2) == 1 {
			orientation = OrientationVertical
		}
		anchor := NewCoordinates(rfg.rnd.IntN(GridSize), rfg.rnd.IntN(GridSize))

		ship := NewShip(anchor, size, orientation)
		if grid.CanPlaceShip(ship) {
			// cannot fail, the ship was just checked
			_ = grid.PlaceShip(ship)
			return nil
		}
	}
	return cerr.ErrShipPlacementExhausted(size, rfg.maxAttemptsPerShip)
}

// fallbackShips is a fixed valid layout, one ship per FleetRoster entry.
var fallbackShips = []Ship{
	NewShip(NewCoordinates(0, 0), ShipSizeBattleship, OrientationHorizontal),
	NewShip(NewCoordinates(0, 5), ShipSizeCruiser, OrientationHorizontal),
	NewShip(NewCoordinates(2, 0), ShipSizeCruiser, OrientationHorizontal),
	NewShip(NewCoordinates(2, 4), ShipSizeDestroyer, OrientationHorizontal),
	NewShip(NewCoordinates(2, 7), ShipSizeDestroyer, OrientationHorizontal),
	NewShip(NewCoordinates(4, 0), ShipSizeDestroyer, OrientationHorizontal),
	NewShip(NewCoordinates(4, 3), ShipSizeTorpedoBoat, OrientationHorizontal),
	NewShip(NewCoordinates(4, 5), ShipSizeTorpedoBoat, OrientationHorizontal),
	NewShip(NewCoordinates(4, 7), ShipSizeTorpedoBoat, OrientationHorizontal),
	NewShip(NewCoordinates(4, 9), ShipSizeTorpedoBoat, OrientationHorizontal),
}

func FallbackFleet() Grid {
	grid, err := PlaceFleet(fallbackShips)
	if err != nil {
		panic("fallback fleet layout is invalid: " + err.Error())
	}
	return grid
}
