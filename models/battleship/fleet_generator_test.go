package battleship

import (
	"math/rand/v2"
	"testing"
)

// stuckSource always answers 0: every ship is tried horizontally at А1,
// so the second ship of a round can never be placed.
type stuckSource struct {
	calls int
}

func (s *stuckSource) IntN(n int) int {
	s.calls++
	return 0
}

func TestGenerateSatisfiesFleetRules(t *testing.T) {
	for seed := uint64(0); seed < 300; seed++ {
		gen := MustNewRandomFleetGenerator(WithRandomSource(rand.New(rand.NewPCG(seed, 1))))
		grid := gen.Generate()

		if cells := grid.ShipCells(); cells != FleetCells {
			t.Fatalf("seed %d: expected ship cells: %d\tgot: %d", seed, FleetCells, cells)
		}
		if err := ValidateFleet(grid); err != nil {
			t.Fatalf("seed %d: %v\n%s", seed, err, grid.String())
		}
	}
}

func TestGenerateDefaultSource(t *testing.T) {
	gen := MustNewRandomFleetGenerator()
	first := gen.Generate()
	second := gen.Generate()

	for _, grid := range []Grid{first, second} {
		if err := ValidateFleet(grid); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGenerateFallsBackWhenStuck(t *testing.T) {
	source := &stuckSource{}
	gen := MustNewRandomFleetGenerator(
		WithRandomSource(source),
		WithMaxAttemptsPerShip(5),
		WithMaxRestarts(3),
	)

	grid := gen.Generate()
	if grid != FallbackFleet() {
		t.Fatalf("expected fallback fleet\tgot:\n%s", grid.String())
	}

	// per round: first ship in one attempt, second ship fails 5 times,
	// 3 draws (orientation, row, col) per attempt
	expectedCalls := 3 * (1 + 5) * 3
	if source.calls != expectedCalls {
		t.Fatalf("expected random draws: %d\tgot: %d", expectedCalls, source.calls)
	}
}

func TestFallbackFleetIsValid(t *testing.T) {
	if err := ValidateFleet(FallbackFleet()); err != nil {
		t.Fatal(err)
	}
}

func TestGeneratorOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "nil source", opt: WithRandomSource(nil)},
		{name: "zero attempts", opt: WithMaxAttemptsPerShip(0)},
		{name: "negative restarts", opt: WithMaxRestarts(-1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := NewRandomFleetGenerator(test.opt); err == nil {
				t.Fatal("expected option error")
			}
		})
	}
}
