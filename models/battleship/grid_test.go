package battleship

import (
	"errors"
	"strings"
	"testing"

	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name    string
		coords  Coordinates
		wantErr bool
	}{
		{name: "top left", coords: NewCoordinates(0, 0)},
		{name: "bottom right", coords: NewCoordinates(9, 9)},
		{name: "negative row", coords: NewCoordinates(-1, 0), wantErr: true},
		{name: "negative col", coords: NewCoordinates(0, -1), wantErr: true},
		{name: "row too big", coords: NewCoordinates(10, 0), wantErr: true},
		{name: "col too big", coords: NewCoordinates(3, 10), wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.coords.Validate()
			if test.wantErr {
				if !errors.Is(err, cerr.ErrInvalidCoordinate) {
					t.Fatalf("expected ErrInvalidCoordinate\tgot: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCoordinatesLabel(t *testing.T) {
	tests := []struct {
		coords Coordinates
		label  string
	}{
		{coords: NewCoordinates(0, 0), label: "А1"},
		{coords: NewCoordinates(2, 1), label: "Б3"},
		{coords: NewCoordinates(9, 9), label: "К10"},
		{coords: NewCoordinates(4, 8), label: "И5"},
		{coords: NewCoordinates(10, 0), label: "?"},
	}

	for _, test := range tests {
		t.Run(test.label, func(t *testing.T) {
			if got := test.coords.Label(); got != test.label {
				t.Fatalf("expected label: %s\tgot: %s", test.label, got)
			}
		})
	}
}

func TestParseLabel(t *testing.T) {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c := NewCoordinates(row, col)
			parsed, err := ParseLabel(c.Label())
			if err != nil {
				t.Fatalf("failed to parse %s: %v", c.Label(), err)
			}
			if parsed != c {
				t.Fatalf("expected: %+v\tgot: %+v", c, parsed)
			}
		}
	}

	invalid := []string{"", "A1", "Л1", "А0", "А11", "Бx", " К ", "А01", "А+1", "А-1", "К010", "Б 3"}
	for _, label := range invalid {
		if _, err := ParseLabel(label); !errors.Is(err, cerr.ErrInvalidCoordinate) {
			t.Fatalf("expected error for label %q\tgot: %v", label, err)
		}
	}
}

func TestNeighbours(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		count  int
	}{
		{name: "corner", coords: NewCoordinates(0, 0), count: 3},
		{name: "edge", coords: NewCoordinates(0, 5), count: 5},
		{name: "middle", coords: NewCoordinates(5, 5), count: 8},
		{name: "opposite corner", coords: NewCoordinates(9, 9), count: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := len(test.coords.Neighbours()); got != test.count {
				t.Fatalf("expected neighbours: %d\tgot: %d", test.count, got)
			}
		})
	}
}

func TestGridAccessors(t *testing.T) {
	grid := NewGrid()
	if grid.ShipCells() != 0 {
		t.Fatalf("expected empty grid\tgot: %d ship cells", grid.ShipCells())
	}

	if err := grid.PlaceShip(NewShip(NewCoordinates(1, 1), 2, OrientationVertical)); err != nil {
		t.Fatal(err)
	}

	isShip, err := grid.IsShip(NewCoordinates(2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !isShip {
		t.Fatal("expected ship at Б3")
	}

	if _, err := grid.IsShip(NewCoordinates(0, 10)); !errors.Is(err, cerr.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate\tgot: %v", err)
	}
	if _, err := grid.At(NewCoordinates(-1, 3)); !errors.Is(err, cerr.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate\tgot: %v", err)
	}
}

func TestGridString(t *testing.T) {
	grid := NewGrid()
	_ = grid.PlaceShip(NewShip(NewCoordinates(0, 0), 3, OrientationHorizontal))

	lines := strings.Split(strings.TrimRight(grid.String(), "\n"), "\n")
	if len(lines) != GridSize+1 {
		t.Fatalf("expected lines: %d\tgot: %d", GridSize+1, len(lines))
	}
	if !strings.Contains(lines[0], "А") || !strings.Contains(lines[0], "К") {
		t.Fatalf("header misses column letters: %q", lines[0])
	}
	if lines[1] != "  1 # # # . . . . . . ." {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[10], " 10") {
		t.Fatalf("unexpected last row: %q", lines[10])
	}
}
