package battleship

import (
	"slices"

	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

const (
	MarkUnset uint8 = iota
	MarkMiss
	MarkHit
)

func MarkName(mark uint8) string {
	switch mark {
	case MarkMiss:
		return "miss"
	case MarkHit:
		return "hit"
	default:
		return "unset"
	}
}

func validateMark(mark uint8) error {
	if mark != MarkHit && mark != MarkMiss {
		return cerr.ErrMarkValueInvalid(mark)
	}
	return nil
}

type MarkedCell struct {
	Coordinates
	Mark uint8 `json:"mark"`
}

// MarkTracker keeps the hit/miss marks recorded on one grid. Only marked
// cells are stored; a missing entry means MarkUnset.
type MarkTracker struct {
	marks map[Coordinates]uint8
}

func NewMarkTracker() *MarkTracker {
	return &MarkTracker{
		marks: make(map[Coordinates]uint8, GridSize),
	}
}

// SetIfAbsent stores mark at c unless c is already marked. The first mark
// wins until it is cleared. The returned bool reports whether the mark
// was inserted.
func (mt *MarkTracker) SetIfAbsent(c Coordinates, mark uint8) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	if err := validateMark(mark); err != nil {
		return false, err
	}

	if _, prs := mt.marks[c]; prs {
		return false, nil
	}
	mt.marks[c] = mark
	return true, nil
}

func (mt *MarkTracker) Clear(c Coordinates) error {
	if err := c.Validate(); err != nil {
		return err
	}
	delete(mt.marks, c)
	return nil
}

func (mt *MarkTracker) Get(c Coordinates) (uint8, error) {
	if err := c.Validate(); err != nil {
		return MarkUnset, err
	}
	return mt.marks[c], nil
}

func (mt *MarkTracker) Len() int {
	return len(mt.marks)
}

// Count returns how many cells carry the given mark.
func (mt *MarkTracker) Count(mark uint8) int {
	var count int
	for _, m := range mt.marks {
		if m == mark {
			count++
		}
	}
	return count
}

// Marks returns the marked cells ordered by row, then column.
func (mt *MarkTracker) Marks() []MarkedCell {
	cells := make([]MarkedCell, 0, len(mt.marks))
	for c, m := range mt.marks {
		cells = append(cells, MarkedCell{Coordinates: c, Mark: m})
	}
	slices.SortFunc(cells, func(a, b MarkedCell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return cells
}

func (mt *MarkTracker) Reset() {
	mt.marks = make(map[Coordinates]uint8, GridSize)
}
