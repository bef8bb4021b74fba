package connection

import (
	mb "github.com/saeidalz13/seabattle-companion/models/battleship"
)

type ReqPlaceFleet struct {
	Ships []mb.Ship `json:"ships"`
}

// Grid is mb.GridKindPlayer or mb.GridKindOpponent. The cell is given
// either by Row and Col or by its board label, e.g. "Б3".
type ReqMark struct {
	Grid  uint8  `json:"grid"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Label string `json:"label,omitempty"`
}

func (r ReqMark) Coordinates() (mb.Coordinates, error) {
	if r.Label != "" {
		return mb.ParseLabel(r.Label)
	}
	return mb.NewCoordinates(r.Row, r.Col), nil
}

type ReqSelectPendingMark struct {
	Mark uint8 `json:"mark"`
}
