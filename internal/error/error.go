package error

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinate  = errors.New("coordinate out of grid bound")
	ErrPlacementExhausted = errors.New("ship placement attempts exhausted")
	ErrInvalidShip        = errors.New("invalid ship placement")
	ErrInvalidFleet       = errors.New("invalid fleet")
	ErrInvalidMark        = errors.New("invalid mark")
	ErrInvalidGridKind    = errors.New("invalid grid kind")
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrSessionNotAwaitingReconnect(sessionId string) error {
	return fmt.Errorf("session is still connected and cannot be taken over, id: %s", sessionId)
}

func ErrNoActiveGame() error {
	return fmt.Errorf("session has no active game; send new game code first")
}

func ErrRowOrColOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrInvalidCoordinate, row, col)
}

func ErrInvalidCoordinateLabel(label string) error {
	return fmt.Errorf("%w\tlabel: %q", ErrInvalidCoordinate, label)
}

func ErrShipPlacementExhausted(size, attempts int) error {
	return fmt.Errorf("%w\tship size: %d\tattempts: %d", ErrPlacementExhausted, size, attempts)
}

func ErrShipSizeInvalid(size int) error {
	return fmt.Errorf("%w\tsize must be between 1 and 4, got: %d", ErrInvalidShip, size)
}

func ErrShipOrientationInvalid(orientation uint8) error {
	return fmt.Errorf("%w\tunknown orientation: %d", ErrInvalidShip, orientation)
}

func ErrShipOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\tship leaves the grid at row: %d\tcol: %d", ErrInvalidShip, row, col)
}

func ErrShipPositionTaken(row, col int) error {
	return fmt.Errorf("%w\tposition already taken or touching another ship\trow: %d\tcol: %d", ErrInvalidShip, row, col)
}

func ErrFleetRosterMismatch(expected, got []int) error {
	return fmt.Errorf("%w\texpected ship sizes: %v\tgot: %v", ErrInvalidFleet, expected, got)
}

func ErrFleetShipCells(expected, got int) error {
	return fmt.Errorf("%w\texpected ship cells: %d\tgot: %d", ErrInvalidFleet, expected, got)
}

func ErrFleetShipNotStraight(row, col int) error {
	return fmt.Errorf("%w\tship is not a straight run\trow: %d\tcol: %d", ErrInvalidFleet, row, col)
}

func ErrMarkValueInvalid(mark uint8) error {
	return fmt.Errorf("%w\tmark must be hit or miss, got: %d", ErrInvalidMark, mark)
}

func ErrGridKindInvalid(kind uint8) error {
	return fmt.Errorf("%w\tgrid must be player (0) or opponent (1), got: %d", ErrInvalidGridKind, kind)
}
