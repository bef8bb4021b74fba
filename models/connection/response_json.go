package connection

import (
	mb "github.com/saeidalz13/seabattle-companion/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

// RespBoard is the full render state of a game. Cells hold
// mb.CellState* values indexed [row][col].
type RespBoard struct {
	GameUuid      string          `json:"game_uuid"`
	PlayerCells   mb.GridView     `json:"player_cells"`
	OpponentCells mb.GridView     `json:"opponent_cells"`
	IncomingMarks []mb.MarkedCell `json:"incoming_marks"`
	OutgoingMarks []mb.MarkedCell `json:"outgoing_marks"`
	PendingMark   uint8           `json:"pending_mark"`
	Stats         mb.GameStats    `json:"stats"`
}

func NewRespBoard(game *mb.Game) RespBoard {
	view := game.View()
	return RespBoard{
		GameUuid:      game.Uuid(),
		PlayerCells:   view.Player,
		OpponentCells: view.Opponent,
		IncomingMarks: game.IncomingShots.Marks(),
		OutgoingMarks: game.OutgoingShots.Marks(),
		PendingMark:   game.PendingMark,
		Stats:         game.Stats(),
	}
}

type RespMark struct {
	Grid      uint8  `json:"grid"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Label     string `json:"label"`
	Mark      uint8  `json:"mark"`
	CellState uint8  `json:"cell_state"`
	Inserted  bool   `json:"inserted"`
}

type RespSelectPendingMark struct {
	PendingMark uint8 `json:"pending_mark"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
