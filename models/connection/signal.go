package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID

	// Start a fresh game for this session. Also used as "new game":
	// any game already attached to the session is restarted.
	CodeNewGame

	// Replace the player's fleet with a random layout
	CodeRandomizeFleet

	// Replace the player's fleet with a layout chosen by the user
	CodePlaceFleet

	// Primary action on a cell: record a mark if the cell has none
	CodeMark

	// Secondary action on a cell: remove its mark
	CodeUnmark

	// Toggle the mark applied to the opponent grid (hit or miss)
	CodeSelectPendingMark

	// Ask for a full snapshot of both grids
	CodeBoard

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// any game operation sent before CodeNewGame
	CodeNoActiveGame
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
