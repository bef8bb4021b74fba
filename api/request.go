package api

import (
	"encoding/json"

	mb "github.com/saeidalz13/seabattle-companion/models/battleship"
	mc "github.com/saeidalz13/seabattle-companion/models/connection"
)

type RequestHandler interface {
	HandleBoard(game *mb.Game, code uint8) mc.Message[mc.RespBoard]
	HandlePlaceFleet(game *mb.Game) mc.Message[mc.RespBoard]
	HandleMark(game *mb.Game) mc.Message[mc.RespMark]
	HandleUnmark(game *mb.Game) mc.Message[mc.RespMark]
	HandleSelectPendingMark(game *mb.Game) mc.Message[mc.RespSelectPendingMark]
}

// Request wraps one incoming frame. Handlers decode the payload they
// expect and never fail; errors travel back in Message.Error.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) *Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return &req
}

func (r *Request) HandleBoard(game *mb.Game, code uint8) mc.Message[mc.RespBoard] {
	resp := mc.NewMessage[mc.RespBoard](code)
	resp.AddPayload(mc.NewRespBoard(game))
	return resp
}

// The user lays out their own fleet. On a rule violation the current
// fleet is kept and the error explains the offending cell.
func (r *Request) HandlePlaceFleet(game *mb.Game) mc.Message[mc.RespBoard] {
	resp := mc.NewMessage[mc.RespBoard](mc.CodePlaceFleet)

	var req mc.Message[mc.ReqPlaceFleet]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid place fleet payload")
		return resp
	}

	if err := game.PlaceFleet(req.Payload.Ships); err != nil {
		resp.AddError(err.Error(), "fleet placement rejected")
		return resp
	}

	resp.AddPayload(mc.NewRespBoard(game))
	return resp
}

// Primary action on a cell. On the player grid the mark is computed from
// the fleet; on the opponent grid the pending mark is used.
func (r *Request) HandleMark(game *mb.Game) mc.Message[mc.RespMark] {
	resp := mc.NewMessage[mc.RespMark](mc.CodeMark)

	var req mc.Message[mc.ReqMark]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid mark payload")
		return resp
	}

	coords, err := req.Payload.Coordinates()
	if err != nil {
		resp.AddError(err.Error(), "invalid cell label")
		return resp
	}

	mark, inserted, err := game.Mark(req.Payload.Grid, coords)
	if err != nil {
		resp.AddError(err.Error(), "mark operation failed")
		return resp
	}

	resp.AddPayload(newRespMark(game, req.Payload.Grid, coords, mark, inserted))
	return resp
}

// Secondary action on a cell.
func (r *Request) HandleUnmark(game *mb.Game) mc.Message[mc.RespMark] {
	resp := mc.NewMessage[mc.RespMark](mc.CodeUnmark)

	var req mc.Message[mc.ReqMark]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid unmark payload")
		return resp
	}

	coords, err := req.Payload.Coordinates()
	if err != nil {
		resp.AddError(err.Error(), "invalid cell label")
		return resp
	}

	if err := game.Unmark(req.Payload.Grid, coords); err != nil {
		resp.AddError(err.Error(), "unmark operation failed")
		return resp
	}

	resp.AddPayload(newRespMark(game, req.Payload.Grid, coords, mb.MarkUnset, false))
	return resp
}

func (r *Request) HandleSelectPendingMark(game *mb.Game) mc.Message[mc.RespSelectPendingMark] {
	resp := mc.NewMessage[mc.RespSelectPendingMark](mc.CodeSelectPendingMark)

	var req mc.Message[mc.ReqSelectPendingMark]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid pending mark payload")
		return resp
	}

	if err := game.SetPendingMark(req.Payload.Mark); err != nil {
		resp.AddError(err.Error(), "pending mark must be hit or miss")
		return resp
	}

	resp.AddPayload(mc.RespSelectPendingMark{PendingMark: game.PendingMark})
	return resp
}

func newRespMark(game *mb.Game, kind uint8, coords mb.Coordinates, mark uint8, inserted bool) mc.RespMark {
	// coords and kind were validated by the game operation
	cellState, _ := game.CellState(kind, coords)
	return mc.RespMark{
		Grid:      kind,
		Row:       coords.Row,
		Col:       coords.Col,
		Label:     coords.Label(),
		Mark:      mark,
		CellState: cellState,
		Inserted:  inserted,
	}
}
