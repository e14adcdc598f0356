package http

import (
	"errors"
	"fmt"

	"koth/internal/board"
	"koth/internal/core"
	"koth/internal/game"
	"koth/internal/service"

	"github.com/gofiber/fiber/v2"
)

func buildGameResponse(v service.GameView) core.GameResponse {
	return core.GameResponse{
		GameID:   v.ID,
		Turn:     v.Mover.String(),
		State:    v.State.String(),
		Plies:    v.Plies,
		Board:    v.Board.Rows(),
		LastMove: buildMoveInfo(v.LastMove),
	}
}

func buildMoveInfo(res *game.MoveResult) *core.MoveInfo {
	if res == nil {
		return nil
	}
	info := &core.MoveInfo{
		From:        res.From.String(),
		To:          res.To.String(),
		Piece:       res.Piece.String(),
		PlayerColor: res.Player.String(),
	}
	if res.Captured != core.KindNone {
		info.Captured = res.Captured.String()
	}
	return info
}

func buildBoardResponse(snap board.Snapshot) core.BoardResponse {
	resp := core.BoardResponse{Board: snap.ToASCII()}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if o := snap[r][f]; !o.IsEmpty() {
				resp.Squares[r][f] = &core.Square{
					Kind:  o.Kind.String(),
					Color: o.Color.String(),
				}
			}
		}
	}
	return resp
}

// errorStatus maps service and engine errors to a status and error body
func errorStatus(err error) (int, core.ErrorResponse) {
	resp := core.ErrorResponse{Details: err.Error()}

	switch {
	case errors.Is(err, service.ErrGameNotFound):
		resp.Error, resp.Code = "game not found", core.ErrGameNotFound
		return fiber.StatusNotFound, resp
	case errors.Is(err, service.ErrShuttingDown):
		resp.Error, resp.Code = "server shutting down", core.ErrServiceUnavailable
		return fiber.StatusServiceUnavailable, resp
	case errors.Is(err, game.ErrGameOver):
		resp.Error, resp.Code = "game is over", core.ErrGameOver
		return fiber.StatusConflict, resp
	case errors.Is(err, game.ErrMalformedSquare), errors.Is(err, game.ErrOutOfBounds):
		resp.Error, resp.Code = "invalid square", core.ErrInvalidSquare
		return fiber.StatusBadRequest, resp
	case errors.Is(err, game.ErrWrongMover):
		resp.Error, resp.Code = "not your turn", core.ErrWrongTurn
		return fiber.StatusBadRequest, resp
	case errors.Is(err, game.ErrNullMove),
		errors.Is(err, game.ErrEmptyOrigin),
		errors.Is(err, game.ErrFriendlyCapture),
		errors.Is(err, game.ErrIllegalMove):
		resp.Error, resp.Code = "invalid move", core.ErrInvalidMove
		return fiber.StatusBadRequest, resp
	}

	resp.Error, resp.Code = "internal server error", core.ErrInternalError
	return fiber.StatusInternalServerError, resp
}

func sendError(c *fiber.Ctx, err error) error {
	status, resp := errorStatus(err)
	return c.Status(status).JSON(resp)
}

func invalidGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrInvalidRequest,
		Details: fmt.Sprintf("game ID %q must be a valid UUID", c.Params("gameId")),
	})
}
