package http

import (
	"strconv"

	"koth/internal/core"

	"github.com/gofiber/fiber/v2"
)

// CreateGame starts a game from the standard position
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	gameID, err := h.svc.CreateGame()
	if err != nil {
		return sendError(c, err)
	}

	v, err := h.svc.View(gameID)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(buildGameResponse(v))
}

// GetGame returns the game state. With ?wait=true&plies=N it long-polls until
// the ply count differs from N or the wait times out.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	v, err := h.svc.View(gameID)
	if err != nil {
		return sendError(c, err)
	}

	if c.Query("wait", "false") != "true" {
		return c.JSON(buildGameResponse(v))
	}

	plies, err := strconv.Atoi(c.Query("plies", "-1"))
	if err != nil {
		plies = -1
	}
	if plies != v.Plies {
		return c.JSON(buildGameResponse(v))
	}

	ctx := c.Context()
	notify := h.svc.RegisterWait(gameID, plies, ctx)

	select {
	case <-notify:
		// Changed, deleted, or timed out: report whatever is current
		v, err = h.svc.View(gameID)
		if err != nil {
			return sendError(c, err)
		}
		return c.JSON(buildGameResponse(v))

	case <-ctx.Done():
		return nil
	}
}

// MakeMove submits a move for the player to move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, ok := c.Locals("validatedBody").(*core.MoveRequest)
	if !ok || req == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
	}

	v, err := h.svc.MakeMove(gameID, req.From, req.To)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(buildGameResponse(v))
}

// DeleteGame drops a game from memory
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	if err := h.svc.DeleteGame(gameID); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns the ASCII board and per-square occupancy
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	v, err := h.svc.View(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(buildBoardResponse(v.Board))
}
