package http

import (
	"fmt"
	"strings"

	"koth/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// validationMiddleware parses and validates JSON bodies, storing the result
// under "validatedBody" for the handler
func validationMiddleware(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Next()
	}

	var requestType interface{}
	switch path := c.Path(); {
	case strings.HasSuffix(path, "/moves"):
		requestType = &core.MoveRequest{}
	default:
		return c.Next() // No body expected
	}

	if err := c.BodyParser(requestType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if errs := validate.Struct(requestType); errs != nil {
		var details strings.Builder
		verrs, ok := errs.(validator.ValidationErrors)
		if !ok {
			details.WriteString(errs.Error())
		}
		for _, err := range verrs {
			if details.Len() > 0 {
				details.WriteString("; ")
			}
			switch err.Tag() {
			case "required":
				details.WriteString(fmt.Sprintf("%s is required", err.Field()))
			case "min":
				details.WriteString(fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param()))
			case "max":
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
			default:
				details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
			}
		}

		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: details.String(),
		})
	}

	c.Locals("validatedBody", requestType)
	return c.Next()
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
