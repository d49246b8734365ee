package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/chirper/social-system/internal/rpc"
)

// respond writes the canonical success envelope. Every successful gateway
// reply goes through here so clients see one shape everywhere.
func respond(c echo.Context, status int, message string, data any) error {
	env, err := rpc.NewSuccessEnvelope(status, message, data)
	if err != nil {
		return err
	}
	return c.JSON(status, env)
}
