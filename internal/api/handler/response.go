package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/core/domain"
)

// envelope is the uniform wrapper of every successful response.
type envelope struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Success: true, Message: message, Data: data})
}

// bindError turns a failed c.Bind into a malformed request error carrying the
// decoder's own message rather than echo's wrapper.
func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		return domain.NewMalformedRequestError(he.Internal)
	}
	return domain.NewMalformedRequestError(err)
}
