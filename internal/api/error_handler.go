package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/domain"
	mongostore "github.com/99minutos/user-service/internal/infrastructure/db/mongo"
)

const (
	validationMessage  = "Validation Error!"
	invalidJSONError   = "Invalid JSON!"
	internalError      = "Some Internal Server Error!"
	internalMessage    = "internal server error"
	routeNotFoundKind  = "route_not_found"
	storageFailureKind = "storage"
)

// fieldError is a single entry of a validation envelope.
type fieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type validationResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    []fieldError `json:"data"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type malformedResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type internalResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// resolution is the outcome of classifying an error.
type resolution struct {
	code int
	body any
	kind string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Turns unmatched routes into the route-not-found envelope.
//   - Classifies every other error into exactly one client-facing envelope.
//   - Logs the full error server side and never echoes internal details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		res, ok := routeNotFound(err, c)
		if !ok {
			res = resolveError(err)
		}
		metrics.ErrorsTotal.WithLabelValues(res.kind).Inc()
		logError(log, err, c, res)

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(res.code)
			return
		}
		_ = c.JSON(res.code, res.body)
	}
}

// routeNotFound is the final fallback stage for requests no route matched.
func routeNotFound(err error, c echo.Context) (resolution, bool) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return resolution{}, false
	}
	if he.Code != http.StatusNotFound && he.Code != http.StatusMethodNotAllowed {
		return resolution{}, false
	}

	req := c.Request()
	uri := req.RequestURI
	if uri == "" {
		uri = req.URL.RequestURI()
	}
	return resolution{
		code: http.StatusNotFound,
		body: failureResponse{
			Success: false,
			Message: fmt.Sprintf("The route '%s %s' doesn't exists on the API!", req.Method, uri),
		},
		kind: routeNotFoundKind,
	}, true
}

// resolveError applies the classification table; the first match wins.
func resolveError(err error) resolution {
	if de, ok := domain.AsError(err); ok {
		return resolveDomainError(de)
	}

	if field, value, ok := mongostore.DuplicateKey(err); ok {
		return resolveDomainError(domain.NewConflictError(field, value, err))
	}

	if cause, ok := jsonCause(err); ok {
		return malformed(cause)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return internal(domain.KindInternal.String())
		}
		return resolution{
			code: he.Code,
			body: failureResponse{Success: false, Message: fmt.Sprintf("%v", he.Message)},
			kind: fmt.Sprintf("http_%d", he.Code),
		}
	}

	if mongostore.IsStorageFailure(err) {
		return internal(storageFailureKind)
	}

	return internal(domain.KindInternal.String())
}

func resolveDomainError(de *domain.Error) resolution {
	switch de.Kind {
	case domain.KindValidation:
		return resolution{
			code: http.StatusBadRequest,
			body: validationResponse{Success: false, Message: validationMessage, Data: violationEntries(de.Violations)},
			kind: de.Kind.String(),
		}
	case domain.KindConflict:
		data := make([]fieldError, 0, len(de.Violations))
		for _, v := range de.Violations {
			data = append(data, fieldError{Path: v.Field, Message: fmt.Sprintf("The value '%s' is duplicate.", v.Value)})
		}
		return resolution{
			code: http.StatusBadRequest,
			body: validationResponse{Success: false, Message: validationMessage, Data: data},
			kind: de.Kind.String(),
		}
	case domain.KindNotFound:
		return resolution{
			code: http.StatusNotFound,
			body: failureResponse{Success: false, Message: de.Message},
			kind: de.Kind.String(),
		}
	case domain.KindMalformedRequest:
		return malformed(de.Err)
	case domain.KindInternal:
		if mongostore.IsStorageFailure(de) {
			return internal(storageFailureKind)
		}
		return internal(de.Kind.String())
	default:
		return internal(domain.KindInternal.String())
	}
}

// violationEntries renders one {path, message} entry per violated field.
func violationEntries(violations []domain.FieldViolation) []fieldError {
	out := make([]fieldError, 0, len(violations))
	for _, v := range violations {
		out = append(out, fieldError{Path: v.Field, Message: violationMessage(v)})
	}
	return out
}

func violationMessage(v domain.FieldViolation) string {
	switch v.Kind {
	case domain.ViolationEnum:
		return fmt.Sprintf("Invalid value '%s' for '%s', valid values are %s", v.Value, v.Field, strings.Join(v.Allowed, ", "))
	case domain.ViolationRequired:
		return fmt.Sprintf("'%s' is required", v.Field)
	case domain.ViolationUnique:
		return fmt.Sprintf("'%s' must be unique", v.Field)
	case domain.ViolationIdentifier:
		return fmt.Sprintf("'%s' must be a valid identifier", v.Field)
	case domain.ViolationDate:
		return fmt.Sprintf("'%s' must be a valid date", v.Field)
	default:
		return v.Message
	}
}

// jsonCause returns the decoder error buried in err, if any.
func jsonCause(err error) (error, bool) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr, true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr, true
	}
	return nil, false
}

func malformed(cause error) resolution {
	msg := "request body could not be parsed"
	if cause != nil {
		msg = cause.Error()
	}
	return resolution{
		code: http.StatusBadRequest,
		body: malformedResponse{Success: false, Error: invalidJSONError, Message: msg},
		kind: domain.KindMalformedRequest.String(),
	}
}

func internal(kind string) resolution {
	return resolution{
		code: http.StatusInternalServerError,
		body: internalResponse{Error: internalError, Message: internalMessage},
		kind: kind,
	}
}

func logError(log zerolog.Logger, err error, c echo.Context, res resolution) {
	evt := log.Warn()
	msg := "request failed"
	if res.code >= http.StatusInternalServerError {
		evt = log.Error()
		msg = "unhandled error"
		if res.kind == storageFailureKind {
			msg = "storage failure"
		}
	}

	evt.Err(err).
		Int("status", res.code).
		Str("kind", res.kind).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("uri", c.Request().RequestURI).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}
