package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
)

// HandlerFunc processes one remote operation: decode the payload, do the
// work, return the reply data that will be wrapped in a success envelope.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Server is the backend side of the envelope protocol. It dispatches
// POST /rpc/:pattern requests to registered handlers and wraps every
// outcome in the success or error envelope shape.
type Server struct {
	echo     *echo.Echo
	handlers map[string]HandlerFunc
	log      zerolog.Logger
}

// NewServer builds a Server with recovery and request-id middleware.
func NewServer(log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	s := &Server{echo: e, handlers: make(map[string]HandlerFunc), log: log}

	e.POST("/rpc/:pattern", s.dispatch)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return s
}

// Handle registers the handler for an operation pattern. Registration
// happens at startup, before Start; the map is read-only afterwards.
func (s *Server) Handle(pattern string, h HandlerFunc) {
	s.handlers[pattern] = h
}

// Echo exposes the underlying router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start blocks serving RPC requests on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) dispatch(c echo.Context) error {
	pattern := c.Param("pattern")
	handler, ok := s.handlers[pattern]
	if !ok {
		s.log.Warn().Str("pattern", pattern).Msg("unknown operation")
		return s.writeError(c, &ServiceError{
			StatusCode: http.StatusNotFound,
			Code:       domain.CodeInternalUnexpected,
			Message:    "unknown operation: " + pattern,
		})
	}

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return s.writeError(c, &ServiceError{
			StatusCode: http.StatusBadRequest,
			Code:       domain.CodeGatewayBadParameter,
			Message:    "unreadable payload",
		})
	}

	data, err := handler(c.Request().Context(), payload)
	if err != nil {
		se := Classify(err)
		s.log.Warn().Err(err).
			Str("pattern", pattern).
			Int("status", se.StatusCode).
			Int("code", se.Code).
			Msg("operation failed")
		return s.writeError(c, se)
	}

	env, err := NewSuccessEnvelope(http.StatusOK, "ok", data)
	if err != nil {
		s.log.Error().Err(err).Str("pattern", pattern).Msg("encode reply failed")
		return s.writeError(c, Classify(err))
	}
	return c.JSON(http.StatusOK, env)
}

func (s *Server) writeError(c echo.Context, se *ServiceError) error {
	return c.JSON(se.StatusCode, NewErrorEnvelope(se))
}
