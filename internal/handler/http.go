// Package handler exposes the cosplay engine over HTTP and maps the
// service's sentinel errors onto status codes. Authentication itself is an
// upstream concern; the caller identity arrives via the X-User-ID header set
// by the gateway.
package handler

import (
	"errors"
	"net/http"

	"cosplay-server/internal/models"
	"cosplay-server/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserIDHeader carries the authenticated caller id, set by the gateway.
const UserIDHeader = "X-User-ID"

// RequestValidator adapts go-playground/validator to echo's Validator hook.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the echo request validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// CosplayHandler handles HTTP requests for the cosplay engine.
type CosplayHandler struct {
	service service.CosplayService
	logger  *zap.Logger
}

// NewCosplayHandler creates a new CosplayHandler.
func NewCosplayHandler(s service.CosplayService, logger *zap.Logger) *CosplayHandler {
	return &CosplayHandler{
		service: s,
		logger:  logger.Named("CosplayHandler"),
	}
}

// RegisterRoutes registers the cosplay routes.
func (h *CosplayHandler) RegisterRoutes(e *echo.Echo) {
	group := e.Group("/cosplay")
	{
		group.GET("/scripts", h.listScripts)
		group.GET("/scripts/:id", h.getScriptDetail)
		group.POST("/scripts/:id/sessions", h.startSession)
		group.GET("/sessions/:id", h.getSessionState)
		group.POST("/sessions/:id/choice", h.chooseOption)
		group.GET("/sessions/:id/report", h.getReport)
	}
}

func (h *CosplayHandler) listScripts(c echo.Context) error {
	scripts, err := h.service.ListScripts(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, ScriptListResponse{Scripts: scripts})
}

func (h *CosplayHandler) getScriptDetail(c echo.Context) error {
	scriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "invalid script id"})
	}

	detail, err := h.service.GetScriptDetail(c.Request().Context(), scriptID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, ScriptDetailResponse{Script: detail})
}

func (h *CosplayHandler) startSession(c echo.Context) error {
	scriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "invalid script id"})
	}
	userID, err := userIDFromRequest(c)
	if err != nil {
		return err
	}

	// The body is optional; resume defaults to true.
	resume := true
	var req StartSessionRequest
	if err := c.Bind(&req); err == nil && req.Resume != nil {
		resume = *req.Resume
	}

	state, err := h.service.StartSession(c.Request().Context(), scriptID, userID, resume)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, SessionStateResponse{State: state})
}

func (h *CosplayHandler) getSessionState(c echo.Context) error {
	sessionID, userID, err := sessionRequestIDs(c)
	if err != nil {
		return err
	}

	state, err := h.service.GetSessionState(c.Request().Context(), sessionID, userID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, SessionStateResponse{State: state})
}

func (h *CosplayHandler) chooseOption(c echo.Context) error {
	sessionID, userID, err := sessionRequestIDs(c)
	if err != nil {
		return err
	}

	var req ChoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "option_id is required"})
	}

	result, err := h.service.ChooseOption(c.Request().Context(), sessionID, userID, req.OptionID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CosplayHandler) getReport(c echo.Context) error {
	sessionID, userID, err := sessionRequestIDs(c)
	if err != nil {
		return err
	}

	report, err := h.service.GetReport(c.Request().Context(), sessionID, userID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// sessionRequestIDs extracts the session id from the path and the caller id
// from the identity header. Failures surface as echo HTTP errors, rendered
// by echo's default error handler in the same {"message": ...} shape as
// APIError.
func sessionRequestIDs(c echo.Context) (sessionID, userID uuid.UUID, err error) {
	sessionID, parseErr := uuid.Parse(c.Param("id"))
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	userID, err = userIDFromRequest(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return sessionID, userID, nil
}

func userIDFromRequest(c echo.Context) (uuid.UUID, error) {
	raw := c.Request().Header.Get(UserIDHeader)
	if raw == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return userID, nil
}

// errorResponse maps service sentinel errors onto HTTP status codes.
// Content errors are deliberately a 500: malformed script data is an
// authoring bug, never the client's fault.
func (h *CosplayHandler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrScriptNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrReportNotFound):
		return c.JSON(http.StatusNotFound, APIError{Message: err.Error()})
	case errors.Is(err, models.ErrSessionFinished):
		return c.JSON(http.StatusConflict, APIError{Message: err.Error()})
	case errors.Is(err, models.ErrInvalidOption):
		return c.JSON(http.StatusUnprocessableEntity, APIError{Message: err.Error()})
	case errors.Is(err, models.ErrScriptFinished),
		errors.Is(err, models.ErrReportNotReady),
		errors.Is(err, models.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, APIError{Message: err.Error()})
	default:
		h.logger.Error("Unhandled service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, APIError{Message: models.ErrInternalServer.Error()})
	}
}
