package api

import (
	"errors"

	"QuantAI/internal/domain/models"
	"QuantAI/internal/usecase"
	xhttp "QuantAI/pkg/http"
	xlogger "QuantAI/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeskEchoHandler serves the signal desk API.
type DeskEchoHandler struct {
	logger   *xlogger.Logger
	ctrl     *usecase.Controller
	sessions *SessionResolver
}

func NewDeskEchoHandler(logger *xlogger.Logger, ctrl *usecase.Controller, sessions *SessionResolver) *DeskEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &DeskEchoHandler{logger: logger, ctrl: ctrl, sessions: sessions}
}

func (h *DeskEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/markets", h.Markets)

	s := g.Group("", h.sessions.Middleware())
	s.GET("/state", h.State)
	s.DELETE("/state", h.ResetState)
	s.PUT("/input", h.UpdateInput)
	s.POST("/input/market", h.SelectMarket)
	s.POST("/signals", h.Submit)
	s.GET("/signals", h.ListSignals)
	s.DELETE("/signals", h.ClearSignals)
}

func (h *DeskEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *DeskEchoHandler) Markets(c echo.Context) error {
	return xhttp.SuccessResponse(c, newMarketsView())
}

func (h *DeskEchoHandler) State(c echo.Context) error {
	st, err := h.ctrl.Snapshot(c.Request().Context(), SessionID(c))
	if err != nil {
		return h.fail(c, "desk.state", err)
	}
	return xhttp.SuccessResponse(c, newStateView(st))
}

func (h *DeskEchoHandler) ResetState(c echo.Context) error {
	st, err := h.ctrl.Reset(c.Request().Context(), SessionID(c))
	if errors.Is(err, usecase.ErrBusy) {
		return xhttp.AppErrorResponse(c, xhttp.ConflictError("a signal request is already in progress").WithError(err))
	}
	if err != nil {
		return h.fail(c, "desk.reset", err)
	}
	return xhttp.SuccessResponse(c, newStateView(st))
}

func (h *DeskEchoHandler) UpdateInput(c echo.Context) error {
	req := &models.UpdateInputRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	st, err := h.ctrl.UpdateInput(c.Request().Context(), SessionID(c), *req)
	if err != nil {
		return h.fail(c, "desk.update_input", err)
	}
	return xhttp.SuccessResponse(c, newStateView(st))
}

func (h *DeskEchoHandler) SelectMarket(c echo.Context) error {
	req := &models.SelectMarketRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	st, err := h.ctrl.SelectMarket(c.Request().Context(), SessionID(c), models.MarketType(req.MarketType))
	if err != nil {
		return h.fail(c, "desk.select_market", err)
	}
	return xhttp.SuccessResponse(c, newStateView(st))
}

func (h *DeskEchoHandler) Submit(c echo.Context) error {
	sid := SessionID(c)
	out, st, err := h.ctrl.Submit(c.Request().Context(), sid)
	if errors.Is(err, usecase.ErrBusy) {
		return xhttp.AppErrorResponse(c, xhttp.ConflictError("a signal request is already in progress").WithError(err))
	}
	if err != nil {
		return h.fail(c, "desk.submit", err)
	}
	return xhttp.SuccessResponse(c, SubmitView{
		Outcome: newOutcomeView(st.Input, out),
		State:   newStateView(st),
	})
}

func (h *DeskEchoHandler) ListSignals(c echo.Context) error {
	req := &models.ListSignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	st, err := h.ctrl.Snapshot(c.Request().Context(), SessionID(c))
	if err != nil {
		return h.fail(c, "desk.list_signals", err)
	}
	cards := newStateView(st).Signals
	total := int64(len(cards))
	if req.Limit > 0 && req.Limit < len(cards) {
		cards = cards[:req.Limit]
	}
	return xhttp.ListResponse(c, cards, total)
}

func (h *DeskEchoHandler) ClearSignals(c echo.Context) error {
	st, err := h.ctrl.Clear(c.Request().Context(), SessionID(c))
	if err != nil {
		return h.fail(c, "desk.clear", err)
	}
	return xhttp.SuccessResponse(c, newStateView(st))
}

func (h *DeskEchoHandler) fail(c echo.Context, op string, err error) error {
	h.logger.Error(op+" failed", xlogger.String("session", SessionID(c)), xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.InternalError("session state unavailable").WithError(err))
}
