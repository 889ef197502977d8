package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/harborview/fleetwatch"
	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/present/rest/presenter"
	"github.com/harborview/fleetwatch/internal/service"
	"github.com/harborview/fleetwatch/internal/usecase"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type Handler struct {
	visibility *usecase.VisibilityUsecase
	tracking   *usecase.TrackingUsecase
	quota      *usecase.QuotaUsecase
	catalog    *usecase.CatalogUsecase
	directory  *usecase.DirectoryUsecase
	alert      *service.AlertService
	signal     *service.SignalService
}

func NewHandler(
	visibility *usecase.VisibilityUsecase,
	tracking *usecase.TrackingUsecase,
	quota *usecase.QuotaUsecase,
	catalog *usecase.CatalogUsecase,
	directory *usecase.DirectoryUsecase,
	alert *service.AlertService,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		visibility: visibility,
		tracking:   tracking,
		quota:      quota,
		catalog:    catalog,
		directory:  directory,
		alert:      alert,
		signal:     signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/vessels", h.handleSearchVessels)
	e.GET("/api/v1/ais", h.handleAisLookup)
	e.GET("/api/v1/tracked", h.handleListTracked)
	e.POST("/api/v1/tracked", h.handleAddToTrack)
	e.POST("/api/v1/tracked/import", h.handleImport)
	e.GET("/api/v1/tracked/inport", h.handleListInPort)
	e.POST("/api/v1/sales/import", h.handleSalesImport)
	e.GET("/api/v1/sales", h.handleListSales)
	e.GET("/api/v1/organizations/:orgId/quota", h.handleQuota)
	e.GET("/api/v1/users", h.handleListUsers)
	e.POST("/api/v1/alerts", h.handleSendAlert)
	e.GET("/realtime", h.handleRealtime)
}

// requester pulls the identity resolved by the auth middleware. A request
// that never authenticated carries RoleUnknown and is denied by policy.
func requester(c echo.Context) domain.Identity {
	if identity, ok := c.Request().Context().Value(domain.IdentityCtxKey).(domain.Identity); ok {
		return identity
	}
	return domain.Identity{Role: domain.RoleUnknown}
}

func (h *Handler) handleSearchVessels(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("search")

	page := 1
	if pageStr := c.QueryParam("page"); pageStr != "" {
		pageInt, err := strconv.Atoi(pageStr)
		if err != nil || pageInt < 1 {
			return presenter.BadRequestMessage(c, "invalid page parameter")
		}
		page = pageInt
	}

	limit := defaultSearchLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limitInt, err := strconv.Atoi(limitStr)
		if err != nil || limitInt < 1 {
			return presenter.BadRequestMessage(c, "invalid limit parameter")
		}
		limit = limitInt
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	result, err := h.catalog.SearchVessels(ctx, query, page, limit)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleAisLookup(c echo.Context) error {
	ctx := c.Request().Context()

	imo, err := strconv.ParseInt(c.QueryParam("imo"), 10, 64)
	if err != nil || imo <= 0 {
		return presenter.BadRequestMessage(c, "imo parameter is required and must be numeric")
	}

	record, err := h.catalog.GetVesselByIMO(ctx, imo)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, record)
}

func (h *Handler) handleListTracked(c echo.Context) error {
	ctx := c.Request().Context()

	vessels, err := h.visibility.VisibleVessels(ctx, requester(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, vessels)
}

func (h *Handler) handleListInPort(c echo.Context) error {
	ctx := c.Request().Context()

	vessels, err := h.visibility.ListInPort(ctx, requester(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, vessels)
}

type addToTrackRequest struct {
	IMO int64 `json:"imoNumber"`
}

type addToTrackResponse struct {
	Status string               `json:"status"`
	Vessel domain.TrackedVessel `json:"vessel"`
}

func (h *Handler) handleAddToTrack(c echo.Context) error {
	ctx := c.Request().Context()

	var req addToTrackRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	link, status, err := h.tracking.AddToTrack(ctx, requester(c), req.IMO)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, addToTrackResponse{
		Status: status.String(),
		Vessel: link,
	})
}

type importRowRequest struct {
	IMO                  string `json:"imo"`
	CaseID               string `json:"caseId,omitempty"`
	SalesQuotationNumber string `json:"salesQuotationNumber,omitempty"`
	SalesResponsible     string `json:"salesResponsible,omitempty"`
	CustomerOwner        string `json:"customerOwner,omitempty"`
	VesselName           string `json:"vesselName,omitempty"`
	Priority             string `json:"priority,omitempty"`
	DateOfLastSentQuote  string `json:"dateOfLastSentQuote,omitempty"`
}

type importRowResponse struct {
	IMO    string `json:"imo"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type importResponse struct {
	Results []importRowResponse `json:"results"`
	Added   int                 `json:"added"`
}

func (h *Handler) handleImport(c echo.Context) error {
	return h.runImport(c, false)
}

func (h *Handler) handleSalesImport(c echo.Context) error {
	return h.runImport(c, true)
}

func (h *Handler) runImport(c echo.Context, withSales bool) error {
	ctx := c.Request().Context()

	var reqRows []importRowRequest
	if err := c.Bind(&reqRows); err != nil {
		return presenter.BadRequest(c, err)
	}
	if len(reqRows) == 0 {
		return presenter.BadRequestMessage(c, "no rows to import")
	}

	rows := make([]usecase.ImportRow, 0, len(reqRows))
	for _, r := range reqRows {
		row := usecase.ImportRow{IMO: r.IMO}
		if withSales {
			row.Sale = &domain.SalesInfo{
				CaseID:          r.CaseID,
				QuotationNumber: r.SalesQuotationNumber,
				Responsible:     r.SalesResponsible,
				CustomerOwner:   r.CustomerOwner,
				VesselName:      r.VesselName,
				Priority:        r.Priority,
				LastQuoteDate:   r.DateOfLastSentQuote,
			}
		}
		rows = append(rows, row)
	}

	results := h.tracking.ImportBatch(ctx, requester(c), rows)

	resp := importResponse{Results: make([]importRowResponse, 0, len(results))}
	for i, r := range results {
		row := importRowResponse{
			IMO:    reqRows[i].IMO,
			Status: r.Status.String(),
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		} else if r.Status == domain.StatusAdded {
			resp.Added++
		}
		resp.Results = append(resp.Results, row)
	}

	return presenter.OK(c, resp)
}

func (h *Handler) handleListSales(c echo.Context) error {
	ctx := c.Request().Context()

	sales, err := h.tracking.SalesForOrg(ctx, requester(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, sales)
}

func (h *Handler) handleQuota(c echo.Context) error {
	ctx := c.Request().Context()

	orgID := c.Param("orgId")
	identity := requester(c)

	// Org members may only read their own allowance.
	if identity.Role != domain.RolePlatformAdmin {
		own, ok := identity.OrgID()
		if !ok || own != orgID {
			return presenter.Forbidden(c, "not a member of this organization")
		}
	}

	status, err := h.quota.Status(ctx, orgID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, status)
}

func (h *Handler) handleListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	identity := requester(c)
	if identity.Role == domain.RoleUnknown || identity.Role == domain.RoleGuest {
		return presenter.Forbidden(c, "directory access denied")
	}

	users, err := h.directory.ListUsers(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, users)
}

func (h *Handler) handleSendAlert(c echo.Context) error {
	ctx := c.Request().Context()

	identity := requester(c)
	if identity.Role == domain.RoleUnknown {
		return presenter.Forbidden(c, "authentication required")
	}

	var alert service.Alert
	if err := c.Bind(&alert); err != nil {
		return presenter.BadRequest(c, err)
	}

	sent, err := h.alert.Send(ctx, identity, alert)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, sent)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	input := make(chan []string)
	defer close(input)
	output := make(chan fleetwatch.Event)
	defer close(output)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{})

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				input <- req.Channels
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", req.Channels),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
