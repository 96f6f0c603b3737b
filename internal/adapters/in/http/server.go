// Package http exposes the dispatch core over a JSON API: the ranked order
// list, status mutations, assignment operations, the notification journal,
// and a manual refresh trigger.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Server wires the HTTP surface to the use-case handlers.
type Server struct {
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler
	setOrderStatusHandler       commands.SetOrderStatusCommandHandler
	assignOrderHandler          commands.AssignOrderCommandHandler
	bulkAssignHandler           commands.BulkAssignCommandHandler
	reassignOrderHandler        commands.ReassignOrderCommandHandler

	getRankedOrdersHandler      queries.GetRankedOrdersQueryHandler
	getAgentOrdersHandler       queries.GetAgentOrdersQueryHandler
	getWorkloadHandler          queries.GetWorkloadQueryHandler
	getAssignmentHistoryHandler queries.GetAssignmentHistoryQueryHandler
	getNotificationsHandler     queries.GetNotificationsQueryHandler
	getAvailableAgentsHandler   queries.GetAvailableAgentsQueryHandler

	journal   ports.NotificationJournal
	refresher ForegroundRefresher
}

// ForegroundRefresher is the manual refresh entry point of the sync
// controller.
type ForegroundRefresher interface {
	RefreshNow(ctx context.Context) error
}

// NewServer creates the HTTP server facade.
func NewServer(
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	setOrderStatusHandler commands.SetOrderStatusCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	bulkAssignHandler commands.BulkAssignCommandHandler,
	reassignOrderHandler commands.ReassignOrderCommandHandler,
	getRankedOrdersHandler queries.GetRankedOrdersQueryHandler,
	getAgentOrdersHandler queries.GetAgentOrdersQueryHandler,
	getWorkloadHandler queries.GetWorkloadQueryHandler,
	getAssignmentHistoryHandler queries.GetAssignmentHistoryQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	getAvailableAgentsHandler queries.GetAvailableAgentsQueryHandler,
	journal ports.NotificationJournal,
	refresher ForegroundRefresher,
) *Server {
	return &Server{
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		setOrderStatusHandler:       setOrderStatusHandler,
		assignOrderHandler:          assignOrderHandler,
		bulkAssignHandler:           bulkAssignHandler,
		reassignOrderHandler:        reassignOrderHandler,
		getRankedOrdersHandler:      getRankedOrdersHandler,
		getAgentOrdersHandler:       getAgentOrdersHandler,
		getWorkloadHandler:          getWorkloadHandler,
		getAssignmentHistoryHandler: getAssignmentHistoryHandler,
		getNotificationsHandler:     getNotificationsHandler,
		getAvailableAgentsHandler:   getAvailableAgentsHandler,
		journal:                     journal,
		refresher:                   refresher,
	}
}

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:id/delivery-status", s.UpdateDeliveryStatus)
	api.POST("/orders/:id/status", s.SetOrderStatus)
	api.GET("/orders/:id/history", s.GetAssignmentHistory)
	api.POST("/orders/:id/reassign", s.ReassignOrder)

	api.POST("/assignments", s.AssignOrder)
	api.POST("/assignments/bulk", s.BulkAssign)

	api.GET("/workload", s.GetWorkload)
	api.GET("/agents", s.GetAvailableAgents)
	api.GET("/agents/:id/orders", s.GetAgentOrders)

	api.GET("/notifications", s.GetNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
	api.POST("/notifications/read-all", s.MarkAllNotificationsRead)

	api.POST("/refresh", s.Refresh)

	e.GET("/health", s.Health)
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	criteria := services.ListCriteria{
		Status:     delivery.Status(ctx.QueryParam("status")),
		Assignment: services.AssignmentFilter(ctx.QueryParam("assignment")),
		Search:     ctx.QueryParam("search"),
	}

	query, err := queries.NewGetRankedOrdersQuery(criteria, services.SortMode(ctx.QueryParam("sort")))
	if err != nil {
		return badRequest(ctx, err)
	}

	resp, err := s.getRankedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, rankedOrdersToResponse(resp))
}

// UpdateDeliveryStatus handles POST /api/v1/orders/:id/delivery-status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req updateDeliveryStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	actor, err := req.actor()
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		orderID, delivery.Status(req.Status), actor, req.proof())
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req setOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	actor, err := req.actor()
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetOrderStatusCommand(orderID, order.Status(req.Status), actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.setOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrder handles POST /api/v1/assignments.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var req assignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, err)
	}
	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, agentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	assignmentID, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, assignResponse{AssignmentID: assignmentID.String()})
}

// BulkAssign handles POST /api/v1/assignments/bulk.
func (s *Server) BulkAssign(ctx echo.Context) error {
	var req bulkAssignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, err)
		}
		orderIDs = append(orderIDs, id)
	}
	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewBulkAssignCommand(orderIDs, agentID, order.Priority(req.Priority))
	if err != nil {
		return badRequest(ctx, err)
	}

	report, err := s.bulkAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, bulkAssignReportToResponse(report))
}

// ReassignOrder handles POST /api/v1/orders/:id/reassign.
func (s *Server) ReassignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req reassignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewReassignOrderCommand(orderID, agentID, req.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.reassignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetAssignmentHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetAssignmentHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetAssignmentHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	trail, err := s.getAssignmentHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, historyToResponse(trail))
}

// GetAgentOrders handles GET /api/v1/agents/:id/orders: the field agent's own
// delivery list, most urgent first.
func (s *Server) GetAgentOrders(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetAgentOrdersQuery(agentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	resp, err := s.getAgentOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, rankedOrdersToResponse(resp))
}

// GetWorkload handles GET /api/v1/workload.
func (s *Server) GetWorkload(ctx echo.Context) error {
	workloads, stale, err := s.getWorkloadHandler.Handle(ctx.Request().Context(), queries.NewGetWorkloadQuery())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, workloadsToResponse(workloads, stale))
}

// GetAvailableAgents handles GET /api/v1/agents.
func (s *Server) GetAvailableAgents(ctx echo.Context) error {
	agents, err := s.getAvailableAgentsHandler.Handle(ctx.Request().Context(), queries.NewGetAvailableAgentsQuery())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, agentsToResponse(agents))
}

// GetNotifications handles GET /api/v1/notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, err)
		}
		limit = parsed
	}

	listed, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), queries.NewGetNotificationsQuery(limit))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, notificationsToResponse(listed))
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.journal.MarkRead(ctx.Request().Context(), id); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	updated, err := s.journal.MarkAllRead(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]int64{"updated": updated})
}

// Refresh handles POST /api/v1/refresh: a manual foreground refresh. Calls
// dropped by the busy flag or the interval floor succeed silently.
func (s *Server) Refresh(ctx echo.Context) error {
	if err := s.refresher.RefreshNow(ctx.Request().Context()); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// writeError maps core errors onto HTTP statuses.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrTransitionNotAllowed),
		errors.Is(err, commands.ErrOrderAlreadyAssigned),
		errors.Is(err, commands.ErrOrderNotAssigned),
		errors.Is(err, commands.ErrSameAgentReassignment):
		status = http.StatusConflict
	case errors.Is(err, commands.ErrDispatcherRoleRequired):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	}

	resp := errorResponse{Code: status, Message: err.Error()}
	var rateErr *errs.RateLimitError
	if errors.As(err, &rateErr) && rateErr.RetryAfter > 0 {
		ctx.Response().Header().Set("Retry-After", strconv.Itoa(int(rateErr.RetryAfter.Seconds())))
	}
	return ctx.JSON(status, resp)
}
