package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/ports"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type actorRequest struct {
	ActorID   string `json:"actor_id"`
	ActorRole string `json:"actor_role"`
}

func (r actorRequest) actor() (delivery.Actor, error) {
	id, err := kernel.UUIDFromString(r.ActorID)
	if err != nil {
		return delivery.Actor{}, err
	}
	return delivery.NewActor(id, delivery.Role(r.ActorRole))
}

type proofRequest struct {
	PhotoURL    string `json:"photo_url"`
	Code        string `json:"code"`
	Coordinates string `json:"coordinates"`
}

type updateDeliveryStatusRequest struct {
	actorRequest
	Status string        `json:"status"`
	Proof  *proofRequest `json:"proof"`
}

func (r updateDeliveryStatusRequest) proof() *ports.ProofOfDelivery {
	if r.Proof == nil {
		return nil
	}
	return &ports.ProofOfDelivery{
		PhotoURL:    r.Proof.PhotoURL,
		Code:        r.Proof.Code,
		Coordinates: r.Proof.Coordinates,
	}
}

type setOrderStatusRequest struct {
	actorRequest
	Status string `json:"status"`
}

type assignRequest struct {
	OrderID string `json:"order_id"`
	AgentID string `json:"agent_id"`
}

type assignResponse struct {
	AssignmentID string `json:"assignment_id"`
}

type bulkAssignRequest struct {
	OrderIDs []string `json:"order_ids"`
	AgentID  string   `json:"agent_id"`
	Priority string   `json:"priority"`
}

type reassignRequest struct {
	AgentID string `json:"agent_id"`
	Reason  string `json:"reason"`
}

type assignmentResponse struct {
	AgentID    string    `json:"agent_id"`
	AgentName  string    `json:"agent_name"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assigned_at"`
}

type rankedOrderResponse struct {
	ID             string              `json:"id"`
	Number         string              `json:"number"`
	CustomerName   string              `json:"customer_name"`
	Address        string              `json:"address"`
	DeliveryDate   *string             `json:"delivery_date,omitempty"`
	TimeRange      string              `json:"time_range,omitempty"`
	DeliveryStatus string              `json:"delivery_status"`
	Priority       string              `json:"priority"`
	Urgency        string              `json:"urgency"`
	Score          int                 `json:"score"`
	Total          float64             `json:"total"`
	ItemCount      int                 `json:"item_count"`
	Assignment     *assignmentResponse `json:"assignment,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

type rankedOrdersResponse struct {
	Orders    []rankedOrderResponse `json:"orders"`
	FetchedAt time.Time             `json:"fetched_at"`
}

func rankedOrdersToResponse(resp queries.GetRankedOrdersResponse) rankedOrdersResponse {
	out := rankedOrdersResponse{
		Orders:    make([]rankedOrderResponse, 0, len(resp.Orders)),
		FetchedAt: resp.FetchedAt,
	}
	for _, r := range resp.Orders {
		item := rankedOrderResponse{
			ID:             r.Order.ID.String(),
			Number:         r.Order.Number,
			CustomerName:   r.Order.CustomerName,
			Address:        r.Order.Address.Formatted(),
			TimeRange:      r.Order.TimeRange,
			DeliveryStatus: r.DeliveryStatus.String(),
			Priority:       string(r.Order.Priority),
			Urgency:        string(r.Urgency),
			Score:          r.Score,
			Total:          r.Order.Total,
			ItemCount:      r.Order.ItemCount(),
			CreatedAt:      r.Order.CreatedAt,
		}
		if r.Order.DeliveryDate != nil {
			date := r.Order.DeliveryDate.Format("2006-01-02")
			item.DeliveryDate = &date
		}
		if r.Assignment != nil {
			item.Assignment = &assignmentResponse{
				AgentID:    r.Assignment.AgentID().String(),
				AgentName:  r.Assignment.AgentName(),
				Status:     r.Assignment.Status().String(),
				AssignedAt: r.Assignment.AssignedAt(),
			}
		}
		out.Orders = append(out.Orders, item)
	}
	return out
}

type bulkAssignReportResponse struct {
	Assigned []string                    `json:"assigned"`
	Updated  []string                    `json:"updated"`
	Failed   []bulkAssignFailureResponse `json:"failed"`
}

type bulkAssignFailureResponse struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

func bulkAssignReportToResponse(report ports.BulkAssignReport) bulkAssignReportResponse {
	out := bulkAssignReportResponse{
		Assigned: make([]string, 0, len(report.Assigned)),
		Updated:  make([]string, 0, len(report.Updated)),
		Failed:   make([]bulkAssignFailureResponse, 0, len(report.Failed)),
	}
	for _, id := range report.Assigned {
		out.Assigned = append(out.Assigned, id.String())
	}
	for _, id := range report.Updated {
		out.Updated = append(out.Updated, id.String())
	}
	for _, failure := range report.Failed {
		out.Failed = append(out.Failed, bulkAssignFailureResponse{
			OrderID: failure.OrderID.String(),
			Reason:  failure.Reason,
		})
	}
	return out
}

type historyEntryResponse struct {
	OrderID           string    `json:"order_id"`
	PreviousAgentID   *string   `json:"previous_agent_id,omitempty"`
	PreviousAgentName string    `json:"previous_agent_name,omitempty"`
	NewAgentID        string    `json:"new_agent_id"`
	NewAgentName      string    `json:"new_agent_name"`
	Reason            string    `json:"reason,omitempty"`
	Reassignment      bool      `json:"reassignment"`
	CreatedAt         time.Time `json:"created_at"`
}

func historyToResponse(trail []delivery.HistoryEntry) []historyEntryResponse {
	out := make([]historyEntryResponse, 0, len(trail))
	for _, entry := range trail {
		item := historyEntryResponse{
			OrderID:           entry.OrderID.String(),
			PreviousAgentName: entry.PreviousAgentName,
			NewAgentID:        entry.NewAgentID.String(),
			NewAgentName:      entry.NewAgentName,
			Reason:            entry.Reason,
			Reassignment:      entry.IsReassignment(),
			CreatedAt:         entry.CreatedAt,
		}
		if entry.PreviousAgentID != nil {
			prev := entry.PreviousAgentID.String()
			item.PreviousAgentID = &prev
		}
		out = append(out, item)
	}
	return out
}

type workloadResponse struct {
	AgentID   string         `json:"agent_id"`
	AgentName string         `json:"agent_name"`
	ByStatus  map[string]int `json:"by_status"`
	Active    int            `json:"active"`
	Total     int            `json:"total"`
}

type workloadsResponse struct {
	Workloads []workloadResponse `json:"workloads"`
	Stale     bool               `json:"stale"`
}

func workloadsToResponse(workloads []agent.Workload, stale bool) workloadsResponse {
	out := workloadsResponse{
		Workloads: make([]workloadResponse, 0, len(workloads)),
		Stale:     stale,
	}
	for _, w := range workloads {
		byStatus := make(map[string]int, len(w.ByStatus))
		for status, count := range w.ByStatus {
			byStatus[status.String()] = count
		}
		out.Workloads = append(out.Workloads, workloadResponse{
			AgentID:   w.AgentID.String(),
			AgentName: w.AgentName,
			ByStatus:  byStatus,
			Active:    w.Active(),
			Total:     w.Total(),
		})
	}
	return out
}

type agentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

func agentsToResponse(agents []agent.Agent) []agentResponse {
	out := make([]agentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, agentResponse{
			ID:    a.ID.String(),
			Name:  a.Name,
			Phone: a.Phone,
			Email: a.Email,
		})
	}
	return out
}

type notificationResponse struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	OrderID     string     `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	OldStatus   string     `json:"old_status,omitempty"`
	NewStatus   string     `json:"new_status"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

func notificationsToResponse(listed []notification.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(listed))
	for _, n := range listed {
		out = append(out, notificationResponse{
			ID:          n.ID.String(),
			Kind:        string(n.Kind),
			OrderID:     n.OrderID.String(),
			OrderNumber: n.OrderNumber,
			OldStatus:   string(n.OldStatus),
			NewStatus:   string(n.NewStatus),
			Message:     n.Message,
			CreatedAt:   n.CreatedAt,
			ReadAt:      n.ReadAt,
		})
	}
	return out
}
