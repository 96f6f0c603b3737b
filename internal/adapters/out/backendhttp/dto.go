package backendhttp

import (
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// dateOnly is the wire format of delivery dates; full RFC3339 timestamps are
// accepted as a fallback.
const dateOnly = "2006-01-02"

type addressDTO struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
	Raw    string `json:"raw"`
}

type itemDTO struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderDTO struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Address       addressDTO `json:"address"`
	DeliveryDate  string     `json:"delivery_date"`
	TimeRange     string     `json:"time_range"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Total         float64    `json:"total"`
	PaymentStatus string     `json:"payment_status"`
	Items         []itemDTO  `json:"items"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (dto orderDTO) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	o := &order.Order{
		ID:            id,
		Number:        dto.Number,
		CustomerName:  dto.CustomerName,
		CustomerPhone: dto.CustomerPhone,
		Address: order.Address{
			Street: dto.Address.Street,
			City:   dto.Address.City,
			Zip:    dto.Address.Zip,
			Raw:    dto.Address.Raw,
		},
		DeliveryDate:  parseDeliveryDate(dto.DeliveryDate),
		TimeRange:     dto.TimeRange,
		Status:        order.Status(dto.Status),
		Priority:      order.NormalizePriority(order.Priority(dto.Priority)),
		Total:         dto.Total,
		PaymentStatus: dto.PaymentStatus,
		Items:         items,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// parseDeliveryDate accepts a plain date or a full timestamp; anything else
// is treated as no date.
func parseDeliveryDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(dateOnly, raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}

func ordersToDomain(dtos []orderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

type assignmentDTO struct {
	OrderID    string    `json:"order_id"`
	AgentID    string    `json:"agent_id"`
	AgentName  string    `json:"agent_name"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assigned_at"`
}

func (dto assignmentDTO) toDomain() (delivery.Assignment, error) {
	orderID, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return delivery.Assignment{}, err
	}
	agentID, err := kernel.UUIDFromString(dto.AgentID)
	if err != nil {
		return delivery.Assignment{}, err
	}
	return delivery.NewAssignment(orderID, agentID, dto.AgentName, delivery.Status(dto.Status), dto.AssignedAt)
}

type updateDeliveryStatusRequest struct {
	Status string    `json:"status"`
	Proof  *proofDTO `json:"proof,omitempty"`
}

type proofDTO struct {
	PhotoURL    string `json:"photo_url"`
	Code        string `json:"code,omitempty"`
	Coordinates string `json:"coordinates,omitempty"`
}

type assignRequest struct {
	OrderID   string  `json:"order_id"`
	AgentID   string  `json:"agent_id"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

type assignResponse struct {
	AssignmentID string `json:"assignment_id"`
}

type bulkAssignRequest struct {
	OrderIDs []string `json:"order_ids"`
	AgentID  string   `json:"agent_id"`
	Priority string   `json:"priority"`
}

type bulkAssignFailureDTO struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type bulkAssignResponse struct {
	Assigned []string               `json:"assigned"`
	Updated  []string               `json:"updated"`
	Failed   []bulkAssignFailureDTO `json:"failed"`
}

func (dto bulkAssignResponse) toDomain() (ports.BulkAssignReport, error) {
	report := ports.BulkAssignReport{}

	for _, raw := range dto.Assigned {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ports.BulkAssignReport{}, err
		}
		report.Assigned = append(report.Assigned, id)
	}
	for _, raw := range dto.Updated {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ports.BulkAssignReport{}, err
		}
		report.Updated = append(report.Updated, id)
	}
	for _, failure := range dto.Failed {
		id, err := kernel.UUIDFromString(failure.OrderID)
		if err != nil {
			return ports.BulkAssignReport{}, err
		}
		report.Failed = append(report.Failed, ports.BulkAssignFailure{
			OrderID: id,
			Reason:  failure.Reason,
		})
	}
	return report, nil
}

type reassignRequest struct {
	AgentID string `json:"agent_id"`
	Reason  string `json:"reason,omitempty"`
}

type historyEntryDTO struct {
	OrderID           string    `json:"order_id"`
	PreviousAgentID   string    `json:"previous_agent_id"`
	PreviousAgentName string    `json:"previous_agent_name"`
	NewAgentID        string    `json:"new_agent_id"`
	NewAgentName      string    `json:"new_agent_name"`
	Reason            string    `json:"reason"`
	CreatedAt         time.Time `json:"created_at"`
}

func (dto historyEntryDTO) toDomain() (delivery.HistoryEntry, error) {
	orderID, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return delivery.HistoryEntry{}, err
	}
	newAgentID, err := kernel.UUIDFromString(dto.NewAgentID)
	if err != nil {
		return delivery.HistoryEntry{}, err
	}

	var previousID *kernel.UUID
	if dto.PreviousAgentID != "" {
		id, prevErr := kernel.UUIDFromString(dto.PreviousAgentID)
		if prevErr != nil {
			return delivery.HistoryEntry{}, prevErr
		}
		previousID = &id
	}

	return delivery.HistoryEntry{
		OrderID:           orderID,
		PreviousAgentID:   previousID,
		PreviousAgentName: dto.PreviousAgentName,
		NewAgentID:        newAgentID,
		NewAgentName:      dto.NewAgentName,
		Reason:            dto.Reason,
		CreatedAt:         dto.CreatedAt,
	}, nil
}

type workloadDTO struct {
	AgentID   string         `json:"agent_id"`
	AgentName string         `json:"agent_name"`
	ByStatus  map[string]int `json:"by_status"`
}

func (dto workloadDTO) toDomain() (agent.Workload, error) {
	agentID, err := kernel.UUIDFromString(dto.AgentID)
	if err != nil {
		return agent.Workload{}, err
	}

	byStatus := make(map[delivery.Status]int, len(dto.ByStatus))
	for raw, count := range dto.ByStatus {
		byStatus[delivery.Status(raw)] = count
	}
	return agent.Workload{
		AgentID:   agentID,
		AgentName: dto.AgentName,
		ByStatus:  byStatus,
	}, nil
}

type agentDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (dto agentDTO) toDomain() (agent.Agent, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return agent.Agent{}, err
	}
	a := agent.Agent{
		ID:    id,
		Name:  dto.Name,
		Phone: dto.Phone,
		Email: dto.Email,
	}
	if err := a.Validate(); err != nil {
		return agent.Agent{}, err
	}
	return a, nil
}
