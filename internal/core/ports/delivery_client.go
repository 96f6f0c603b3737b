// Package ports defines the outbound interfaces of the dispatch core: the
// remote delivery/order service it issues commands to, and the local
// notification journal. Adapters implement these; the core depends only on
// the interfaces.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ProofOfDelivery accompanies a transition to delivered. PhotoURL is
// mandatory; the transition is not submitted without it. Code is the optional
// verification code, Coordinates the optional capture location.
type ProofOfDelivery struct {
	PhotoURL    string
	Code        string
	Coordinates string
}

// OrderContext carries the derived order figures sent along with a single
// assignment. ItemCount and Total use the order package's unset sentinels when
// the local record has no usable values, so the backend computes them from its
// own authoritative row.
type OrderContext struct {
	ItemCount int
	Total     float64
}

// BulkAssignReport is the partial-failure batch result of a bulk assignment:
// three disjoint lists whose sizes sum to the number of submitted orders.
// Partial success is not an error.
type BulkAssignReport struct {
	Assigned []kernel.UUID
	Updated  []kernel.UUID
	Failed   []BulkAssignFailure
}

// BulkAssignFailure names one order the backend refused, with its reason.
type BulkAssignFailure struct {
	OrderID kernel.UUID
	Reason  string
}

// DeliveryClient is the command surface of the remote delivery/order service.
// Every call may fail with a RateLimitError (handled by the refresh backoff)
// or a generic failure. All calls are idempotent at the application level
// except BulkAssign, which is partial-failure-tolerant instead.
type DeliveryClient interface {
	FetchOrdersByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
	FetchOrdersForAgent(ctx context.Context, agentID kernel.UUID) ([]*order.Order, error)
	FetchAssignment(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error)

	UpdateOrderStatus(ctx context.Context, orderID kernel.UUID, status order.Status) error
	UpdateDeliveryStatus(ctx context.Context, orderID kernel.UUID, status delivery.Status, proof *ProofOfDelivery) error

	Assign(ctx context.Context, orderID, agentID kernel.UUID, orderCtx OrderContext) (kernel.UUID, error)
	BulkAssign(ctx context.Context, orderIDs []kernel.UUID, agentID kernel.UUID, priority order.Priority) (BulkAssignReport, error)
	Reassign(ctx context.Context, orderID, agentID kernel.UUID, reason string) error

	FetchAssignmentHistory(ctx context.Context, orderID kernel.UUID) ([]delivery.HistoryEntry, error)
	FetchWorkload(ctx context.Context) ([]agent.Workload, error)
	FetchAvailableAgents(ctx context.Context) ([]agent.Agent, error)
}
