package commands_test

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDeliveryClient struct{ mock.Mock }

func (m *MockDeliveryClient) FetchOrdersByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockDeliveryClient) FetchOrdersForAgent(ctx context.Context, agentID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockDeliveryClient) FetchAssignment(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Assignment), args.Error(1)
}

func (m *MockDeliveryClient) UpdateOrderStatus(ctx context.Context, orderID kernel.UUID, status order.Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockDeliveryClient) UpdateDeliveryStatus(ctx context.Context, orderID kernel.UUID, status delivery.Status, proof *ports.ProofOfDelivery) error {
	args := m.Called(ctx, orderID, status, proof)
	return args.Error(0)
}

func (m *MockDeliveryClient) Assign(ctx context.Context, orderID, agentID kernel.UUID, orderCtx ports.OrderContext) (kernel.UUID, error) {
	args := m.Called(ctx, orderID, agentID, orderCtx)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockDeliveryClient) BulkAssign(ctx context.Context, orderIDs []kernel.UUID, agentID kernel.UUID, priority order.Priority) (ports.BulkAssignReport, error) {
	args := m.Called(ctx, orderIDs, agentID, priority)
	return args.Get(0).(ports.BulkAssignReport), args.Error(1)
}

func (m *MockDeliveryClient) Reassign(ctx context.Context, orderID, agentID kernel.UUID, reason string) error {
	args := m.Called(ctx, orderID, agentID, reason)
	return args.Error(0)
}

func (m *MockDeliveryClient) FetchAssignmentHistory(ctx context.Context, orderID kernel.UUID) ([]delivery.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]delivery.HistoryEntry), args.Error(1)
}

func (m *MockDeliveryClient) FetchWorkload(ctx context.Context) ([]agent.Workload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agent.Workload), args.Error(1)
}

func (m *MockDeliveryClient) FetchAvailableAgents(ctx context.Context) ([]agent.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agent.Agent), args.Error(1)
}

// stubSnapshot is a fixed local view for precondition checks.
type stubSnapshot struct {
	orders      map[kernel.UUID]*order.Order
	assignments map[kernel.UUID]delivery.Assignment
}

func (s *stubSnapshot) Order(id kernel.UUID) (*order.Order, bool) {
	o, ok := s.orders[id]
	return o, ok
}

func (s *stubSnapshot) Assignment(orderID kernel.UUID) (delivery.Assignment, bool) {
	a, ok := s.assignments[orderID]
	return a, ok
}

// recordingMarker captures which orders were marked self-initiated.
type recordingMarker struct {
	marked []kernel.UUID
}

func (r *recordingMarker) MarkSelfInitiated(orderID kernel.UUID) {
	r.marked = append(r.marked, orderID)
}
