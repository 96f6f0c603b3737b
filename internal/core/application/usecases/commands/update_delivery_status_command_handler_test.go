package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var assignedAt = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

func snapshotOrder(status order.Status) *order.Order {
	return &order.Order{
		ID:        kernel.NewUUID(),
		Number:    "ORD-1",
		Status:    status,
		Priority:  order.PriorityMedium,
		CreatedAt: assignedAt,
	}
}

func assignedSnapshot(t *testing.T, o *order.Order, status delivery.Status) *stubSnapshot {
	t.Helper()
	asg, err := delivery.NewAssignment(o.ID, kernel.NewUUID(), "Dana", status, assignedAt)
	require.NoError(t, err)
	return &stubSnapshot{
		orders:      map[kernel.UUID]*order.Order{o.ID: o},
		assignments: map[kernel.UUID]delivery.Assignment{o.ID: asg},
	}
}

func TestUpdateDeliveryStatusCommandHandler_Handle(t *testing.T) {
	t.Run("agent_advances_one_step", func(t *testing.T) {
		ctx := t.Context()
		o := snapshotOrder(order.StatusReady)
		snapshot := assignedSnapshot(t, o, delivery.StatusAssigned)
		marker := &recordingMarker{}

		client := new(MockDeliveryClient)
		client.On("UpdateDeliveryStatus", ctx, o.ID, delivery.StatusPickedUp, (*ports.ProofOfDelivery)(nil)).
			Return(nil).Once()

		cmd, err := commands.NewUpdateDeliveryStatusCommand(o.ID, delivery.StatusPickedUp, agentActor(t), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateDeliveryStatusCommandHandler(client, snapshot, marker)
		require.NoError(t, handler.Handle(ctx, cmd))

		require.Len(t, marker.marked, 1)
		assert.True(t, marker.marked[0].IsEqual(o.ID))
		client.AssertExpectations(t)
	})

	t.Run("agent_cannot_skip_a_step", func(t *testing.T) {
		ctx := t.Context()
		o := snapshotOrder(order.StatusReady)
		snapshot := assignedSnapshot(t, o, delivery.StatusAssigned)
		marker := &recordingMarker{}
		client := new(MockDeliveryClient)

		cmd, err := commands.NewUpdateDeliveryStatusCommand(o.ID, delivery.StatusInTransit, agentActor(t), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateDeliveryStatusCommandHandler(client, snapshot, marker)
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrTransitionNotAllowed)
		assert.Empty(t, marker.marked)
		client.AssertNotCalled(t, "UpdateDeliveryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dispatcher_bypasses_the_table", func(t *testing.T) {
		ctx := t.Context()
		o := snapshotOrder(order.StatusReady)
		snapshot := assignedSnapshot(t, o, delivery.StatusAssigned)
		marker := &recordingMarker{}

		client := new(MockDeliveryClient)
		client.On("UpdateDeliveryStatus", ctx, o.ID, delivery.StatusDelayed, (*ports.ProofOfDelivery)(nil)).
			Return(nil).Once()

		cmd, err := commands.NewUpdateDeliveryStatusCommand(o.ID, delivery.StatusDelayed, dispatcherActor(t), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateDeliveryStatusCommandHandler(client, snapshot, marker)
		require.NoError(t, handler.Handle(ctx, cmd))

		client.AssertExpectations(t)
	})

	t.Run("unassigned_order_uses_the_mapped_backend_status", func(t *testing.T) {
		ctx := t.Context()
		// ready maps to assigned, so picked_up is the legal next step.
		o := snapshotOrder(order.StatusReady)
		snapshot := &stubSnapshot{orders: map[kernel.UUID]*order.Order{o.ID: o}}
		marker := &recordingMarker{}

		client := new(MockDeliveryClient)
		client.On("UpdateDeliveryStatus", ctx, o.ID, delivery.StatusPickedUp, (*ports.ProofOfDelivery)(nil)).
			Return(nil).Once()

		cmd, err := commands.NewUpdateDeliveryStatusCommand(o.ID, delivery.StatusPickedUp, agentActor(t), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateDeliveryStatusCommandHandler(client, snapshot, marker)
		require.NoError(t, handler.Handle(ctx, cmd))

		client.AssertExpectations(t)
	})

	t.Run("unknown_order", func(t *testing.T) {
		ctx := t.Context()
		snapshot := &stubSnapshot{}
		client := new(MockDeliveryClient)

		cmd, err := commands.NewUpdateDeliveryStatusCommand(kernel.NewUUID(), delivery.StatusPickedUp, agentActor(t), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateDeliveryStatusCommandHandler(client, snapshot, &recordingMarker{})
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("remote_failure_propagates", func(t *testing.T) {
		ctx := t.Context()
		o := snapshotOrder(order.StatusReady)
		snapshot := assignedSnapshot(t, o, delivery.StatusAssigned)
		marker := &recordingMarker{}

		client := new(MockDeliveryClient)
		client.On("UpdateDeliveryStatus", ctx, o.ID, delivery.StatusPickedUp, (*ports.ProofOfDelivery)(nil)).
			Return(errors.New("backend down")).Once()

		cmd, err := commands.NewUpdateDeliveryStatusCommand(o.ID, delivery.StatusPickedUp, agentActor(t), nil)
		require.NoError(t, err)

		handler := commands.NewUpdateDeliveryStatusCommandHandler(client, snapshot, marker)
		err = handler.Handle(ctx, cmd)

		require.EqualError(t, err, "backend down")
		// Marked before the call went out; the refresh will reconcile.
		require.Len(t, marker.marked, 1)
	})
}
