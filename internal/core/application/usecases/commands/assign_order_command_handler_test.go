package commands_test

import (
	"testing"

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

func TestAssignOrderCommandHandler_Handle(t *testing.T) {
	t.Run("assigns_with_derived_order_context", func(t *testing.T) {
		ctx := t.Context()
		o := snapshotOrder(order.StatusReady)
		o.Total = 42.50
		o.Items = []order.Item{{Name: "Box", Quantity: 3}}
		snapshot := &stubSnapshot{orders: map[kernel.UUID]*order.Order{o.ID: o}}
		marker := &recordingMarker{}
		agentID := kernel.NewUUID()
		bindingID := kernel.NewUUID()

		client := new(MockDeliveryClient)
		client.On("Assign", ctx, o.ID, agentID, ports.OrderContext{ItemCount: 3, Total: 42.50}).
			Return(bindingID, nil).Once()

		cmd, err := commands.NewAssignOrderCommand(o.ID, agentID)
		require.NoError(t, err)

		handler := commands.NewAssignOrderCommandHandler(client, snapshot, marker)
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, got.IsEqual(bindingID))
		require.Len(t, marker.marked, 1)
		client.AssertExpectations(t)
	})

	t.Run("sends_unset_sentinels_when_the_record_is_bare", func(t *testing.T) {
		ctx := t.Context()
		o := snapshotOrder(order.StatusReady)
		snapshot := &stubSnapshot{orders: map[kernel.UUID]*order.Order{o.ID: o}}
		agentID := kernel.NewUUID()

		client := new(MockDeliveryClient)
		client.On("Assign", ctx, o.ID, agentID,
			ports.OrderContext{ItemCount: order.ItemCountUnset, Total: order.TotalUnset}).
			Return(kernel.NewUUID(), nil).Once()

		cmd, err := commands.NewAssignOrderCommand(o.ID, agentID)
		require.NoError(t, err)

		handler := commands.NewAssignOrderCommandHandler(client, snapshot, &recordingMarker{})
		_, err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("already_assigned", func(t *testing.T) {
		ctx := t.Context()
		o := snapshotOrder(order.StatusReady)
		snapshot := assignedSnapshot(t, o, delivery.StatusAssigned)
		client := new(MockDeliveryClient)

		cmd, err := commands.NewAssignOrderCommand(o.ID, kernel.NewUUID())
		require.NoError(t, err)

		handler := commands.NewAssignOrderCommandHandler(client, snapshot, &recordingMarker{})
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrOrderAlreadyAssigned)
		require.ErrorIs(t, err, errs.ErrValidation)
		client.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown_order", func(t *testing.T) {
		ctx := t.Context()
		snapshot := &stubSnapshot{}
		client := new(MockDeliveryClient)

		cmd, err := commands.NewAssignOrderCommand(kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)

		handler := commands.NewAssignOrderCommandHandler(client, snapshot, &recordingMarker{})
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
