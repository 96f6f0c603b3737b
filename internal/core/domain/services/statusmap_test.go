package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestToDeliveryStatus(t *testing.T) {
	tests := []struct {
		from order.Status
		to   delivery.Status
	}{
		{order.StatusReady, delivery.StatusAssigned},
		{order.StatusPreparing, delivery.StatusPickedUp},
		{order.StatusConfirmed, delivery.StatusInTransit},
		{order.StatusDelivered, delivery.StatusDelivered},
		{order.StatusCancelled, delivery.StatusDelayed},
	}

	for _, tc := range tests {
		t.Run(string(tc.from), func(t *testing.T) {
			assert.Equal(t, tc.to, services.ToDeliveryStatus(tc.from))
		})
	}

	t.Run("unmapped_statuses_default_to_assigned", func(t *testing.T) {
		assert.Equal(t, delivery.StatusAssigned, services.ToDeliveryStatus(order.StatusPending))
		assert.Equal(t, delivery.StatusAssigned, services.ToDeliveryStatus("garbage"))
	})
}

func TestStatusMapping_RoundTrip(t *testing.T) {
	t.Run("round_trip_holds_for_non_cancelled_states", func(t *testing.T) {
		for _, s := range []order.Status{
			order.StatusReady,
			order.StatusPreparing,
			order.StatusConfirmed,
			order.StatusDelivered,
		} {
			assert.Equal(t, s, services.ToOrderStatus(services.ToDeliveryStatus(s)))
		}
	})

	t.Run("cancelled_delayed_is_a_stable_one_way_pair", func(t *testing.T) {
		assert.Equal(t, delivery.StatusDelayed, services.ToDeliveryStatus(order.StatusCancelled))
		assert.Equal(t, order.StatusCancelled, services.ToOrderStatus(delivery.StatusDelayed))
	})

	t.Run("inverse_holds_for_every_delivery_status", func(t *testing.T) {
		for _, s := range delivery.AllStatuses() {
			assert.Equal(t, s, services.ToDeliveryStatus(services.ToOrderStatus(s)))
		}
	})
}
