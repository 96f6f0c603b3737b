package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)

func readyOrder(createdAgo time.Duration) *order.Order {
	return &order.Order{
		ID:        kernel.NewUUID(),
		Number:    "ORD-1",
		Status:    order.StatusReady,
		Priority:  order.PriorityMedium,
		CreatedAt: now.Add(-createdAgo),
	}
}

func withDeadline(o *order.Order, at time.Time) *order.Order {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	o.DeliveryDate = &day
	o.TimeRange = at.Format("15:04") + " - 23:59"
	return o
}

func assignedAgo(t *testing.T, o *order.Order, ago time.Duration, status delivery.Status) *delivery.Assignment {
	t.Helper()
	a, err := delivery.NewAssignment(o.ID, kernel.NewUUID(), "Dana", status, now.Add(-ago))
	require.NoError(t, err)
	return &a
}

func TestClassifyUrgency_UnassignedAge(t *testing.T) {
	t.Run("unassigned_61_minutes_is_critical", func(t *testing.T) {
		o := readyOrder(61 * time.Minute)

		assert.Equal(t, services.UrgencyCritical, services.ClassifyUrgency(o, nil, now))
	})

	t.Run("unassigned_31_minutes_is_urgent", func(t *testing.T) {
		o := readyOrder(31 * time.Minute)

		assert.Equal(t, services.UrgencyUrgent, services.ClassifyUrgency(o, nil, now))
	})

	t.Run("unassigned_10_minutes_is_normal", func(t *testing.T) {
		o := readyOrder(10 * time.Minute)

		assert.Equal(t, services.UrgencyNormal, services.ClassifyUrgency(o, nil, now))
	})

	t.Run("rule_only_fires_for_assigned_delivery_status", func(t *testing.T) {
		o := readyOrder(61 * time.Minute)
		o.Status = order.StatusConfirmed // maps to in_transit

		assert.Equal(t, services.UrgencyNormal, services.ClassifyUrgency(o, nil, now))
	})
}

func TestClassifyUrgency_Deadline(t *testing.T) {
	t.Run("passed_deadline_is_critical", func(t *testing.T) {
		o := withDeadline(readyOrder(5*time.Minute), now.Add(-time.Hour))
		asg := assignedAgo(t, o, 5*time.Minute, delivery.StatusAssigned)

		assert.Equal(t, services.UrgencyCritical, services.ClassifyUrgency(o, asg, now))
	})

	t.Run("deadline_within_two_hours_is_urgent", func(t *testing.T) {
		o := withDeadline(readyOrder(5*time.Minute), now.Add(90*time.Minute))
		asg := assignedAgo(t, o, 5*time.Minute, delivery.StatusAssigned)

		assert.Equal(t, services.UrgencyUrgent, services.ClassifyUrgency(o, asg, now))
	})

	t.Run("distant_deadline_falls_through", func(t *testing.T) {
		o := withDeadline(readyOrder(5*time.Minute), now.Add(5*time.Hour))
		asg := assignedAgo(t, o, 5*time.Minute, delivery.StatusAssigned)

		assert.Equal(t, services.UrgencyNormal, services.ClassifyUrgency(o, asg, now))
	})
}

func TestClassifyUrgency_AssignmentAge(t *testing.T) {
	t.Run("assigned_31_minutes_without_pickup_is_urgent", func(t *testing.T) {
		o := readyOrder(5 * time.Minute)
		asg := assignedAgo(t, o, 31*time.Minute, delivery.StatusAssigned)

		assert.Equal(t, services.UrgencyUrgent, services.ClassifyUrgency(o, asg, now))
	})

	t.Run("picked_up_orders_do_not_trigger_the_rule", func(t *testing.T) {
		o := readyOrder(5 * time.Minute)
		o.Status = order.StatusPreparing
		asg := assignedAgo(t, o, 2*time.Hour, delivery.StatusPickedUp)

		assert.Equal(t, services.UrgencyNormal, services.ClassifyUrgency(o, asg, now))
	})
}

func TestClassifyUrgency_FirstMatchPrecedence(t *testing.T) {
	// The unassigned-age block returns urgent even though the deadline block
	// would classify the same order critical. First match wins; later, more
	// severe blocks are never consulted.
	t.Run("unassigned_age_urgent_shadows_deadline_critical", func(t *testing.T) {
		o := withDeadline(readyOrder(40*time.Minute), now.Add(-time.Hour))

		assert.Equal(t, services.UrgencyUrgent, services.ClassifyUrgency(o, nil, now))
	})

	t.Run("short_unassigned_age_falls_through_to_deadline", func(t *testing.T) {
		o := withDeadline(readyOrder(10*time.Minute), now.Add(-time.Hour))

		assert.Equal(t, services.UrgencyCritical, services.ClassifyUrgency(o, nil, now))
	})
}
