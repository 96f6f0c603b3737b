package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() order.Order {
	return order.Order{
		ID:        kernel.NewUUID(),
		Number:    "ORD-1001",
		Status:    order.StatusReady,
		Priority:  order.PriorityMedium,
		CreatedAt: time.Now().Add(-10 * time.Minute),
	}
}

func TestOrder_Validate(t *testing.T) {
	t.Run("valid_order_passes", func(t *testing.T) {
		o := validOrder()

		require.NoError(t, o.Validate())
	})

	t.Run("zero_id_fails", func(t *testing.T) {
		o := validOrder()
		o.ID = kernel.UUID{}

		require.Error(t, o.Validate())
	})

	t.Run("unknown_status_fails", func(t *testing.T) {
		o := validOrder()
		o.Status = "shipped"

		require.ErrorIs(t, o.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("unknown_priority_fails", func(t *testing.T) {
		o := validOrder()
		o.Priority = "urgent"

		require.ErrorIs(t, o.Validate(), errs.ErrValueIsInvalid)
	})
}

func TestOrder_ItemCount(t *testing.T) {
	t.Run("sums_quantities", func(t *testing.T) {
		o := validOrder()
		o.Items = []order.Item{
			{Name: "box", Quantity: 2},
			{Name: "bag", Quantity: 3},
		}

		assert.Equal(t, 5, o.ItemCount())
	})

	t.Run("falls_back_to_line_count_without_quantities", func(t *testing.T) {
		o := validOrder()
		o.Items = []order.Item{{Name: "box"}, {Name: "bag"}}

		assert.Equal(t, 2, o.ItemCount())
	})

	t.Run("empty_collection_is_unset", func(t *testing.T) {
		o := validOrder()

		assert.Equal(t, order.ItemCountUnset, o.ItemCount())
	})
}

func TestOrder_DeliveryDeadline(t *testing.T) {
	t.Run("combines_date_and_first_parsed_time", func(t *testing.T) {
		o := validOrder()
		date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
		o.DeliveryDate = &date
		o.TimeRange = "14:00 - 16:00"

		deadline, ok := o.DeliveryDeadline()

		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.June, 2, 14, 0, 0, 0, time.UTC), deadline)
	})

	t.Run("missing_date_yields_no_deadline", func(t *testing.T) {
		o := validOrder()
		o.TimeRange = "14:00 - 16:00"

		_, ok := o.DeliveryDeadline()

		assert.False(t, ok)
	})

	t.Run("unparsable_time_range_yields_no_deadline", func(t *testing.T) {
		o := validOrder()
		date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
		o.DeliveryDate = &date
		o.TimeRange = "afternoon"

		_, ok := o.DeliveryDeadline()

		assert.False(t, ok)
	})
}

func TestAddress_Formatted(t *testing.T) {
	t.Run("prefers_structured_fields", func(t *testing.T) {
		a := order.Address{Street: "12 Main St", City: "Springfield", Zip: "12345", Raw: "ignored"}

		assert.Equal(t, "12 Main St, Springfield, 12345", a.Formatted())
	})

	t.Run("falls_back_to_raw", func(t *testing.T) {
		a := order.Address{Raw: "somewhere downtown"}

		assert.Equal(t, "somewhere downtown", a.Formatted())
	})
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, order.PriorityHigh, order.NormalizePriority(order.PriorityHigh))
	assert.Equal(t, order.DefaultPriority, order.NormalizePriority(""))
	assert.Equal(t, order.DefaultPriority, order.NormalizePriority("asap"))
}

func TestPriority_Weight(t *testing.T) {
	assert.Equal(t, 3, order.PriorityHigh.Weight())
	assert.Equal(t, 2, order.PriorityMedium.Weight())
	assert.Equal(t, 1, order.PriorityLow.Weight())
	assert.Equal(t, 2, order.Priority("").Weight())
}
