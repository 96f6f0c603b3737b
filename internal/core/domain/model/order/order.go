package order

import (
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// TotalUnset is the sentinel sent to the backend when the local order record
// has no usable monetary total, so the backend computes it from its own row.
const TotalUnset = float64(-1)

// ItemCountUnset is the sentinel counterpart of TotalUnset for item counts.
const ItemCountUnset = -1

// Item is one line of an order's item collection.
type Item struct {
	Name     string
	Quantity int
	Price    float64
}

// Address is the structured-or-string delivery address. Structured fields take
// precedence; Raw preserves backends that only store a free-text address.
type Address struct {
	Street string
	City   string
	Zip    string
	Raw    string
}

// Formatted returns the display form of the address: the joined structured
// fields when present, otherwise the raw string.
func (a Address) Formatted() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, a.Zip} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return a.Raw
}

// Order is the backend-owned order record as seen by the dispatch core.
// It is a read model: the core never mutates it locally, all changes go
// through status-mutation commands followed by a refresh.
//
// Fields are exported because the record arrives wholesale from the remote
// service; Validate guards the few invariants the core relies on.
type Order struct {
	ID            kernel.UUID
	Number        string
	CustomerName  string
	CustomerPhone string
	Address       Address
	DeliveryDate  *time.Time
	TimeRange     string
	Status        Status
	Priority      Priority
	Total         float64
	PaymentStatus string
	Items         []Item
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the invariants the dispatch core depends on: a constructed
// ID, a known backend status, and a known priority tag.
func (o *Order) Validate() error {
	if err := o.ID.Validate(); err != nil {
		return err
	}
	if err := o.Status.Validate(); err != nil {
		return err
	}
	if err := o.Priority.Validate(); err != nil {
		return err
	}
	return nil
}

// ItemCount derives the item count from the item collection: the sum of
// quantities when quantities are set, otherwise the number of lines.
// Returns ItemCountUnset when the collection is empty.
func (o *Order) ItemCount() int {
	if len(o.Items) == 0 {
		return ItemCountUnset
	}
	sum := 0
	for _, item := range o.Items {
		sum += item.Quantity
	}
	if sum > 0 {
		return sum
	}
	return len(o.Items)
}

// HasTotal reports whether the order carries a usable monetary total.
func (o *Order) HasTotal() bool {
	return o.Total > 0
}

// DeliveryDeadline builds the deadline instant from the delivery date and the
// first clock time parsed out of the time-range string. The second return
// value is false when either part is missing.
func (o *Order) DeliveryDeadline() (time.Time, bool) {
	if o.DeliveryDate == nil {
		return time.Time{}, false
	}
	tod, ok := kernel.ParseFirstTimeOfDay(o.TimeRange)
	if !ok {
		return time.Time{}, false
	}
	return tod.On(*o.DeliveryDate), true
}

// Age returns how long ago the order was created.
func (o *Order) Age(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt)
}

// ErrOrderIDIsRequired is returned when an operation references an order
// without a constructed identifier.
var ErrOrderIDIsRequired = errs.NewValueIsRequiredError("order ID")
