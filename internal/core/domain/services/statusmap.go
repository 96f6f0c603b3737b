package services

import (
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
)

// ToDeliveryStatus translates a backend order status into the field-facing
// delivery vocabulary. The function is total: anything outside the mapped set
// falls back to assigned, the safe default for field display.
//
// cancelled -> delayed is deliberately lossy; multiple backend failure reasons
// collapse into the single field-facing label.
func ToDeliveryStatus(s order.Status) delivery.Status {
	switch s {
	case order.StatusReady:
		return delivery.StatusAssigned
	case order.StatusPreparing:
		return delivery.StatusPickedUp
	case order.StatusConfirmed:
		return delivery.StatusInTransit
	case order.StatusDelivered:
		return delivery.StatusDelivered
	case order.StatusCancelled:
		return delivery.StatusDelayed
	default:
		return delivery.StatusAssigned
	}
}

// ToOrderStatus is the exact inverse of ToDeliveryStatus over the five paired
// values. Round-trip holds for every delivery status; delayed -> cancelled is
// the stable one-way pair.
func ToOrderStatus(s delivery.Status) order.Status {
	switch s {
	case delivery.StatusAssigned:
		return order.StatusReady
	case delivery.StatusPickedUp:
		return order.StatusPreparing
	case delivery.StatusInTransit:
		return order.StatusConfirmed
	case delivery.StatusDelivered:
		return order.StatusDelivered
	case delivery.StatusDelayed:
		return order.StatusCancelled
	default:
		return order.StatusReady
	}
}
