// Package kernel contains shared value objects used across the domain model:
// UUID identifiers and the TimeOfDay value parsed out of delivery time-range
// strings. Value objects here are immutable and validated on construction.
package kernel
