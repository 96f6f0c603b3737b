// Package delivery models the field-facing side of an order: the five-state
// delivery lifecycle and its strict agent transition table, the live
// order-to-agent Assignment binding, the append-only assignment HistoryEntry,
// and the Actor roles that decide whether the strict table applies.
package delivery
