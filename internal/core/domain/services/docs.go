// Package services contains the pure domain services of the dispatch core:
// the status vocabulary mapper, the urgency classifier, the priority scorer,
// and order ranking/filtering. Every function here is deterministic over an
// explicit (order, assignment, now) tuple — no hidden state, no side effects —
// so the prioritization logic is independently testable.
package services
