// Package order models the backend-owned order record and its two explicit
// vocabularies: the six-state backend lifecycle (Status) and the operator-set
// priority tag (Priority). Orders are read models here; the backend store owns
// them and the dispatch core only reads them and issues mutation commands.
package order
