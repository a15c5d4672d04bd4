// Package negotiation provides the Negotiation aggregate, the bargaining stage
// between a purchase request and a purchase order.
//
// A negotiation copies the party snapshot and the allocated amount of its
// request when it is opened and never re-derives them. Afterwards only four
// fields change: final amount, negotiation date, status and notes.
//
// Status changes are classified by Status.EdgeTo into transition edges; the
// caller runs the cascade bound to an edge exactly once:
//
//	            ┌──────────────> Completed ─┐
//	Pending ────┤                  ▲        │
//	            └──────────────> Cancelled ◄┘
package negotiation
