// Package services provides the procurement workflow: the rules that span the
// request, negotiation and order aggregates.
//
// The package includes:
//   - ProcurementWorkflow: promotion of a request into a negotiation, the
//     negotiation completion and cancellation cascades, order placement and
//     the order rejection cascade
//
// The workflow works on loaded aggregates only. It decides which records
// change; loading, locking and saving them in one transaction is the job of
// the command handlers.
package services
