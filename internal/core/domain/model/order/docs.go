// Package order provides the Purchase Order aggregate, the commitment stage of
// a procurement record.
//
// The package includes:
//   - Order: the aggregate root with the party snapshot, the order date, the
//     amount in both currencies and optional links to its request and negotiation
//   - Status: Pending, Completed or Rejected, with the Rejected edge that
//     drives the rejection cascade
//
// Key business rules:
//   - The party snapshot and links are fixed at creation; updates ignore them
//   - The amount is a kernel.DualAmount, resolved by the kernel.Converter
//   - Re-rejecting an order crosses no edge
package order
