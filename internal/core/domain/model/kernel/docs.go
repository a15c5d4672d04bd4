// Package kernel holds the value objects shared by the request, negotiation
// and order aggregates:
//   - UUID: record identity
//   - Parties: the event / vendor / submitter snapshot copied between stages
//   - Converter and DualAmount: fixed-rate conversion between the primary
//     (INR) and secondary (USD) order currencies
//
// All of them are immutable values guarded against zero-value use.
package kernel
