// Package request provides the Purchase Request aggregate, the first stage of a
// procurement record.
//
// The package includes:
//   - Request: the aggregate root holding the event / vendor / submitter
//     snapshot, the request date and the allocated amount
//   - Status: Pending, Approved or Rejected
//
// Key business rules:
//   - A request is created Pending by an upstream process
//   - Only a Pending request can be promoted into a negotiation
//   - Approval and rejection are driven by the negotiation and order stages
//     through cascades, or explicitly by a caller
package request
