package order

import (
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
)

// Status is the lifecycle state of a purchase order.
//
//	Pending ──┬──> Completed
//	          └──> Rejected
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending is the status an order is created in.
	Pending

	// Completed is terminal and does not propagate.
	Completed

	// Rejected cancels the linked negotiation and rejects the linked request.
	Rejected
)

// Edge is the side effect bound to a status change.
type Edge int

const (
	// EdgeNone means no cascade.
	EdgeNone Edge = iota

	// EdgeRejected is entered when the status becomes Rejected from anything else.
	EdgeRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Completed: "Completed",
		Rejected:  "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Completed: "Completed",
		Rejected:  "Rejected",
	}
}

// ParseStatus maps a wire value to a Status. Matching ignores case.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// EdgeTo classifies the change from s to next. Only entering Rejected cascades.
func (s Status) EdgeTo(next Status) Edge {
	if next == Rejected && s != Rejected {
		return EdgeRejected
	}
	return EdgeNone
}

func (e Edge) String() string {
	if e == EdgeRejected {
		return "rejected"
	}
	return "none"
}
