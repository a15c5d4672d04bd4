package request

import (
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
)

// Status is the lifecycle state of a purchase request.
//
//	Pending ──┬──> Approved
//	          └──> Rejected
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending is the initial status. Only Pending requests can be negotiated.
	Pending

	// Approved is set when the request's negotiation completes.
	Approved

	// Rejected is set when the negotiation is cancelled or the order rejected.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Approved: "Approved",
		Rejected: "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "Pending",
		Approved: "Approved",
		Rejected: "Rejected",
	}
}

// ParseStatus maps a wire value to a Status. Matching ignores case.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid request status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid request status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidatePromote checks that a negotiation may be opened from this status.
func (s Status) ValidatePromote() error {
	if s != Pending {
		return errs.NewInvalidStateError("purchase request", "can only create negotiation from Pending requests")
	}
	return nil
}
