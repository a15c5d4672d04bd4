package negotiation

import (
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
)

// Status is the lifecycle state of a negotiation.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending is the status a negotiation is opened in.
	Pending

	// Completed approves the request and produces an order.
	Completed

	// Cancelled rejects the request.
	Cancelled
)

// Edge is the side effect bound to a status change.
type Edge int

const (
	// EdgeNone means no cascade: the status did not change, or it moved into Pending.
	EdgeNone Edge = iota

	// EdgeCompleted is entered when the status becomes Completed from anything else.
	EdgeCompleted

	// EdgeCancelled is entered when the status becomes Cancelled from anything else.
	EdgeCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// ParseStatus maps a wire value to a Status. Matching ignores case.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid negotiation status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid negotiation status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// EdgeTo classifies the change from s to next.
//
//	from \ to   Pending   Completed      Cancelled
//	Pending     none      EdgeCompleted  EdgeCancelled
//	Completed   none      none           EdgeCancelled
//	Cancelled   none      EdgeCompleted  none
func (s Status) EdgeTo(next Status) Edge {
	if s == next {
		return EdgeNone
	}

	//nolint:exhaustive // moving into Pending or Unknown never cascades
	switch next {
	case Completed:
		return EdgeCompleted
	case Cancelled:
		return EdgeCancelled
	default:
		return EdgeNone
	}
}

func (e Edge) String() string {
	switch e {
	case EdgeCompleted:
		return "completed"
	case EdgeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}
