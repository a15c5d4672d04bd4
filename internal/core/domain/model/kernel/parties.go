package kernel

import (
	"errors"
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

// MaxSubmitterIDLength bounds the submitter identity column.
const MaxSubmitterIDLength = 50

var ErrPartiesIsNotConstructed = errors.New("Parties must be created via NewParties constructor")

// Parties is the event / vendor / submitter snapshot a request carries and that
// negotiations and orders copy at creation. A copy is never re-derived from
// its source afterwards.
type Parties struct {
	eventID     int64
	eventName   string
	vendorID    int64
	vendorName  string
	submitterID string

	guard guard.ConstructorGuard
}

// NewParties validates and builds a snapshot. Event and vendor ids must be
// positive; the submitter id is required and at most MaxSubmitterIDLength long.
func NewParties(eventID int64, eventName string, vendorID int64, vendorName, submitterID string) (Parties, error) {
	p := Parties{
		eventName:  strings.TrimSpace(eventName),
		vendorName: strings.TrimSpace(vendorName),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setEventID(eventID),
		p.setVendorID(vendorID),
		p.setSubmitterID(submitterID),
	); err != nil {
		return Parties{}, err
	}

	return p, nil
}

func (p Parties) Validate() error {
	return p.guard.Validate(ErrPartiesIsNotConstructed)
}

func (p Parties) EventID() int64 {
	return p.eventID
}

func (p Parties) EventName() string {
	return p.eventName
}

func (p Parties) VendorID() int64 {
	return p.vendorID
}

func (p Parties) VendorName() string {
	return p.vendorName
}

func (p Parties) SubmitterID() string {
	return p.submitterID
}

func (p *Parties) setEventID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("eventId", fmt.Errorf("%d is not greater than 0", id))
	}
	p.eventID = id
	return nil
}

func (p *Parties) setVendorID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("vendorId", fmt.Errorf("%d is not greater than 0", id))
	}
	p.vendorID = id
	return nil
}

func (p *Parties) setSubmitterID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("submitterId")
	}
	if len(id) > MaxSubmitterIDLength {
		return errs.NewValueIsOutOfRangeError("submitterId length", len(id), 1, MaxSubmitterIDLength)
	}
	p.submitterID = id
	return nil
}
