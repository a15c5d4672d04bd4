package http

import (
	"encoding/json"
	"strings"
	"time"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const dateLayout = time.DateOnly

// Date is a calendar date on the wire. It accepts "2006-01-02" and RFC 3339
// timestamps and is written back as "2006-01-02" when it has no time of day.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}

	if t, err := time.Parse(dateLayout, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return err
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	t := d.UTC()
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return json.Marshal(t.Format(dateLayout))
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// PartiesPayload is the event, vendor and submitter block shared by the
// record payloads. The domain checks presence; the tags only bound sizes.
type PartiesPayload struct {
	EventID     int64  `json:"eventId" validate:"gte=0"`
	EventName   string `json:"eventName" validate:"max=255"`
	VendorID    int64  `json:"vendorId" validate:"gte=0"`
	VendorName  string `json:"vendorName" validate:"max=255"`
	SubmitterID string `json:"submitterId" validate:"max=50"`
}

func (p PartiesPayload) toDomain() (kernel.Parties, error) {
	return kernel.NewParties(p.EventID, p.EventName, p.VendorID, p.VendorName, p.SubmitterID)
}

func partiesPayload(p queries.Parties) PartiesPayload {
	return PartiesPayload{
		EventID:     p.EventID,
		EventName:   p.EventName,
		VendorID:    p.VendorID,
		VendorName:  p.VendorName,
		SubmitterID: p.SubmitterID,
	}
}

// RequestPayload creates or replaces a purchase request. Status is ignored on
// create.
type RequestPayload struct {
	PartiesPayload
	RequestDate     Date            `json:"requestDate"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	Status          string          `json:"status,omitempty" validate:"omitempty,max=20"`
}

type RequestView struct {
	ID string `json:"id"`
	PartiesPayload
	RequestDate     Date            `json:"requestDate"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	Status          string          `json:"status"`
}

func requestView(r queries.RequestResponse) RequestView {
	return RequestView{
		ID:              r.ID.String(),
		PartiesPayload:  partiesPayload(r.Parties),
		RequestDate:     Date{r.RequestDate},
		AllocatedAmount: r.AllocatedAmount,
		Status:          r.Status.String(),
	}
}

// NegotiationCreatePayload opens a negotiation for a request. Without date and
// amounts every value is copied from the request.
type NegotiationCreatePayload struct {
	RequestID          string           `json:"requestId" validate:"required,uuid"`
	NegotiationDate    *Date            `json:"negotiationDate,omitempty"`
	InitialQuoteAmount *decimal.Decimal `json:"initialQuoteAmount,omitempty"`
	FinalAmount        *decimal.Decimal `json:"finalAmount,omitempty"`
	Notes              string           `json:"notes,omitempty"`
}

func (p NegotiationCreatePayload) custom() bool {
	return p.NegotiationDate != nil || p.InitialQuoteAmount != nil || p.FinalAmount != nil || p.Notes != ""
}

// NegotiationUpdatePayload holds the only fields a negotiation update may
// change.
type NegotiationUpdatePayload struct {
	FinalAmount     decimal.Decimal `json:"finalAmount"`
	NegotiationDate Date            `json:"negotiationDate"`
	Status          string          `json:"status" validate:"required,max=20"`
	Notes           string          `json:"notes"`
}

type NegotiationView struct {
	ID        string `json:"id"`
	RequestID string `json:"requestId"`
	PartiesPayload
	NegotiationDate    Date            `json:"negotiationDate"`
	InitialQuoteAmount decimal.Decimal `json:"initialQuoteAmount"`
	FinalAmount        decimal.Decimal `json:"finalAmount"`
	Savings            decimal.Decimal `json:"savings"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes"`
}

func negotiationView(n queries.NegotiationResponse) NegotiationView {
	return NegotiationView{
		ID:                 n.ID.String(),
		RequestID:          n.RequestID.String(),
		PartiesPayload:     partiesPayload(n.Parties),
		NegotiationDate:    Date{n.NegotiationDate},
		InitialQuoteAmount: n.InitialQuoteAmount,
		FinalAmount:        n.FinalAmount,
		Savings:            n.Savings,
		Status:             n.Status.String(),
		Notes:              n.Notes,
	}
}

// OrderPayload creates an order. On update the parties and links are
// ignored; they keep what was captured at creation. An update without
// orderDate, amounts or status keeps the stored values.
type OrderPayload struct {
	PartiesPayload
	OrderDate       Date             `json:"orderDate"`
	AmountPrimary   *decimal.Decimal `json:"amountPrimary,omitempty"`
	AmountSecondary *decimal.Decimal `json:"amountSecondary,omitempty"`
	Status          string           `json:"status,omitempty" validate:"omitempty,max=20"`
	RequestID       string           `json:"requestId,omitempty" validate:"omitempty,uuid"`
	NegotiationID   string           `json:"negotiationId,omitempty" validate:"omitempty,uuid"`
}

type OrderView struct {
	ID string `json:"id"`
	PartiesPayload
	OrderDate       Date            `json:"orderDate"`
	AmountPrimary   decimal.Decimal `json:"amountPrimary"`
	AmountSecondary decimal.Decimal `json:"amountSecondary"`
	Status          string          `json:"status"`
	RequestID       *string         `json:"requestId"`
	NegotiationID   *string         `json:"negotiationId"`
}

func orderView(o queries.OrderResponse) OrderView {
	view := OrderView{
		ID:              o.ID.String(),
		PartiesPayload:  partiesPayload(o.Parties),
		OrderDate:       Date{o.OrderDate},
		AmountPrimary:   o.AmountPrimary,
		AmountSecondary: o.AmountSecondary,
		Status:          o.Status.String(),
	}
	if o.RequestID != nil {
		id := o.RequestID.String()
		view.RequestID = &id
	}
	if o.NegotiationID != nil {
		id := o.NegotiationID.String()
		view.NegotiationID = &id
	}
	return view
}

type VendorTotalView struct {
	VendorID int64           `json:"vendorId"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// ErrorView is the body of every failed request.
type ErrorView struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func mapViews[T any, V any](items []T, view func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, view(item))
	}
	return out
}

func queryDate(name, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	var d Date
	if err := d.UnmarshalJSON([]byte(`"` + raw + `"`)); err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d.Time, nil
}
