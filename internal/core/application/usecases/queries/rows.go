package queries

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Parties is the event, vendor and submitter snapshot of a record. The row
// types embed it, so its fields map onto the columns of all three tables.
type Parties struct {
	EventID     int64
	EventName   string
	VendorID    int64
	VendorName  string
	SubmitterID string
}

type RequestResponse struct {
	ID              kernel.UUID
	Parties         Parties
	RequestDate     time.Time
	AllocatedAmount decimal.Decimal
	Status          request.Status
}

type NegotiationResponse struct {
	ID                 kernel.UUID
	RequestID          kernel.UUID
	Parties            Parties
	NegotiationDate    time.Time
	InitialQuoteAmount decimal.Decimal
	FinalAmount        decimal.Decimal
	// Savings is InitialQuoteAmount minus FinalAmount.
	Savings decimal.Decimal
	Status  negotiation.Status
	Notes   string
}

type OrderResponse struct {
	ID              kernel.UUID
	Parties         Parties
	OrderDate       time.Time
	AmountPrimary   decimal.Decimal
	AmountSecondary decimal.Decimal
	Status          order.Status
	RequestID       *kernel.UUID
	NegotiationID   *kernel.UUID
}

type requestRow struct {
	ID uuid.UUID
	Parties
	RequestDate     time.Time
	AllocatedAmount decimal.Decimal
	Status          int
}

func (r requestRow) toResponse() (RequestResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return RequestResponse{}, err
	}
	return RequestResponse{
		ID:              id,
		Parties:         r.Parties,
		RequestDate:     r.RequestDate.UTC(),
		AllocatedAmount: r.AllocatedAmount,
		Status:          request.Status(r.Status),
	}, nil
}

type negotiationRow struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	Parties
	NegotiationDate    time.Time
	InitialQuoteAmount decimal.Decimal
	FinalAmount        decimal.Decimal
	Status             int
	Notes              string
}

func (r negotiationRow) toResponse() (NegotiationResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return NegotiationResponse{}, err
	}
	requestID, err := kernel.UUIDFromBytes(r.RequestID[:])
	if err != nil {
		return NegotiationResponse{}, err
	}
	return NegotiationResponse{
		ID:                 id,
		RequestID:          requestID,
		Parties:            r.Parties,
		NegotiationDate:    r.NegotiationDate.UTC(),
		InitialQuoteAmount: r.InitialQuoteAmount,
		FinalAmount:        r.FinalAmount,
		Savings:            r.InitialQuoteAmount.Sub(r.FinalAmount),
		Status:             negotiation.Status(r.Status),
		Notes:              r.Notes,
	}, nil
}

type orderRow struct {
	ID            uuid.UUID
	RequestID     *uuid.UUID
	NegotiationID *uuid.UUID
	Parties
	OrderDate       time.Time
	AmountPrimary   decimal.Decimal
	AmountSecondary decimal.Decimal
	Status          int
}

func (r orderRow) toResponse() (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	requestID, err := optionalID(r.RequestID)
	if err != nil {
		return OrderResponse{}, err
	}
	negotiationID, err := optionalID(r.NegotiationID)
	if err != nil {
		return OrderResponse{}, err
	}
	return OrderResponse{
		ID:              id,
		Parties:         r.Parties,
		OrderDate:       r.OrderDate.UTC(),
		AmountPrimary:   r.AmountPrimary,
		AmountSecondary: r.AmountSecondary,
		Status:          order.Status(r.Status),
		RequestID:       requestID,
		NegotiationID:   negotiationID,
	}, nil
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapRows[R any, T any](rows []R, convert func(R) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := convert(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
