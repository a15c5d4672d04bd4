// Package negotiationrepo persists negotiation aggregates with gorm.
package negotiationrepo

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NegotiationDTO is the negotiations row. request_id is unique: a request owns
// at most one negotiation.
type NegotiationDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	EventID            int64           `gorm:"not null;index"`
	EventName          string          `gorm:"size:255"`
	VendorID           int64           `gorm:"not null;index"`
	VendorName         string          `gorm:"size:255"`
	SubmitterID        string          `gorm:"size:50;not null;index"`
	NegotiationDate    time.Time       `gorm:"not null;index"`
	InitialQuoteAmount decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	FinalAmount        decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Status             int             `gorm:"not null;index"`
	Notes              string          `gorm:"type:text"`
}

func (NegotiationDTO) TableName() string {
	return "negotiations"
}

func fromDomain(aggregate *negotiation.Negotiation) NegotiationDTO {
	p := aggregate.Parties()
	return NegotiationDTO{
		ID:                 aggregate.ID().Bytes(),
		RequestID:          aggregate.RequestID().Bytes(),
		EventID:            p.EventID(),
		EventName:          p.EventName(),
		VendorID:           p.VendorID(),
		VendorName:         p.VendorName(),
		SubmitterID:        p.SubmitterID(),
		NegotiationDate:    aggregate.NegotiationDate().UTC(),
		InitialQuoteAmount: aggregate.InitialQuote(),
		FinalAmount:        aggregate.FinalAmount(),
		Status:             int(aggregate.Status()),
		Notes:              aggregate.Notes(),
	}
}

func toDomain(dto NegotiationDTO) (*negotiation.Negotiation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	parties, err := kernel.NewParties(dto.EventID, dto.EventName, dto.VendorID, dto.VendorName, dto.SubmitterID)
	if err != nil {
		return nil, err
	}

	return negotiation.RestoreNegotiation(
		id,
		requestID,
		parties,
		dto.NegotiationDate,
		dto.InitialQuoteAmount,
		dto.FinalAmount,
		negotiation.Status(dto.Status),
		dto.Notes,
	)
}
