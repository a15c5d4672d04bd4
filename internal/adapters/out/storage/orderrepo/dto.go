// Package orderrepo persists purchase order aggregates with gorm.
package orderrepo

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the purchase_orders row. negotiation_id is unique: a negotiation
// owns at most one order. Both links are nullable.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestID       *uuid.UUID      `gorm:"type:uuid;index"`
	NegotiationID   *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	EventID         int64           `gorm:"not null;index"`
	EventName       string          `gorm:"size:255"`
	VendorID        int64           `gorm:"not null;index"`
	VendorName      string          `gorm:"size:255"`
	SubmitterID     string          `gorm:"size:50;not null;index"`
	OrderDate       time.Time       `gorm:"not null;index"`
	AmountPrimary   decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	AmountSecondary decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Status          int             `gorm:"not null;index"`
}

func (OrderDTO) TableName() string {
	return "purchase_orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	p := aggregate.Parties()

	var requestID *uuid.UUID
	if id := aggregate.RequestID(); id != nil {
		raw := id.Bytes()
		requestID = &raw
	}

	var negotiationID *uuid.UUID
	if id := aggregate.NegotiationID(); id != nil {
		raw := id.Bytes()
		negotiationID = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		RequestID:       requestID,
		NegotiationID:   negotiationID,
		EventID:         p.EventID(),
		EventName:       p.EventName(),
		VendorID:        p.VendorID(),
		VendorName:      p.VendorName(),
		SubmitterID:     p.SubmitterID(),
		OrderDate:       aggregate.OrderDate().UTC(),
		AmountPrimary:   aggregate.Amount().Primary(),
		AmountSecondary: aggregate.Amount().Secondary(),
		Status:          int(aggregate.Status()),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := optionalID(dto.RequestID)
	if err != nil {
		return nil, err
	}

	negotiationID, err := optionalID(dto.NegotiationID)
	if err != nil {
		return nil, err
	}

	parties, err := kernel.NewParties(dto.EventID, dto.EventName, dto.VendorID, dto.VendorName, dto.SubmitterID)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewDualAmount(dto.AmountPrimary, dto.AmountSecondary)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, parties, dto.OrderDate, amount, order.Status(dto.Status), requestID, negotiationID)
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
