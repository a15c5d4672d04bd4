// Package requestrepo persists purchase request aggregates with gorm.
package requestrepo

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestDTO is the purchase_requests row.
type RequestDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EventID         int64           `gorm:"not null;index"`
	EventName       string          `gorm:"size:255"`
	VendorID        int64           `gorm:"not null;index"`
	VendorName      string          `gorm:"size:255"`
	SubmitterID     string          `gorm:"size:50;not null;index"`
	RequestDate     time.Time       `gorm:"not null;index"`
	AllocatedAmount decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Status          int             `gorm:"not null;index"`
}

func (RequestDTO) TableName() string {
	return "purchase_requests"
}

func fromDomain(aggregate *request.Request) RequestDTO {
	p := aggregate.Parties()
	return RequestDTO{
		ID:              aggregate.ID().Bytes(),
		EventID:         p.EventID(),
		EventName:       p.EventName(),
		VendorID:        p.VendorID(),
		VendorName:      p.VendorName(),
		SubmitterID:     p.SubmitterID(),
		RequestDate:     aggregate.RequestDate().UTC(),
		AllocatedAmount: aggregate.AllocatedAmount(),
		Status:          int(aggregate.Status()),
	}
}

func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parties, err := kernel.NewParties(dto.EventID, dto.EventName, dto.VendorID, dto.VendorName, dto.SubmitterID)
	if err != nil {
		return nil, err
	}

	return request.RestoreRequest(id, parties, dto.RequestDate, dto.AllocatedAmount, request.Status(dto.Status))
}
