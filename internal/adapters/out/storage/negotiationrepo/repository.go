package negotiationrepo

import (
	"context"
	"errors"

	"procurement/internal/adapters/out/storage/rowlock"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNegotiationRepository implements ports.NegotiationRepository.
type GormNegotiationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormNegotiationRepository(db *gorm.DB, tracker aggregateTracker) *GormNegotiationRepository {
	return &GormNegotiationRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormNegotiationRepository) Add(ctx context.Context, aggregate *negotiation.Negotiation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormNegotiationRepository) Update(ctx context.Context, aggregate *negotiation.Negotiation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&NegotiationDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("negotiation", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormNegotiationRepository) Get(ctx context.Context, id kernel.UUID) (*negotiation.Negotiation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NegotiationDTO
	if err := rowlock.ForUpdate(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("negotiation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormNegotiationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&NegotiationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("negotiation", id.String())
	}
	return nil
}

func (r *GormNegotiationRepository) FindByRequest(ctx context.Context, requestID kernel.UUID) (*negotiation.Negotiation, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NegotiationDTO
	if err := rowlock.ForUpdate(r.db.WithContext(ctx)).
		Where("request_id = ?", requestID.Bytes()).
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return nil, nil
	}
	return toDomain(dtos[0])
}
