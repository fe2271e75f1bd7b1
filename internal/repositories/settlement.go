package repositories

import (
	"context"

	"tixpay/internal/models"

	"gorm.io/gorm"
)

type SettlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) Create(ctx context.Context, rec *models.SettlementRecord) error {
	return translate(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*models.SettlementRecord, error) {
	var rec models.SettlementRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *SettlementRepository) GetBySaleReference(ctx context.Context, ref string) (*models.SettlementRecord, error) {
	var rec models.SettlementRecord
	if err := r.db.WithContext(ctx).Where("sale_reference = ?", ref).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// List returns a page of records, oldest first, and the total count.
func (r *SettlementRepository) List(ctx context.Context, limit, offset int) ([]models.SettlementRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.SettlementRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.SettlementRecord
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, total, err
}
