package repositories

import (
	"context"

	"tixpay/internal/models"

	"gorm.io/gorm"
)

type FeeScheduleRepository struct {
	db *gorm.DB
}

func NewFeeScheduleRepository(db *gorm.DB) *FeeScheduleRepository {
	return &FeeScheduleRepository{db: db}
}

// Create inserts a new version. Publishing an existing version label returns ErrDuplicate.
func (r *FeeScheduleRepository) Create(ctx context.Context, v *models.FeeScheduleVersion) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *FeeScheduleRepository) GetByVersion(ctx context.Context, version string) (*models.FeeScheduleVersion, error) {
	var v models.FeeScheduleVersion
	if err := r.db.WithContext(ctx).Where("version = ?", version).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// Latest returns the most recently published version.
func (r *FeeScheduleRepository) Latest(ctx context.Context) (*models.FeeScheduleVersion, error) {
	var v models.FeeScheduleVersion
	if err := r.db.WithContext(ctx).Order("id DESC").First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *FeeScheduleRepository) List(ctx context.Context) ([]models.FeeScheduleVersion, error) {
	var versions []models.FeeScheduleVersion
	err := r.db.WithContext(ctx).Order("id DESC").Find(&versions).Error
	return versions, err
}
