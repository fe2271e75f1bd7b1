package feeschedule

import (
	"context"

	"tixpay/internal/models"
	"tixpay/internal/settlement"
)

// Service manages published fee schedule versions and the one currently in force.
type Service interface {
	// Active returns the schedule in force, or nil before Bootstrap.
	Active() *settlement.FeeSchedule
	// Version returns a published schedule by its label.
	Version(ctx context.Context, version string) (*settlement.FeeSchedule, error)
	// Publish validates, stores and activates a new version.
	Publish(ctx context.Context, cfg settlement.ScheduleConfig, publishedBy uint) (*models.FeeScheduleVersion, error)
	List(ctx context.Context) ([]models.FeeScheduleVersion, error)
	// Bootstrap activates the latest stored version, publishing fallback if there is none.
	Bootstrap(ctx context.Context, fallback settlement.ScheduleConfig) error
	// Refresh activates the latest stored version if another process published it.
	Refresh(ctx context.Context) error
}

type Repository interface {
	Create(ctx context.Context, v *models.FeeScheduleVersion) error
	GetByVersion(ctx context.Context, version string) (*models.FeeScheduleVersion, error)
	Latest(ctx context.Context) (*models.FeeScheduleVersion, error)
	List(ctx context.Context) ([]models.FeeScheduleVersion, error)
}

type Cache interface {
	CacheFeeSchedule(ctx context.Context, cfg settlement.ScheduleConfig) error
	GetFeeSchedule(ctx context.Context, version string) (*settlement.ScheduleConfig, error)
}
