package models

import (
	"time"

	"tixpay/internal/settlement"

	"gorm.io/datatypes"
)

// FeeScheduleVersion is a published fee schedule. Rows are never updated.
type FeeScheduleVersion struct {
	ID          uint                                          `gorm:"primarykey" json:"id"`
	Version     string                                        `gorm:"uniqueIndex;not null" json:"version"`
	Config      datatypes.JSONType[settlement.ScheduleConfig] `gorm:"type:jsonb;not null" json:"config"`
	PublishedBy uint                                          `json:"published_by"`
	CreatedAt   time.Time                                     `json:"created_at"`
}

// NewFeeScheduleVersion wraps a validated schedule for storage.
func NewFeeScheduleVersion(s *settlement.FeeSchedule, publishedBy uint) *FeeScheduleVersion {
	return &FeeScheduleVersion{
		Version:     s.Version(),
		Config:      datatypes.NewJSONType(s.Config()),
		PublishedBy: publishedBy,
	}
}

// Schedule rebuilds the immutable schedule from the stored configuration.
func (v *FeeScheduleVersion) Schedule() (*settlement.FeeSchedule, error) {
	return settlement.NewFeeSchedule(v.Config.Data())
}
