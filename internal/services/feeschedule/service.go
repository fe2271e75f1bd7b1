package feeschedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"tixpay/internal/models"
	"tixpay/internal/repositories"
	"tixpay/internal/settlement"
	"tixpay/internal/utils/validation"
)

type service struct {
	repo  Repository
	cache Cache
	store *Store

	// serializes publishers so the active schedule is always the last one stored
	publishMu sync.Mutex
}

// NewService creates a new fee schedule service
func NewService(repo Repository, cache Cache, store *Store) Service {
	if store == nil {
		store = NewStore(nil)
	}
	return &service{
		repo:  repo,
		cache: cache,
		store: store,
	}
}

func (s *service) Active() *settlement.FeeSchedule {
	return s.store.Load()
}

func (s *service) Version(ctx context.Context, version string) (*settlement.FeeSchedule, error) {
	if active := s.store.Load(); active != nil && active.Version() == version {
		return active, nil
	}

	if s.cache != nil {
		cfg, err := s.cache.GetFeeSchedule(ctx, version)
		if err != nil {
			log.Printf("fee schedule cache read failed for %s: %v", version, err)
		} else if cfg != nil {
			if schedule, err := settlement.NewFeeSchedule(*cfg); err == nil {
				return schedule, nil
			}
			log.Printf("discarding invalid cached fee schedule %s", version)
		}
	}

	stored, err := s.repo.GetByVersion(ctx, version)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, version)
		}
		return nil, fmt.Errorf("failed to load fee schedule %s: %w", version, err)
	}
	schedule, err := stored.Schedule()
	if err != nil {
		return nil, fmt.Errorf("stored fee schedule %s is invalid: %w", version, err)
	}
	s.remember(ctx, schedule)
	return schedule, nil
}

func (s *service) Publish(ctx context.Context, cfg settlement.ScheduleConfig, publishedBy uint) (*models.FeeScheduleVersion, error) {
	if cfg.Version == "" {
		return nil, ErrMissingVersion
	}
	v := validation.New()
	v.ScheduleVersion(cfg.Version)
	for method := range cfg.PaymentMethods {
		v.Check(validation.KnownPaymentMethod(method), "payment_methods", "unknown payment method "+string(method))
	}
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", settlement.ErrInvalidSchedule, v.Summary())
	}
	schedule, err := settlement.NewFeeSchedule(cfg)
	if err != nil {
		return nil, err
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	row := models.NewFeeScheduleVersion(schedule, publishedBy)
	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrVersionExists, cfg.Version)
		}
		return nil, fmt.Errorf("failed to store fee schedule %s: %w", cfg.Version, err)
	}
	s.remember(ctx, schedule)

	previous := s.store.Swap(schedule)
	if previous != nil {
		log.Printf("fee schedule %s replaced %s (published by %d)", schedule.Version(), previous.Version(), publishedBy)
	} else {
		log.Printf("fee schedule %s activated (published by %d)", schedule.Version(), publishedBy)
	}
	return row, nil
}

func (s *service) List(ctx context.Context) ([]models.FeeScheduleVersion, error) {
	return s.repo.List(ctx)
}

func (s *service) Bootstrap(ctx context.Context, fallback settlement.ScheduleConfig) error {
	latest, err := s.repo.Latest(ctx)
	switch {
	case err == nil:
		schedule, err := latest.Schedule()
		if err != nil {
			return fmt.Errorf("stored fee schedule %s is invalid: %w", latest.Version, err)
		}
		s.store.Swap(schedule)
		s.remember(ctx, schedule)
		log.Printf("fee schedule %s loaded", schedule.Version())
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		log.Printf("no fee schedule stored, publishing %s from configuration", fallback.Version)
		_, err := s.Publish(ctx, fallback, 0)
		return err
	default:
		return fmt.Errorf("failed to load latest fee schedule: %w", err)
	}
}

// Refresh activates the latest stored version when it differs from the active one,
// picking up versions published by another process.
func (s *service) Refresh(ctx context.Context) error {
	latest, err := s.repo.Latest(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load latest fee schedule: %w", err)
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	active := s.store.Load()
	if active != nil && active.Version() == latest.Version {
		return nil
	}
	schedule, err := latest.Schedule()
	if err != nil {
		return fmt.Errorf("stored fee schedule %s is invalid: %w", latest.Version, err)
	}
	s.store.Swap(schedule)
	s.remember(ctx, schedule)
	if active != nil {
		log.Printf("fee schedule %s picked up, replacing %s", schedule.Version(), active.Version())
	} else {
		log.Printf("fee schedule %s picked up", schedule.Version())
	}
	return nil
}

func (s *service) remember(ctx context.Context, schedule *settlement.FeeSchedule) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheFeeSchedule(ctx, schedule.Config()); err != nil {
		log.Printf("failed to cache fee schedule %s: %v", schedule.Version(), err)
	}
}
