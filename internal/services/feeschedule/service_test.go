package feeschedule

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tixpay/internal/models"
	"tixpay/internal/repositories"
	"tixpay/internal/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

type MockCache struct {
	mock.Mock
}

func scheduleConfig(version string) settlement.ScheduleConfig {
	return settlement.ScheduleConfig{
		Version:                 version,
		CustomerFixedFeeCents:   199,
		OrganizerPercentageBps:  1000,
		OrganizerFixedFeeCents:  399,
		OrganizerThresholdCents: 3990,
		OverflowPolicy:          settlement.FeeOverflowClamp,
		PaymentMethods:          map[settlement.PaymentMethod]settlement.FeeRule{},
	}
}

func mustSchedule(t *testing.T, version string) *settlement.FeeSchedule {
	t.Helper()
	s, err := settlement.NewFeeSchedule(scheduleConfig(version))
	require.NoError(t, err)
	return s
}

func TestService_Publish(t *testing.T) {
	tests := []struct {
		name      string
		cfg       settlement.ScheduleConfig
		setupMock func(*MockRepository, *MockCache)
		wantErr   error
		wantSwap  bool
	}{
		{
			name: "activates new version",
			cfg:  scheduleConfig("v2"),
			setupMock: func(repo *MockRepository, cache *MockCache) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(v *models.FeeScheduleVersion) bool {
					return v.Version == "v2" && v.PublishedBy == 9
				})).Return(nil)
				cache.On("CacheFeeSchedule", mock.Anything, scheduleConfig("v2")).Return(nil)
			},
			wantSwap: true,
		},
		{
			name: "cache failure does not block publishing",
			cfg:  scheduleConfig("v2"),
			setupMock: func(repo *MockRepository, cache *MockCache) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
				cache.On("CacheFeeSchedule", mock.Anything, mock.Anything).Return(errors.New("redis down"))
			},
			wantSwap: true,
		},
		{
			name:    "missing version",
			cfg:     scheduleConfig(""),
			wantErr: ErrMissingVersion,
		},
		{
			name: "invalid schedule",
			cfg: func() settlement.ScheduleConfig {
				c := scheduleConfig("v2")
				c.OrganizerPercentageBps = 20000
				return c
			}(),
			wantErr: settlement.ErrInvalidSchedule,
		},
		{
			name:    "version label with spaces",
			cfg:     scheduleConfig("summer promo"),
			wantErr: settlement.ErrInvalidSchedule,
		},
		{
			name:    "version label with path separator",
			cfg:     scheduleConfig("../v2"),
			wantErr: settlement.ErrInvalidSchedule,
		},
		{
			name: "unknown payment method",
			cfg: func() settlement.ScheduleConfig {
				c := scheduleConfig("v2")
				c.PaymentMethods["BOLETO"] = settlement.FeeRule{}
				return c
			}(),
			wantErr: settlement.ErrInvalidSchedule,
		},
		{
			name: "duplicate version",
			cfg:  scheduleConfig("v1"),
			setupMock: func(repo *MockRepository, cache *MockCache) {
				repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicate)
			},
			wantErr: ErrVersionExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			cache := new(MockCache)
			if tt.setupMock != nil {
				tt.setupMock(repo, cache)
			}

			initial := mustSchedule(t, "v1")
			svc := NewService(repo, cache, NewStore(initial))

			row, err := svc.Publish(context.Background(), tt.cfg, 9)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, row)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.cfg.Version, row.Version)
			}

			if tt.wantSwap {
				assert.Equal(t, tt.cfg.Version, svc.Active().Version())
			} else {
				assert.Same(t, initial, svc.Active())
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_Version(t *testing.T) {
	ctx := context.Background()

	t.Run("active version short-circuits", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		active := mustSchedule(t, "v3")
		svc := NewService(repo, cache, NewStore(active))

		got, err := svc.Version(ctx, "v3")
		require.NoError(t, err)
		assert.Same(t, active, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		cfg := scheduleConfig("v1")
		cache.On("GetFeeSchedule", ctx, "v1").Return(&cfg, nil)
		svc := NewService(repo, cache, NewStore(mustSchedule(t, "v3")))

		got, err := svc.Version(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, cfg, got.Config())
		repo.AssertExpectations(t)
	})

	t.Run("cache miss loads from repository and caches", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		stored := models.NewFeeScheduleVersion(mustSchedule(t, "v1"), 1)
		cache.On("GetFeeSchedule", ctx, "v1").Return(nil, nil)
		repo.On("GetByVersion", ctx, "v1").Return(stored, nil)
		cache.On("CacheFeeSchedule", ctx, scheduleConfig("v1")).Return(nil)
		svc := NewService(repo, cache, NewStore(mustSchedule(t, "v3")))

		got, err := svc.Version(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "v1", got.Version())
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache error falls through to repository", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		stored := models.NewFeeScheduleVersion(mustSchedule(t, "v1"), 1)
		cache.On("GetFeeSchedule", ctx, "v1").Return(nil, errors.New("timeout"))
		repo.On("GetByVersion", ctx, "v1").Return(stored, nil)
		cache.On("CacheFeeSchedule", ctx, mock.Anything).Return(nil)
		svc := NewService(repo, cache, NewStore(nil))

		got, err := svc.Version(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "v1", got.Version())
	})

	t.Run("unknown version", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		cache.On("GetFeeSchedule", ctx, "nope").Return(nil, nil)
		repo.On("GetByVersion", ctx, "nope").Return(nil, repositories.ErrNotFound)
		svc := NewService(repo, cache, NewStore(nil))

		_, err := svc.Version(ctx, "nope")
		assert.ErrorIs(t, err, ErrVersionNotFound)
	})
}

func TestService_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("loads latest stored version", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("Latest", ctx).Return(models.NewFeeScheduleVersion(mustSchedule(t, "v7"), 1), nil)
		cache.On("CacheFeeSchedule", ctx, mock.Anything).Return(nil)
		svc := NewService(repo, cache, nil)

		require.NoError(t, svc.Bootstrap(ctx, scheduleConfig("default")))
		assert.Equal(t, "v7", svc.Active().Version())
	})

	t.Run("publishes fallback on empty store", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("Latest", ctx).Return(nil, repositories.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)
		cache.On("CacheFeeSchedule", ctx, mock.Anything).Return(nil)
		svc := NewService(repo, cache, nil)

		require.NoError(t, svc.Bootstrap(ctx, scheduleConfig("default")))
		assert.Equal(t, "default", svc.Active().Version())
		repo.AssertExpectations(t)
	})

	t.Run("database failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Latest", ctx).Return(nil, errors.New("connection refused"))
		svc := NewService(repo, nil, nil)

		assert.Error(t, svc.Bootstrap(ctx, scheduleConfig("default")))
		assert.Nil(t, svc.Active())
	})
}

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("picks up version published elsewhere", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("Latest", ctx).Return(models.NewFeeScheduleVersion(mustSchedule(t, "v2"), 1), nil)
		cache.On("CacheFeeSchedule", ctx, scheduleConfig("v2")).Return(nil)
		svc := NewService(repo, cache, NewStore(mustSchedule(t, "v1")))

		require.NoError(t, svc.Refresh(ctx))
		assert.Equal(t, "v2", svc.Active().Version())
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("active version is kept", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("Latest", ctx).Return(models.NewFeeScheduleVersion(mustSchedule(t, "v1"), 1), nil)
		active := mustSchedule(t, "v1")
		svc := NewService(repo, cache, NewStore(active))

		require.NoError(t, svc.Refresh(ctx))
		assert.Same(t, active, svc.Active())
		cache.AssertNotCalled(t, "CacheFeeSchedule", mock.Anything, mock.Anything)
	})

	t.Run("empty store", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Latest", ctx).Return(nil, repositories.ErrNotFound)
		active := mustSchedule(t, "v1")
		svc := NewService(repo, nil, NewStore(active))

		require.NoError(t, svc.Refresh(ctx))
		assert.Same(t, active, svc.Active())
	})

	t.Run("database failure keeps active version", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Latest", ctx).Return(nil, errors.New("connection refused"))
		active := mustSchedule(t, "v1")
		svc := NewService(repo, nil, NewStore(active))

		assert.Error(t, svc.Refresh(ctx))
		assert.Same(t, active, svc.Active())
	})
}

func TestStore_SwapWhileReading(t *testing.T) {
	store := NewStore(mustSchedule(t, "v0"))
	versions := []*settlement.FeeSchedule{mustSchedule(t, "v1"), mustSchedule(t, "v2"), mustSchedule(t, "v3")}
	req := settlement.SaleRequest{GrossValueCents: 5000, PaymentMethod: settlement.PaymentMethodPix}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				schedule := store.Load()
				b, err := settlement.Compute(req, schedule)
				if err != nil || b.ScheduleVersion != schedule.Version() {
					t.Errorf("breakdown %q computed against %q: %v", b.ScheduleVersion, schedule.Version(), err)
					return
				}
			}
		}()
	}
	for _, next := range versions {
		store.Swap(next)
	}
	wg.Wait()

	assert.Equal(t, "v3", store.Load().Version())
}

// Implement required mock methods
func (m *MockRepository) Create(ctx context.Context, v *models.FeeScheduleVersion) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockRepository) GetByVersion(ctx context.Context, version string) (*models.FeeScheduleVersion, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeScheduleVersion), args.Error(1)
}

func (m *MockRepository) Latest(ctx context.Context) (*models.FeeScheduleVersion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeScheduleVersion), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]models.FeeScheduleVersion, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.FeeScheduleVersion), args.Error(1)
}

func (m *MockCache) CacheFeeSchedule(ctx context.Context, cfg settlement.ScheduleConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockCache) GetFeeSchedule(ctx context.Context, version string) (*settlement.ScheduleConfig, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.ScheduleConfig), args.Error(1)
}
