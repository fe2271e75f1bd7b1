package config

import (
	"testing"
	"time"

	"tixpay/internal/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInt64Env(t *testing.T) {
	t.Setenv("TEST_INT64", "123456789012")
	i, err := GetInt64Env("TEST_INT64", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789012), i)

	t.Setenv("TEST_INT64", "10%")
	_, err = GetInt64Env("TEST_INT64", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_INT64")

	i, err = GetInt64Env("TEST_INT64_UNSET", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), i)
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("TEST_DURATION", "45s")
	d, err := GetDurationEnv("TEST_DURATION", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	t.Setenv("TEST_DURATION", "45")
	_, err = GetDurationEnv("TEST_DURATION", time.Minute)
	assert.Error(t, err)

	d, err = GetDurationEnv("TEST_DURATION_UNSET", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)
}

func TestDefaultScheduleConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := DefaultScheduleConfig()
		require.NoError(t, err)

		assert.Equal(t, "default", cfg.Version)
		assert.Equal(t, int64(199), cfg.CustomerFixedFeeCents)
		assert.Equal(t, int64(1000), cfg.OrganizerPercentageBps)
		assert.Equal(t, int64(399), cfg.OrganizerFixedFeeCents)
		assert.Equal(t, int64(3990), cfg.OrganizerThresholdCents)
		assert.Equal(t, settlement.FeeOverflowClamp, cfg.OverflowPolicy)
		assert.Empty(t, cfg.PaymentMethods)

		_, err = settlement.NewFeeSchedule(cfg)
		assert.NoError(t, err)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("FEE_SCHEDULE_VERSION", "2024-07")
		t.Setenv("FEE_CUSTOMER_FIXED_CENTS", "250")
		t.Setenv("FEE_OVERFLOW_POLICY", "reject")
		t.Setenv("FEE_PAYMENT_METHODS", `{"PIX":{"customer":{"bps":99,"fixed_cents":0}},
			"CREDIT_CARD":{"customer":{"bps":399,"fixed_cents":49},"installments":[{"min_installments":2,"customer":{"bps":599}}]}}`)

		cfg, err := DefaultScheduleConfig()
		require.NoError(t, err)
		assert.Equal(t, "2024-07", cfg.Version)
		assert.Equal(t, int64(250), cfg.CustomerFixedFeeCents)
		assert.Equal(t, settlement.FeeOverflowReject, cfg.OverflowPolicy)
		require.Len(t, cfg.PaymentMethods, 2)
		assert.Equal(t, int64(99), cfg.PaymentMethods[settlement.PaymentMethodPix].Customer.Bps)
		require.Len(t, cfg.PaymentMethods[settlement.PaymentMethodCreditCard].Installments, 1)
		assert.Equal(t, int64(599), cfg.PaymentMethods[settlement.PaymentMethodCreditCard].Installments[0].Customer.Bps)
	})

	t.Run("malformed values are rejected", func(t *testing.T) {
		tests := []struct {
			name    string
			key     string
			value   string
			wantErr string
		}{
			{name: "percent sign", key: "FEE_ORGANIZER_PERCENT_BPS", value: "10%", wantErr: "FEE_ORGANIZER_PERCENT_BPS"},
			{name: "decimal cents", key: "FEE_CUSTOMER_FIXED_CENTS", value: "1.99", wantErr: "FEE_CUSTOMER_FIXED_CENTS"},
			{name: "truncated table", key: "FEE_PAYMENT_METHODS", value: "{", wantErr: "FEE_PAYMENT_METHODS"},
			{name: "bps as string", key: "FEE_PAYMENT_METHODS", value: `{"PIX":{"customer":{"bps":"100"}}}`, wantErr: "FEE_PAYMENT_METHODS"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Setenv(tt.key, tt.value)

				_, err := DefaultScheduleConfig()
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})
}
