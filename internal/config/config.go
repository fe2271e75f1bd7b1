package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"tixpay/internal/settlement"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetInt64Env returns an int64 environment variable or a default value.
// A value that is set but not an integer is an error naming the key.
func GetInt64Env(key string, defaultVal int64) (int64, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal, nil
	}
	i, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, val, err)
	}
	return i, nil
}

// GetDurationEnv returns a time.Duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, val, err)
	}
	return d, nil
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// DefaultScheduleConfig builds the fee schedule used when no version has been published yet.
// FEE_PAYMENT_METHODS holds the payment method table as JSON, keyed by method.
// A malformed variable is an error rather than a silent default.
func DefaultScheduleConfig() (settlement.ScheduleConfig, error) {
	cfg := settlement.ScheduleConfig{
		Version:        GetEnv("FEE_SCHEDULE_VERSION", "default"),
		OverflowPolicy: settlement.FeeOverflowPolicy(GetEnv("FEE_OVERFLOW_POLICY", string(settlement.FeeOverflowClamp))),
	}

	ints := []struct {
		key        string
		defaultVal int64
		dst        *int64
	}{
		{"FEE_CUSTOMER_FIXED_CENTS", 199, &cfg.CustomerFixedFeeCents},
		{"FEE_ORGANIZER_PERCENT_BPS", 1000, &cfg.OrganizerPercentageBps},
		{"FEE_ORGANIZER_FIXED_CENTS", 399, &cfg.OrganizerFixedFeeCents},
		{"FEE_ORGANIZER_THRESHOLD_CENTS", 3990, &cfg.OrganizerThresholdCents},
	}
	for _, v := range ints {
		i, err := GetInt64Env(v.key, v.defaultVal)
		if err != nil {
			return settlement.ScheduleConfig{}, err
		}
		*v.dst = i
	}

	if raw := GetEnv("FEE_PAYMENT_METHODS", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.PaymentMethods); err != nil {
			return settlement.ScheduleConfig{}, fmt.Errorf("invalid FEE_PAYMENT_METHODS: %w", err)
		}
	}
	return cfg, nil
}
