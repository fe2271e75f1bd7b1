package models

import (
	"encoding/json"
	"testing"

	"tixpay/internal/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementRecord_RoundTripsBreakdown(t *testing.T) {
	s, err := settlement.NewFeeSchedule(settlement.ScheduleConfig{
		Version:                 "v1",
		CustomerFixedFeeCents:   199,
		OrganizerPercentageBps:  1000,
		OrganizerFixedFeeCents:  399,
		OrganizerThresholdCents: 3990,
	})
	require.NoError(t, err)

	req := settlement.SaleRequest{
		GrossValueCents:              6000,
		DiscountCents:                1000,
		PaymentMethod:                settlement.PaymentMethodCreditCard,
		CreditCardInstallments:       2,
		OrganizerFeePassedToCustomer: true,
	}
	b, err := settlement.Compute(req, s)
	require.NoError(t, err)

	rec := NewSettlementRecord("id-1", "order-1", req, b, NewJSON(map[string]interface{}{"event_id": "e1"}))

	assert.Equal(t, b, rec.Breakdown())
	assert.Equal(t, req, rec.SaleRequest())
	assert.Equal(t, "v1", rec.ScheduleVersion)
	assert.Equal(t, "e1", rec.Metadata["event_id"])
}

func TestFeeScheduleVersion_Schedule(t *testing.T) {
	s, err := settlement.NewFeeSchedule(settlement.ScheduleConfig{
		Version:                 "v2",
		OrganizerPercentageBps:  750,
		OrganizerThresholdCents: 1000,
		PaymentMethods: map[settlement.PaymentMethod]settlement.FeeRule{
			settlement.PaymentMethodPix: {ProcessingFee: settlement.ProcessingFee{Customer: settlement.Charge{Bps: 99}}},
		},
	})
	require.NoError(t, err)

	v := NewFeeScheduleVersion(s, 7)
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var loaded FeeScheduleVersion
	require.NoError(t, json.Unmarshal(raw, &loaded))

	rebuilt, err := loaded.Schedule()
	require.NoError(t, err)
	assert.Equal(t, s.Config(), rebuilt.Config())
	assert.Equal(t, uint(7), loaded.PublishedBy)
}

func TestJSON_Scan(t *testing.T) {
	var j JSON
	require.NoError(t, j.Scan([]byte(`{"coupon":"HALF"}`)))
	assert.Equal(t, "HALF", j["coupon"])

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)

	assert.Error(t, j.Scan(42))
}
