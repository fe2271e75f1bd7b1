package validation

import (
	"testing"

	"tixpay/internal/settlement"

	"github.com/stretchr/testify/assert"
)

func TestValidator_SaleRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        settlement.SaleRequest
		wantFields []string
	}{
		{
			name: "pix",
			req:  settlement.SaleRequest{GrossValueCents: 5000, PaymentMethod: settlement.PaymentMethodPix},
		},
		{
			name: "credit card with installments",
			req: settlement.SaleRequest{
				GrossValueCents:        5000,
				PaymentMethod:          settlement.PaymentMethodCreditCard,
				CreditCardInstallments: 3,
			},
		},
		{
			name:       "credit card without installments",
			req:        settlement.SaleRequest{GrossValueCents: 5000, PaymentMethod: settlement.PaymentMethodCreditCard},
			wantFields: []string{"credit_card_installments"},
		},
		{
			name:       "unknown method",
			req:        settlement.SaleRequest{GrossValueCents: 5000, PaymentMethod: "BOLETO"},
			wantFields: []string{"payment_method"},
		},
		{
			name: "negative amounts are left to the calculator",
			req:  settlement.SaleRequest{GrossValueCents: -1, PaymentMethod: settlement.PaymentMethodLink},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.SaleRequest(tt.req)

			var fields []string
			for _, e := range v.Errors {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Equal(t, len(tt.wantFields) == 0, v.Valid())
		})
	}
}

func TestValidator_SaleReference(t *testing.T) {
	valid := []string{"order-1", "A", "evt:2024.lot_3"}
	invalid := []string{"", "-leading", "has space", string(make([]byte, 129))}

	for _, ref := range valid {
		v := New()
		v.SaleReference(ref)
		assert.True(t, v.Valid(), ref)
	}
	for _, ref := range invalid {
		v := New()
		v.SaleReference(ref)
		assert.False(t, v.Valid(), ref)
	}
}

func TestValidator_Summary(t *testing.T) {
	v := New()
	assert.Equal(t, "", v.Summary())

	v.ScheduleVersion("")
	v.SaleReference("")
	assert.Equal(t, 2, len(v.Errors))
	assert.Contains(t, v.Summary(), "version: ")
	assert.Contains(t, v.Summary(), "; sale_reference: ")
}
