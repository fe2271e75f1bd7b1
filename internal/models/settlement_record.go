package models

import (
	"time"

	"tixpay/internal/settlement"
)

// SettlementRecord is a persisted settlement: the sale inputs next to the computed breakdown.
// Inputs are stored on their own so an audit can recompute and compare.
type SettlementRecord struct {
	ID              string `gorm:"type:uuid;primaryKey" json:"id"`
	SaleReference   string `gorm:"uniqueIndex;not null" json:"sale_reference"`
	ScheduleVersion string `gorm:"index;not null" json:"schedule_version"`

	// Inputs
	GrossValueCents              int64  `gorm:"not null" json:"gross_value_cents"`
	DiscountCents                int64  `gorm:"not null;default:0" json:"discount_cents"`
	PaymentMethod                string `gorm:"not null" json:"payment_method"`
	CreditCardInstallments       uint32 `gorm:"not null;default:0" json:"credit_card_installments"`
	OrganizerFeePassedToCustomer bool   `gorm:"not null;default:false" json:"organizer_fee_passed_to_customer"`

	// Breakdown
	DiscountedValueCents     int64 `gorm:"not null" json:"discounted_value_cents"`
	CustomerFeeCents         int64 `gorm:"not null" json:"customer_fee_cents"`
	CustomerPaymentFeeCents  int64 `gorm:"not null" json:"customer_payment_fee_cents"`
	OrganizerFeeCents        int64 `gorm:"not null" json:"organizer_fee_cents"`
	OrganizerPayoutCents     int64 `gorm:"not null" json:"organizer_payout_cents"`
	PlatformPaymentFeeCents  int64 `gorm:"not null" json:"platform_payment_fee_cents"`
	GatewayFeeGainCents      int64 `gorm:"not null" json:"gateway_fee_gain_cents"`
	NetPlatformGainCents     int64 `gorm:"not null" json:"net_platform_gain_cents"`
	TotalPaidByCustomerCents int64 `gorm:"not null" json:"total_paid_by_customer_cents"`

	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSettlementRecord snapshots a computed breakdown.
func NewSettlementRecord(id, saleReference string, req settlement.SaleRequest, b settlement.Breakdown, metadata JSON) *SettlementRecord {
	return &SettlementRecord{
		ID:                           id,
		SaleReference:                saleReference,
		ScheduleVersion:              b.ScheduleVersion,
		GrossValueCents:              b.GrossValueCents,
		DiscountCents:                req.DiscountCents,
		PaymentMethod:                string(b.PaymentMethod),
		CreditCardInstallments:       b.CreditCardInstallments,
		OrganizerFeePassedToCustomer: b.OrganizerFeePassedToCustomer,
		DiscountedValueCents:         b.DiscountedValueCents,
		CustomerFeeCents:             b.CustomerFeeCents,
		CustomerPaymentFeeCents:      b.CustomerPaymentFeeCents,
		OrganizerFeeCents:            b.OrganizerFeeCents,
		OrganizerPayoutCents:         b.OrganizerPayoutCents,
		PlatformPaymentFeeCents:      b.PlatformPaymentFeeCents,
		GatewayFeeGainCents:          b.GatewayFeeGainCents,
		NetPlatformGainCents:         b.NetPlatformGainCents,
		TotalPaidByCustomerCents:     b.TotalPaidByCustomerCents,
		Metadata:                     metadata,
	}
}

// SaleRequest returns the inputs the record was computed from.
func (r *SettlementRecord) SaleRequest() settlement.SaleRequest {
	return settlement.SaleRequest{
		GrossValueCents:              r.GrossValueCents,
		DiscountCents:                r.DiscountCents,
		PaymentMethod:                settlement.PaymentMethod(r.PaymentMethod),
		CreditCardInstallments:       r.CreditCardInstallments,
		OrganizerFeePassedToCustomer: r.OrganizerFeePassedToCustomer,
	}
}

// Breakdown returns the stored breakdown as-is, without checking it.
func (r *SettlementRecord) Breakdown() settlement.Breakdown {
	return settlement.Breakdown{
		GrossValueCents:              r.GrossValueCents,
		DiscountedValueCents:         r.DiscountedValueCents,
		CustomerFeeCents:             r.CustomerFeeCents,
		CustomerPaymentFeeCents:      r.CustomerPaymentFeeCents,
		OrganizerFeeCents:            r.OrganizerFeeCents,
		OrganizerPayoutCents:         r.OrganizerPayoutCents,
		PlatformPaymentFeeCents:      r.PlatformPaymentFeeCents,
		GatewayFeeGainCents:          r.GatewayFeeGainCents,
		NetPlatformGainCents:         r.NetPlatformGainCents,
		TotalPaidByCustomerCents:     r.TotalPaidByCustomerCents,
		OrganizerFeePassedToCustomer: r.OrganizerFeePassedToCustomer,
		PaymentMethod:                settlement.PaymentMethod(r.PaymentMethod),
		CreditCardInstallments:       r.CreditCardInstallments,
		ScheduleVersion:              r.ScheduleVersion,
	}
}
