package settlement

import (
	"fmt"
	"log"
)

// SaleRequest is one ticket sale to be priced.
type SaleRequest struct {
	GrossValueCents              int64         `json:"gross_value_cents"`
	DiscountCents                int64         `json:"discount_cents"`
	PaymentMethod                PaymentMethod `json:"payment_method"`
	CreditCardInstallments       uint32        `json:"credit_card_installments,omitempty"`
	OrganizerFeePassedToCustomer bool          `json:"organizer_fee_passed_to_customer"`
}

func (r SaleRequest) validate() error {
	if r.GrossValueCents < 0 || r.DiscountCents < 0 {
		return ErrNegativeAmount
	}
	if r.GrossValueCents > MaxAmountCents {
		return ErrAmountOutOfRange
	}
	if r.DiscountCents > r.GrossValueCents {
		return fmt.Errorf("%w: discount %d, gross %d", ErrInvalidDiscount, r.DiscountCents, r.GrossValueCents)
	}
	if r.PaymentMethod == PaymentMethodCreditCard && r.CreditCardInstallments < 1 {
		return ErrInvalidInstallments
	}
	return nil
}

// Breakdown is the settlement of one sale. Values produced by Compute always satisfy
// Verify; values read back from storage must be checked with Verify before use.
type Breakdown struct {
	GrossValueCents          int64 `json:"gross_value_cents"`
	DiscountedValueCents     int64 `json:"discounted_value_cents"`
	CustomerFeeCents         int64 `json:"customer_fee_cents"`
	CustomerPaymentFeeCents  int64 `json:"customer_payment_fee_cents"`
	OrganizerFeeCents        int64 `json:"organizer_fee_cents"`
	OrganizerPayoutCents     int64 `json:"organizer_payout_cents"`
	PlatformPaymentFeeCents  int64 `json:"platform_payment_fee_cents"`
	GatewayFeeGainCents      int64 `json:"gateway_fee_gain_cents"`
	NetPlatformGainCents     int64 `json:"net_platform_gain_cents"`
	TotalPaidByCustomerCents int64 `json:"total_paid_by_customer_cents"`

	OrganizerFeePassedToCustomer bool          `json:"organizer_fee_passed_to_customer"`
	PaymentMethod                PaymentMethod `json:"payment_method"`
	CreditCardInstallments       uint32        `json:"credit_card_installments,omitempty"`
	ScheduleVersion              string        `json:"schedule_version"`
}

// Amount is a named monetary field of a Breakdown.
type Amount struct {
	Name  string
	Cents int64
}

// Amounts lists the monetary fields in a fixed order.
func (b Breakdown) Amounts() []Amount {
	return []Amount{
		{"gross_value_cents", b.GrossValueCents},
		{"discounted_value_cents", b.DiscountedValueCents},
		{"customer_fee_cents", b.CustomerFeeCents},
		{"customer_payment_fee_cents", b.CustomerPaymentFeeCents},
		{"organizer_fee_cents", b.OrganizerFeeCents},
		{"organizer_payout_cents", b.OrganizerPayoutCents},
		{"platform_payment_fee_cents", b.PlatformPaymentFeeCents},
		{"gateway_fee_gain_cents", b.GatewayFeeGainCents},
		{"net_platform_gain_cents", b.NetPlatformGainCents},
		{"total_paid_by_customer_cents", b.TotalPaidByCustomerCents},
	}
}

func (b Breakdown) String() string {
	s := fmt.Sprintf("schedule=%s method=%s installments=%d passthrough=%t",
		b.ScheduleVersion, b.PaymentMethod, b.CreditCardInstallments, b.OrganizerFeePassedToCustomer)
	for _, a := range b.Amounts() {
		s += fmt.Sprintf(" %s=%d", a.Name, a.Cents)
	}
	return s
}

// passthroughCents is the part of the organizer fee billed to the customer.
func (b Breakdown) passthroughCents() int64 {
	if b.OrganizerFeePassedToCustomer {
		return b.OrganizerFeeCents
	}
	return 0
}

// Compute prices req against schedule. It never returns a partial breakdown.
func Compute(req SaleRequest, schedule *FeeSchedule) (Breakdown, error) {
	if schedule == nil {
		return Breakdown{}, fmt.Errorf("%w: nil schedule", ErrInvalidSchedule)
	}
	if err := req.validate(); err != nil {
		return Breakdown{}, err
	}

	discounted := req.GrossValueCents - req.DiscountCents

	// A free ticket carries no fee of any kind.
	var customerFee int64
	if discounted > 0 {
		customerFee = schedule.customerFixedFeeCents
	}

	if schedule.overflowPolicy == FeeOverflowReject && schedule.fixedFeeOverflows(discounted) {
		return Breakdown{}, fmt.Errorf("%w: fixed fee %d, value %d",
			ErrFeeExceedsValue, schedule.organizerFixedFeeCents, discounted)
	}
	organizerFee := schedule.ResolveOrganizerFee(discounted)

	var installments uint32
	if req.PaymentMethod == PaymentMethodCreditCard {
		installments = req.CreditCardInstallments
	}
	customerPaymentFee, platformPaymentFee, gatewayFeeGain :=
		schedule.ResolvePaymentProcessingFee(discounted, req.PaymentMethod, installments)

	b := Breakdown{
		GrossValueCents:         req.GrossValueCents,
		DiscountedValueCents:    discounted,
		CustomerFeeCents:        customerFee,
		CustomerPaymentFeeCents: customerPaymentFee,
		OrganizerFeeCents:       organizerFee,
		// The organizer fee always comes out of the payout; passthrough only adds a
		// matching charge on the customer side.
		OrganizerPayoutCents:    discounted - organizerFee,
		PlatformPaymentFeeCents: platformPaymentFee,
		GatewayFeeGainCents:     gatewayFeeGain,

		OrganizerFeePassedToCustomer: req.OrganizerFeePassedToCustomer,
		PaymentMethod:                req.PaymentMethod,
		CreditCardInstallments:       installments,
		ScheduleVersion:              schedule.version,
	}
	b.TotalPaidByCustomerCents = discounted + customerFee + customerPaymentFee + b.passthroughCents()
	// The platform keeps the organizer fee whichever party funded it.
	b.NetPlatformGainCents = platformPaymentFee + gatewayFeeGain + customerFee + organizerFee

	if err := Verify(b); err != nil {
		log.Printf("settlement invariant violated: %v [%s]", err, b)
		return Breakdown{}, fmt.Errorf("%w: %w", ErrInternalInvariantViolation, err)
	}
	return b, nil
}
