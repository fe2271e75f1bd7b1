package settlement

import (
	"fmt"
	"sort"
)

// MaxAmountCents bounds every monetary input so that sums of fees stay far from int64 overflow.
const MaxAmountCents int64 = 1e15

// MaxBps is 100%.
const MaxBps int64 = 10000

type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodLink       PaymentMethod = "LINK"
)

// FeeOverflowPolicy decides what happens when a fixed organizer fee is larger
// than the discounted value it is levied on.
type FeeOverflowPolicy string

const (
	// FeeOverflowClamp lowers the fee to the discounted value; the payout floors at zero.
	FeeOverflowClamp FeeOverflowPolicy = "clamp"
	// FeeOverflowReject fails the computation with ErrFeeExceedsValue.
	FeeOverflowReject FeeOverflowPolicy = "reject"
)

// Charge is a basis-point rate plus a flat amount.
type Charge struct {
	Bps        int64 `json:"bps"`
	FixedCents int64 `json:"fixed_cents"`
}

func (c Charge) apply(valueCents int64) int64 {
	if valueCents <= 0 {
		return 0
	}
	return RoundHalfUpBps(valueCents, c.Bps) + c.FixedCents
}

func (c Charge) validate(field string) error {
	if c.Bps < 0 || c.Bps > MaxBps {
		return fmt.Errorf("%w: %s.bps %d outside [0, %d]", ErrInvalidSchedule, field, c.Bps, MaxBps)
	}
	if c.FixedCents < 0 || c.FixedCents > MaxAmountCents {
		return fmt.Errorf("%w: %s.fixed_cents %d out of range", ErrInvalidSchedule, field, c.FixedCents)
	}
	return nil
}

// ProcessingFee splits a payment method's processing fee into what the customer is
// charged, what the platform keeps as its margin and what it gains on the gateway spread.
type ProcessingFee struct {
	Customer Charge `json:"customer"`
	Platform Charge `json:"platform"`
	Gateway  Charge `json:"gateway"`
}

func (p ProcessingFee) validate(field string) error {
	if err := p.Customer.validate(field + ".customer"); err != nil {
		return err
	}
	if err := p.Platform.validate(field + ".platform"); err != nil {
		return err
	}
	return p.Gateway.validate(field + ".gateway")
}

// InstallmentTier overrides a credit card rule from MinInstallments upwards.
type InstallmentTier struct {
	MinInstallments uint32 `json:"min_installments"`
	ProcessingFee
}

// FeeRule is the processing fee of one payment method.
type FeeRule struct {
	ProcessingFee
	// Installments only applies to PaymentMethodCreditCard.
	Installments []InstallmentTier `json:"installments,omitempty"`
}

func (r FeeRule) clone() FeeRule {
	out := r
	if r.Installments != nil {
		out.Installments = append([]InstallmentTier(nil), r.Installments...)
	}
	return out
}

// forInstallments picks the tier with the largest MinInstallments not above n.
// Tiers are kept sorted by NewFeeSchedule.
func (r FeeRule) forInstallments(n uint32) ProcessingFee {
	fee := r.ProcessingFee
	for _, tier := range r.Installments {
		if tier.MinInstallments > n {
			break
		}
		fee = tier.ProcessingFee
	}
	return fee
}

// ScheduleConfig is the serializable form of a FeeSchedule.
type ScheduleConfig struct {
	Version                 string                    `json:"version"`
	CustomerFixedFeeCents   int64                     `json:"customer_fixed_fee_cents"`
	OrganizerPercentageBps  int64                     `json:"organizer_percentage_bps"`
	OrganizerFixedFeeCents  int64                     `json:"organizer_fixed_fee_cents"`
	OrganizerThresholdCents int64                     `json:"organizer_threshold_cents"`
	PaymentMethods          map[PaymentMethod]FeeRule `json:"payment_methods,omitempty"`
	OverflowPolicy          FeeOverflowPolicy         `json:"overflow_policy,omitempty"`
}

// FeeSchedule is an immutable set of fee rules. A new fee version is a new FeeSchedule.
type FeeSchedule struct {
	version                 string
	customerFixedFeeCents   int64
	organizerPercentageBps  int64
	organizerFixedFeeCents  int64
	organizerThresholdCents int64
	paymentMethods          map[PaymentMethod]FeeRule
	overflowPolicy          FeeOverflowPolicy
}

// NewFeeSchedule validates cfg and returns a schedule holding its own copy of the rules.
func NewFeeSchedule(cfg ScheduleConfig) (*FeeSchedule, error) {
	amounts := []struct {
		name  string
		value int64
	}{
		{"customer_fixed_fee_cents", cfg.CustomerFixedFeeCents},
		{"organizer_fixed_fee_cents", cfg.OrganizerFixedFeeCents},
		{"organizer_threshold_cents", cfg.OrganizerThresholdCents},
	}
	for _, a := range amounts {
		if a.value < 0 || a.value > MaxAmountCents {
			return nil, fmt.Errorf("%w: %s %d out of range", ErrInvalidSchedule, a.name, a.value)
		}
	}
	if cfg.OrganizerPercentageBps < 0 || cfg.OrganizerPercentageBps > MaxBps {
		return nil, fmt.Errorf("%w: organizer_percentage_bps %d outside [0, %d]",
			ErrInvalidSchedule, cfg.OrganizerPercentageBps, MaxBps)
	}

	policy := cfg.OverflowPolicy
	switch policy {
	case "":
		policy = FeeOverflowClamp
	case FeeOverflowClamp, FeeOverflowReject:
	default:
		return nil, fmt.Errorf("%w: unknown overflow policy %q", ErrInvalidSchedule, policy)
	}

	methods := make(map[PaymentMethod]FeeRule, len(cfg.PaymentMethods))
	for method, rule := range cfg.PaymentMethods {
		field := "payment_methods." + string(method)
		if err := rule.validate(field); err != nil {
			return nil, err
		}
		rule = rule.clone()
		sort.Slice(rule.Installments, func(i, j int) bool {
			return rule.Installments[i].MinInstallments < rule.Installments[j].MinInstallments
		})
		for i, tier := range rule.Installments {
			if tier.MinInstallments < 1 {
				return nil, fmt.Errorf("%w: %s installment tier below 1", ErrInvalidSchedule, field)
			}
			if i > 0 && rule.Installments[i-1].MinInstallments == tier.MinInstallments {
				return nil, fmt.Errorf("%w: %s duplicate installment tier %d",
					ErrInvalidSchedule, field, tier.MinInstallments)
			}
			if err := tier.validate(fmt.Sprintf("%s.installments[%d]", field, tier.MinInstallments)); err != nil {
				return nil, err
			}
		}
		methods[method] = rule
	}

	return &FeeSchedule{
		version:                 cfg.Version,
		customerFixedFeeCents:   cfg.CustomerFixedFeeCents,
		organizerPercentageBps:  cfg.OrganizerPercentageBps,
		organizerFixedFeeCents:  cfg.OrganizerFixedFeeCents,
		organizerThresholdCents: cfg.OrganizerThresholdCents,
		paymentMethods:          methods,
		overflowPolicy:          policy,
	}, nil
}

// Version is the label stamped on every breakdown computed with s.
func (s *FeeSchedule) Version() string { return s.version }

// CustomerFixedFeeCents is the flat service fee billed to the customer per sale.
func (s *FeeSchedule) CustomerFixedFeeCents() int64 { return s.customerFixedFeeCents }

// OrganizerPercentageBps is the organizer fee rate applied above the threshold.
func (s *FeeSchedule) OrganizerPercentageBps() int64 { return s.organizerPercentageBps }

// OrganizerFixedFeeCents is the flat organizer fee charged at or below the threshold.
func (s *FeeSchedule) OrganizerFixedFeeCents() int64 { return s.organizerFixedFeeCents }

// OrganizerThresholdCents is the largest discounted value still charged the fixed fee.
func (s *FeeSchedule) OrganizerThresholdCents() int64 { return s.organizerThresholdCents }

// OverflowPolicy decides what happens when the organizer fee exceeds the discounted value.
func (s *FeeSchedule) OverflowPolicy() FeeOverflowPolicy { return s.overflowPolicy }

// Config returns a copy of the configuration the schedule was built from.
func (s *FeeSchedule) Config() ScheduleConfig {
	methods := make(map[PaymentMethod]FeeRule, len(s.paymentMethods))
	for method, rule := range s.paymentMethods {
		methods[method] = rule.clone()
	}
	return ScheduleConfig{
		Version:                 s.version,
		CustomerFixedFeeCents:   s.customerFixedFeeCents,
		OrganizerPercentageBps:  s.organizerPercentageBps,
		OrganizerFixedFeeCents:  s.organizerFixedFeeCents,
		OrganizerThresholdCents: s.organizerThresholdCents,
		PaymentMethods:          methods,
		OverflowPolicy:          s.overflowPolicy,
	}
}

// ResolveOrganizerFee returns the organizer fee for a discounted value. Above the
// threshold (strictly) the percentage applies; at or below it the fixed fee applies,
// clamped to the value itself.
func (s *FeeSchedule) ResolveOrganizerFee(valueAfterDiscountCents int64) int64 {
	if valueAfterDiscountCents <= 0 {
		return 0
	}
	if valueAfterDiscountCents > s.organizerThresholdCents {
		return RoundHalfUpBps(valueAfterDiscountCents, s.organizerPercentageBps)
	}
	return min(s.organizerFixedFeeCents, valueAfterDiscountCents)
}

// fixedFeeOverflows reports whether the fixed-fee branch would have to be clamped.
func (s *FeeSchedule) fixedFeeOverflows(valueAfterDiscountCents int64) bool {
	return valueAfterDiscountCents > 0 &&
		valueAfterDiscountCents <= s.organizerThresholdCents &&
		s.organizerFixedFeeCents > valueAfterDiscountCents
}

// ResolvePaymentProcessingFee returns the customer, platform and gateway portions of the
// processing fee. A method missing from the table costs nothing.
func (s *FeeSchedule) ResolvePaymentProcessingFee(
	valueAfterDiscountCents int64,
	method PaymentMethod,
	installments uint32,
) (customerPortion, platformPortion, gatewayPortion int64) {
	rule, ok := s.paymentMethods[method]
	if !ok || valueAfterDiscountCents <= 0 {
		return 0, 0, 0
	}
	fee := rule.ProcessingFee
	if method == PaymentMethodCreditCard {
		fee = rule.forInstallments(installments)
	}
	return fee.Customer.apply(valueAfterDiscountCents),
		fee.Platform.apply(valueAfterDiscountCents),
		fee.Gateway.apply(valueAfterDiscountCents)
}
