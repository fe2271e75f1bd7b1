package validation

import (
	"fmt"
	"regexp"
	"strings"

	"tixpay/internal/settlement"
)

var (
	saleReferenceRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,127}$`)
	versionRegex       = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator struct {
	Errors []ValidationError
}

func New() *Validator {
	return &Validator{
		Errors: make([]ValidationError, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Summary joins all collected errors, or returns "" when valid.
func (v *Validator) Summary() string {
	msgs := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func KnownPaymentMethod(m settlement.PaymentMethod) bool {
	switch m {
	case settlement.PaymentMethodPix, settlement.PaymentMethodCreditCard, settlement.PaymentMethodLink:
		return true
	}
	return false
}

// SaleRequest checks the request shape before it reaches the calculator.
// Amount rules (negative values, discount above gross) are left to the calculator
// so that every caller gets the same errors.
func (v *Validator) SaleRequest(req settlement.SaleRequest) {
	v.Check(KnownPaymentMethod(req.PaymentMethod), "payment_method",
		fmt.Sprintf("must be one of %s, %s, %s",
			settlement.PaymentMethodPix, settlement.PaymentMethodCreditCard, settlement.PaymentMethodLink))
	if req.PaymentMethod == settlement.PaymentMethodCreditCard {
		v.Check(req.CreditCardInstallments >= 1, "credit_card_installments", "must be at least 1 for credit card")
	}
}

func (v *Validator) SaleReference(ref string) {
	v.Check(saleReferenceRegex.MatchString(ref), "sale_reference",
		"must be 1-128 letters, digits or . _ : -, starting with a letter or digit")
}

func (v *Validator) ScheduleVersion(version string) {
	v.Check(versionRegex.MatchString(version), "version",
		"must be 1-64 letters, digits or . _ -, starting with a letter or digit")
}
