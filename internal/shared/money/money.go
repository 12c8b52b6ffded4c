// Package money holds the whole-unit currency helpers used by settlement
// generation. Amounts are int64 in the smallest currency unit; rates are
// decimals so withholding never goes through float64.
package money

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"go-settlement/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-negative whole number",
		http.StatusBadRequest,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"rate must be between 0 (inclusive) and 1 (exclusive)",
		http.StatusBadRequest,
	)
)

// DefaultIndividualWithholdingRate is the statutory 3.3% applied to
// individual subcontractors when the contract does not carry its own rate.
var DefaultIndividualWithholdingRate = decimal.RequireFromString("0.033")

var one = decimal.NewFromInt(1)

// ParseCurrencyAmount strips everything that is not a digit ("1,000,000원",
// "$ 12 500", "Rp1.500.000") and returns the remaining whole-unit amount.
func ParseCurrencyAmount(input string) (int64, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
	if digits == "" {
		return 0, ErrInvalidAmount
	}

	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseRate accepts a fraction ("0.033") or a percentage ("3.3%").
func ParseRate(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" || strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		return decimal.Zero, ErrInvalidRate
	}

	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidRate
	}
	if percent {
		rate = rate.Shift(-2)
	}
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
		return ErrInvalidRate
	}
	return nil
}

// ApplyWithholding returns floor(base*rate) as the deduction and the rest as
// the payable amount. Rounding always favours the worker.
func ApplyWithholding(base int64, rate decimal.Decimal) (deduction int64, final int64, err error) {
	if base < 0 {
		return 0, 0, ErrInvalidAmount
	}
	if err := ValidateRate(rate); err != nil {
		return 0, 0, err
	}

	deduction = decimal.NewFromInt(base).Mul(rate).Floor().IntPart()
	return deduction, base - deduction, nil
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with grouping separators, e.g. 1,000,000.
func FormatAmount(v int64) string {
	return printer.Sprintf("%d", v)
}
