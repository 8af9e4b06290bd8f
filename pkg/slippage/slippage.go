package slippage

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"euclid-dex/pkg/apperrors"
)

var hundred = decimal.NewFromInt(100)

// MinAmountOut derives the minimum acceptable output from an expected
// amount and a tolerance in percent: amount * (1 - tolerance/100).
// The result is never negative.
func MinAmountOut(amount string, tolerancePct float64) (string, error) {
	expected, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return "", errors.Wrapf(apperrors.ErrInvalidArgument, "amount %q is not a number", amount)
	}
	if expected.IsNegative() {
		return "", errors.Wrapf(apperrors.ErrInvalidArgument, "amount %q is negative", amount)
	}
	if tolerancePct < 0 {
		return "", errors.Wrapf(apperrors.ErrInvalidArgument, "slippage tolerance %v is negative", tolerancePct)
	}

	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(tolerancePct).Div(hundred))
	out := expected.Mul(factor)
	if out.IsNegative() {
		return "0", nil
	}
	return out.String(), nil
}
