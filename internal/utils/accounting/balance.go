package accounting

import (
	"errors"
	"fmt"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UnbalancedError indicates the debit and credit columns of an entry do not match.
type UnbalancedError struct {
	Difference decimal.Decimal // abs(sum of debits - sum of credits)
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("entry lines do not balance: difference is %s", e.Difference.String())
}

var (
	ErrTooFewLines   = errors.New("entry must have at least two lines")
	ErrBothSidesSet  = errors.New("entry line must not have both debit and credit amounts")
	ErrNoSideSet     = errors.New("entry line must have exactly one of debit or credit amount")
	ErrNegativeLine  = errors.New("entry line amounts must not be negative")
	ErrPartialFXData = errors.New("foreign currency lines require currency amount and exchange rate together")
)

// DefaultEpsilon is the smallest representable base-currency unit; imbalances at or
// below it are treated as rounding noise.
var DefaultEpsilon = decimal.RequireFromString("0.01")

// ValidateLine checks the single-line shape invariants: non-negative amounts, exactly
// one non-zero side, and consistent foreign-currency fields.
func ValidateLine(line domain.EntryLine) error {
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return ErrNegativeLine
	}
	debitSet := !line.DebitAmount.IsZero()
	creditSet := !line.CreditAmount.IsZero()
	if debitSet && creditSet {
		return ErrBothSidesSet
	}
	if !debitSet && !creditSet {
		return ErrNoSideSet
	}
	hasCurrency := line.CurrencyCode != nil && *line.CurrencyCode != ""
	hasAmount := line.CurrencyAmount != nil
	hasRate := line.ExchangeRate != nil
	if hasCurrency != hasAmount || hasCurrency != hasRate {
		return ErrPartialFXData
	}
	return nil
}

// Difference sums the debit and credit columns in base currency and returns
// debits minus credits. Pure; safe to call concurrently.
func Difference(lines []domain.EntryLine) decimal.Decimal {
	diff := decimal.Zero
	for _, line := range lines {
		diff = diff.Add(line.DebitAmount).Sub(line.CreditAmount)
	}
	return diff
}

// ValidateBalance checks that the lines form a valid, balanced double-entry set:
// at least two lines, every line well-formed, and the debit/credit difference within
// epsilon. Returns an *UnbalancedError carrying the absolute difference otherwise.
func ValidateBalance(lines []domain.EntryLine, epsilon decimal.Decimal) error {
	if len(lines) < 2 {
		return ErrTooFewLines
	}
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
	}
	if diff := Difference(lines).Abs(); diff.GreaterThan(epsilon) {
		return &UnbalancedError{Difference: diff}
	}
	return nil
}

// NormalSideBalance converts a signed debit-minus-credit balance to the account's
// normal side: unchanged for debit-normal accounts, negated for credit-normal ones.
func NormalSideBalance(debitMinusCredit decimal.Decimal, side domain.NormalSide) decimal.Decimal {
	if side == domain.CreditNormal {
		return debitMinusCredit.Neg()
	}
	return debitMinusCredit
}
