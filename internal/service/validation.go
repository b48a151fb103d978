package service

import (
	"context"
	"errors"
	"fmt"

	"feefines/internal/model"
	"feefines/internal/money"
)

var (
	// ErrInvalidAmount means the requested amount is malformed,
	// negative, or exceeds the account's remaining balance.
	ErrInvalidAmount = errors.New("invalid action amount")

	// ErrIneligibleAccount means the account is not in a state that
	// accepts monetary actions.
	ErrIneligibleAccount = errors.New("account does not accept actions")
)

// DefaultActionValidator enforces the eligibility rules for monetary
// actions: the account must be open, the amount must parse as a
// non-negative decimal and must not exceed the remaining balance.
// Zero amounts are accepted; the balance math makes them a no-op
// partial action.
type DefaultActionValidator struct{}

func NewDefaultActionValidator() *DefaultActionValidator {
	return &DefaultActionValidator{}
}

func (v *DefaultActionValidator) Validate(ctx context.Context, acc *model.Account, rawAmount string) error {
	if acc.Status == model.FeeStatusClosed {
		return fmt.Errorf("%w: account %s is closed", ErrIneligibleAccount, acc.ID)
	}

	amount, err := money.Parse(rawAmount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	if amount.GreaterThan(acc.Remaining) {
		return fmt.Errorf("%w: amount %s exceeds remaining balance %s",
			ErrInvalidAmount, money.Format(amount), money.Format(acc.Remaining))
	}
	return nil
}
