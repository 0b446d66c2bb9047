package broker

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Deposit adds cash to the account. The only failure mode for a
// positive amount is a storage fault.
func (e *Engine) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit must be positive", ErrInvalidAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.st.AdjustCash(amount); err != nil {
		return err
	}

	e.log.Info().Str("amount", amount.String()).Msg("deposit")
	return nil
}

// Withdraw removes cash, failing with ErrInsufficientFunds if the
// account does not cover the amount. No side effects on failure.
func (e *Engine) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal must be positive", ErrInvalidAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	bal, err := e.st.Balance()
	if err != nil {
		return err
	}
	if amount.GreaterThan(bal) {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientFunds, amount, bal)
	}

	if err := e.st.AdjustCash(amount.Neg()); err != nil {
		return err
	}

	e.log.Info().Str("amount", amount.String()).Msg("withdraw")
	return nil
}

// Balance is a point-in-time read of the cash balance.
func (e *Engine) Balance() (decimal.Decimal, error) {
	return e.st.Balance()
}
