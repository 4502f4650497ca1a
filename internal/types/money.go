// README: Common money value object used across modules.
package types

import "fmt"

// Money is an amount in minor units (cents). Integer math keeps order
// totals exact; no floats cross a module boundary.
type Money struct {
	Amount   int64
	Currency string
}

// Mul returns the amount multiplied by a quantity.
func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount * int64(qty), Currency: m.Currency}
}

// Add returns the sum of two amounts. Currencies are assumed equal;
// the catalog carries a single currency per deployment.
func (m Money) Add(o Money) Money {
	cur := m.Currency
	if cur == "" {
		cur = o.Currency
	}
	return Money{Amount: m.Amount + o.Amount, Currency: cur}
}

func (m Money) LessThan(o Money) bool {
	return m.Amount < o.Amount
}

// String renders the amount with two decimal places, e.g. "14.99 KES".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.Amount/100, m.Amount%100, m.Currency)
}
