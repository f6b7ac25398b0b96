// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package finance

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNeverPaidOff is reported when a payment schedule does not reduce the
// balance of a debt, so that it would never be paid off.
var ErrNeverPaidOff = errors.New("payment does not cover interest")

// maxMonths bounds the length of any payment schedule.
const maxMonths = 100 * 12

// A Debt is a balance that accrues interest monthly at APR/12 percent and
// requires a minimum monthly payment.
type Debt struct {
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	APR            decimal.Decimal `json:"apr"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
}

// monthlyRate converts an annual percentage rate to a monthly fraction.
func monthlyRate(apr decimal.Decimal) decimal.Decimal { return apr.Div(decimal.NewFromInt(1200)) }

// interest returns one month of interest on balance, rounded to cents.
func interest(balance, apr decimal.Decimal) decimal.Decimal {
	return balance.Mul(monthlyRate(apr)).Round(2)
}

// MonthlyPayment returns the fixed monthly payment, rounded to cents, that
// retires principal at the given APR in the specified number of months.
func MonthlyPayment(principal, apr decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, fmt.Errorf("invalid term %d months", months)
	} else if principal.IsNegative() || apr.IsNegative() {
		return decimal.Zero, errors.New("principal and rate must be non-negative")
	}
	n := decimal.NewFromInt(int64(months))
	if apr.IsZero() {
		return principal.Div(n).RoundUp(2), nil
	}

	// P * r * (1+r)^n / ((1+r)^n - 1)
	r := monthlyRate(apr)
	g := r.Add(decimal.NewFromInt(1))
	f := decimal.NewFromInt(1)
	for range months {
		f = f.Mul(g).Round(24)
	}
	return principal.Mul(r).Mul(f).Div(f.Sub(decimal.NewFromInt(1))).Round(2), nil
}

// An Installment is one month of a payment schedule.
type Installment struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"` // remaining after this payment
}

// Amortize returns the schedule of monthly installments that pays off
// principal at the given APR with a fixed payment. The final installment is
// reduced to the amount outstanding. If the payment does not exceed the
// first month's interest, Amortize reports ErrNeverPaidOff.
func Amortize(principal, apr, payment decimal.Decimal) ([]Installment, error) {
	if principal.IsNegative() || apr.IsNegative() {
		return nil, errors.New("principal and rate must be non-negative")
	}
	var out []Installment
	bal := principal
	for month := 1; bal.IsPositive(); month++ {
		in := interest(bal, apr)
		if month > maxMonths || !payment.GreaterThan(in) {
			return nil, ErrNeverPaidOff
		}
		pay := decimal.Min(payment, bal.Add(in))
		bal = bal.Add(in).Sub(pay)
		out = append(out, Installment{
			Month:     month,
			Payment:   pay,
			Interest:  in,
			Principal: pay.Sub(in),
			Balance:   bal,
		})
	}
	return out, nil
}

// Strategy selects which debt receives payments beyond the minimums.
type Strategy int

const (
	Avalanche Strategy = iota // highest APR first
	Snowball                  // smallest balance first
)

func (s Strategy) String() string {
	switch s {
	case Avalanche:
		return "avalanche"
	case Snowball:
		return "snowball"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseStrategy returns the Strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "avalanche":
		return Avalanche, nil
	case "snowball":
		return Snowball, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

func (s Strategy) compare(a, b *Debt) int {
	var c int
	if s == Snowball {
		c = cmp.Or(a.Balance.Cmp(b.Balance), b.APR.Cmp(a.APR))
	} else {
		c = cmp.Or(b.APR.Cmp(a.APR), a.Balance.Cmp(b.Balance))
	}
	return cmp.Or(c, cmp.Compare(a.Name, b.Name))
}

// A Payoff records when a debt is retired by a Plan.
type Payoff struct {
	Name     string          `json:"name"`
	Month    int             `json:"month"`
	Interest decimal.Decimal `json:"interest"`
	Paid     decimal.Decimal `json:"paid"`
}

// A Plan is the result of simulating a payoff strategy.
type Plan struct {
	Strategy      Strategy        `json:"strategy"`
	Months        int             `json:"months"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Payoffs       []Payoff        `json:"payoffs"` // in order of payoff
}

// PlanPayoff simulates paying off debts month by month. Each month every
// open debt accrues interest and receives its minimum payment; the rest of
// the budget (the sum of all minimums plus extra) goes to the open debts in
// the order chosen by the strategy. The minimum of a retired debt thus rolls
// over to the next target. Debts with no balance are ignored.
//
// If the budget does not reduce the total balance in some month, PlanPayoff
// reports ErrNeverPaidOff.
func PlanPayoff(debts []Debt, extra decimal.Decimal, s Strategy) (Plan, error) {
	if extra.IsNegative() {
		return Plan{}, errors.New("extra payment is negative")
	}
	type account struct {
		Debt
		interest, paid decimal.Decimal
		done           bool
	}
	var open []*account
	budget := extra
	for _, d := range debts {
		if d.Balance.IsNegative() || d.APR.IsNegative() || d.MinimumPayment.IsNegative() {
			return Plan{}, fmt.Errorf("debt %q has a negative amount", d.Name)
		}
		if d.Balance.IsPositive() {
			budget = budget.Add(d.MinimumPayment)
			open = append(open, &account{Debt: d, interest: decimal.Zero, paid: decimal.Zero})
		}
	}
	slices.SortStableFunc(open, func(a, b *account) int { return s.compare(&a.Debt, &b.Debt) })

	outstanding := func() decimal.Decimal {
		sum := decimal.Zero
		for _, a := range open {
			sum = sum.Add(a.Balance)
		}
		return sum
	}

	plan := Plan{Strategy: s, TotalInterest: decimal.Zero, TotalPaid: decimal.Zero}
	for month := 1; len(plan.Payoffs) < len(open); month++ {
		if month > maxMonths {
			return Plan{}, ErrNeverPaidOff
		}
		before := outstanding()
		avail := budget
		pay := func(a *account, amt decimal.Decimal) {
			a.Balance = a.Balance.Sub(amt)
			a.paid = a.paid.Add(amt)
			avail = avail.Sub(amt)
		}
		for _, a := range open {
			if !a.done {
				in := interest(a.Balance, a.APR)
				a.Balance = a.Balance.Add(in)
				a.interest = a.interest.Add(in)
			}
		}
		for _, a := range open {
			if !a.done {
				pay(a, decimal.Min(a.MinimumPayment, a.Balance, avail))
			}
		}
		for _, a := range open {
			if !avail.IsPositive() {
				break
			} else if !a.done {
				pay(a, decimal.Min(avail, a.Balance))
			}
		}
		if !outstanding().LessThan(before) {
			return Plan{}, ErrNeverPaidOff
		}
		for _, a := range open {
			if !a.done && !a.Balance.IsPositive() {
				a.done = true
				plan.Payoffs = append(plan.Payoffs, Payoff{
					Name:     a.Name,
					Month:    month,
					Interest: a.interest,
					Paid:     a.paid,
				})
				plan.TotalInterest = plan.TotalInterest.Add(a.interest)
				plan.TotalPaid = plan.TotalPaid.Add(a.paid)
			}
		}
		plan.Months = month
	}
	return plan, nil
}
