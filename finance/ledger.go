// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package finance

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// Kind distinguishes income from expense transactions.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// A Transaction records a single movement of money. The Amount is always
// non-negative; the Kind gives its direction.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Date        Date            `json:"date"`
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Signed returns the amount of t, negated for an expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate reports an error if t is not a well-formed transaction.
func (t Transaction) Validate() error {
	switch {
	case t.Kind != Income && t.Kind != Expense:
		return fmt.Errorf("invalid transaction kind %q", t.Kind)
	case t.Amount.IsNegative():
		return errors.New("transaction amount is negative")
	case t.Date.IsZero():
		return errors.New("transaction date is missing")
	}
	return nil
}

// Frequency is how often a recurring expense comes due.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Annual    Frequency = "annual"
)

// PerYear reports the number of times per year f comes due, or 0 if f is
// not a known frequency.
func (f Frequency) PerYear() int {
	switch f {
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case Annual:
		return 1
	}
	return 0
}

// A RecurringExpense is a bill or subscription that comes due on a schedule.
type RecurringExpense struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
	Category  string          `json:"category,omitempty"`
	NextDue   Date            `json:"next_due"`
}

// Monthly returns the monthly equivalent of r, rounded to cents.
func (r RecurringExpense) Monthly() decimal.Decimal {
	n := decimal.NewFromInt(int64(r.Frequency.PerYear()))
	return r.Amount.Mul(n).Div(twelve).Round(2)
}

func (r RecurringExpense) Validate() error {
	switch {
	case r.Name == "":
		return errors.New("recurring expense has no name")
	case r.Frequency.PerYear() == 0:
		return fmt.Errorf("invalid frequency %q", r.Frequency)
	case r.Amount.IsNegative():
		return errors.New("recurring amount is negative")
	}
	return nil
}

// A CreditCard is a revolving credit account. APR is an annual percentage
// rate, e.g., 24.99 for 24.99%.
type CreditCard struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	Limit          decimal.Decimal `json:"limit"`
	APR            decimal.Decimal `json:"apr"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
}

// Utilization returns the fraction of the card's limit in use. A card with
// no limit has zero utilization.
func (c CreditCard) Utilization() decimal.Decimal {
	if !c.Limit.IsPositive() {
		return decimal.Zero
	}
	return c.Balance.Div(c.Limit)
}

// Debt returns the card as a Debt for payoff planning.
func (c CreditCard) Debt() Debt {
	return Debt{Name: c.Name, Balance: c.Balance, APR: c.APR, MinimumPayment: c.MinimumPayment}
}

func (c CreditCard) Validate() error {
	switch {
	case c.Name == "":
		return errors.New("credit card has no name")
	case c.Balance.IsNegative(), c.Limit.IsNegative(), c.APR.IsNegative(), c.MinimumPayment.IsNegative():
		return fmt.Errorf("credit card %q has a negative amount", c.Name)
	}
	return nil
}

// A Loan is an installment debt with a fixed monthly payment.
type Loan struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	APR        decimal.Decimal `json:"apr"`
	Payment    decimal.Decimal `json:"payment"`
	TermMonths int             `json:"term_months,omitempty"`
}

// Debt returns the loan as a Debt for payoff planning.
func (l Loan) Debt() Debt {
	return Debt{Name: l.Name, Balance: l.Balance, APR: l.APR, MinimumPayment: l.Payment}
}

func (l Loan) Validate() error {
	switch {
	case l.Name == "":
		return errors.New("loan has no name")
	case l.Balance.IsNegative(), l.APR.IsNegative(), l.Payment.IsNegative():
		return fmt.Errorf("loan %q has a negative amount", l.Name)
	case l.TermMonths < 0:
		return fmt.Errorf("loan %q has a negative term", l.Name)
	}
	return nil
}

// A SavingsGoal tracks progress toward a target amount. A goal marked
// Emergency counts toward the emergency fund.
type SavingsGoal struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Target    decimal.Decimal `json:"target"`
	Saved     decimal.Decimal `json:"saved"`
	Deadline  Date            `json:"deadline"`
	Emergency bool            `json:"emergency,omitempty"`
}

// Progress returns the fraction of the target saved, in [0, 1].
func (g SavingsGoal) Progress() decimal.Decimal {
	if !g.Target.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return decimal.Min(g.Saved.Div(g.Target), decimal.NewFromInt(1))
}

// Remaining returns the amount still to be saved.
func (g SavingsGoal) Remaining() decimal.Decimal {
	return decimal.Max(g.Target.Sub(g.Saved), decimal.Zero)
}

// MonthlyNeeded returns the monthly contribution needed to reach the goal by
// its deadline, starting from asOf. If the goal has no deadline, or the
// deadline is less than a month away, the whole remainder is due now.
func (g SavingsGoal) MonthlyNeeded(asOf Date) decimal.Decimal {
	rem := g.Remaining()
	if g.Deadline.IsZero() {
		return rem
	}
	months := asOf.MonthsUntil(g.Deadline)
	if months < 1 {
		return rem
	}
	return rem.Div(decimal.NewFromInt(int64(months))).RoundUp(2)
}

func (g SavingsGoal) Validate() error {
	switch {
	case g.Name == "":
		return errors.New("savings goal has no name")
	case g.Target.IsNegative(), g.Saved.IsNegative():
		return fmt.Errorf("savings goal %q has a negative amount", g.Name)
	}
	return nil
}

// A Ledger is the complete financial state of one user.
type Ledger struct {
	Currency     string             `json:"currency,omitempty"`
	Transactions []Transaction      `json:"transactions,omitempty"`
	Recurring    []RecurringExpense `json:"recurring,omitempty"`
	Cards        []CreditCard       `json:"cards,omitempty"`
	Loans        []Loan             `json:"loans,omitempty"`
	Goals        []SavingsGoal      `json:"goals,omitempty"`
}

// Validate checks every entry of the ledger, and reports all the problems
// found.
func (l *Ledger) Validate() error {
	var errs []error
	for i, t := range l.Transactions {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("transaction %d: %w", i+1, err))
		}
	}
	for _, r := range l.Recurring {
		errs = append(errs, r.Validate())
	}
	for _, c := range l.Cards {
		errs = append(errs, c.Validate())
	}
	for _, n := range l.Loans {
		errs = append(errs, n.Validate())
	}
	for _, g := range l.Goals {
		errs = append(errs, g.Validate())
	}
	return errors.Join(errs...)
}

// Debts returns all the cards and loans of l with a positive balance.
func (l *Ledger) Debts() []Debt {
	var out []Debt
	for _, c := range l.Cards {
		if c.Balance.IsPositive() {
			out = append(out, c.Debt())
		}
	}
	for _, n := range l.Loans {
		if n.Balance.IsPositive() {
			out = append(out, n.Debt())
		}
	}
	return out
}

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// A Summary totals the transactions of a ledger over a period.
type Summary struct {
	Period   Period           `json:"period"`
	Income   decimal.Decimal  `json:"income"`
	Expenses decimal.Decimal  `json:"expenses"`
	Net      decimal.Decimal  `json:"net"`
	Spending []CategoryAmount `json:"spending,omitempty"` // expenses by category, largest first
}

// Summarize totals the transactions of l that fall within p.
func (l *Ledger) Summarize(p Period) Summary {
	s := Summary{Period: p, Income: decimal.Zero, Expenses: decimal.Zero}
	byCat := make(map[string]decimal.Decimal)
	for _, t := range l.Transactions {
		if !p.Contains(t.Date) {
			continue
		}
		switch t.Kind {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expenses = s.Expenses.Add(t.Amount)
			cat := cmp.Or(t.Category, "uncategorized")
			byCat[cat] = byCat[cat].Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expenses)
	for name, amt := range byCat {
		s.Spending = append(s.Spending, CategoryAmount{Name: name, Amount: amt})
	}
	slices.SortFunc(s.Spending, func(a, b CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return s
}
