// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package finance

import "github.com/shopspring/decimal"

// Health is a snapshot of financial health over one period, typically a
// month. Ratios are fractions, not percentages.
type Health struct {
	Period            Period          `json:"period"`
	Income            decimal.Decimal `json:"income"`
	Expenses          decimal.Decimal `json:"expenses"`
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`
	SavingsRate       decimal.Decimal `json:"savings_rate"`
	Recurring         decimal.Decimal `json:"recurring"` // monthly equivalent
	DebtPayments      decimal.Decimal `json:"debt_payments"`
	TotalDebt         decimal.Decimal `json:"total_debt"`
	DebtToIncome      decimal.Decimal `json:"debt_to_income"`
	EmergencyFund     decimal.Decimal `json:"emergency_fund"`
	EmergencyMonths   decimal.Decimal `json:"emergency_months"`
	CreditUtilization decimal.Decimal `json:"credit_utilization"`
	Score             int             `json:"score"` // 0-100
}

// Targets for a full health score in each category.
var (
	goodSavingsRate = decimal.RequireFromString("0.20")
	goodDTI         = decimal.RequireFromString("0.15")
	badDTI          = decimal.RequireFromString("0.50")
	goodEmergency   = decimal.NewFromInt(6)
	goodUtilization = decimal.RequireFromString("0.10")
	badUtilization  = decimal.RequireFromString("0.90")
	quarter         = decimal.NewFromInt(25)
)

// Health computes the financial health of l over p.
//
// The score gives up to 25 points each for savings rate, debt-to-income
// ratio, emergency fund coverage, and credit utilization.
func (l *Ledger) Health(p Period) Health {
	s := l.Summarize(p)
	h := Health{
		Period:        p,
		Income:        s.Income,
		Expenses:      s.Expenses,
		NetCashFlow:   s.Net,
		SavingsRate:   decimal.Zero,
		Recurring:     decimal.Zero,
		DebtPayments:  decimal.Zero,
		TotalDebt:     decimal.Zero,
		DebtToIncome:  decimal.Zero,
		EmergencyFund: decimal.Zero,

		EmergencyMonths:   decimal.Zero,
		CreditUtilization: l.Utilization(),
	}
	for _, r := range l.Recurring {
		h.Recurring = h.Recurring.Add(r.Monthly())
	}
	for _, d := range l.Debts() {
		h.DebtPayments = h.DebtPayments.Add(d.MinimumPayment)
		h.TotalDebt = h.TotalDebt.Add(d.Balance)
	}
	for _, g := range l.Goals {
		if g.Emergency {
			h.EmergencyFund = h.EmergencyFund.Add(g.Saved)
		}
	}

	var points decimal.Decimal
	if h.Income.IsPositive() {
		h.SavingsRate = h.NetCashFlow.Div(h.Income).Round(4)
		h.DebtToIncome = h.DebtPayments.Div(h.Income).Round(4)
		points = points.Add(scale(h.SavingsRate, decimal.Zero, goodSavingsRate))
		points = points.Add(scale(h.DebtToIncome, badDTI, goodDTI))
	} else if h.DebtPayments.IsZero() {
		points = points.Add(quarter) // no income, but no debt either
	}

	if basis := decimal.Max(h.Expenses, h.Recurring); basis.IsPositive() {
		h.EmergencyMonths = h.EmergencyFund.Div(basis).Round(2)
		points = points.Add(scale(h.EmergencyMonths, decimal.Zero, goodEmergency))
	} else {
		points = points.Add(quarter)
	}
	points = points.Add(scale(h.CreditUtilization, badUtilization, goodUtilization))

	h.Score = int(points.Round(0).IntPart())
	return h
}

// Status summarizes whether income covers spending over the period.
func (h Health) Status() string {
	switch h.NetCashFlow.Sign() {
	case 1:
		return "income exceeds expenses"
	case -1:
		return "expenses exceed income"
	}
	return "income matches expenses"
}

// scale maps v linearly onto [0, 25] points, where v == worst scores zero and
// v == best scores 25. The worst value may be greater than the best.
func scale(v, worst, best decimal.Decimal) decimal.Decimal {
	f := v.Sub(worst).Div(best.Sub(worst))
	f = decimal.Max(decimal.Zero, decimal.Min(f, decimal.NewFromInt(1)))
	return f.Mul(quarter)
}
