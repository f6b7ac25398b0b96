// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package finance_test

import (
	"testing"
	"time"

	"github.com/creachadair/cfo/finance"
)

func TestEstimateCreditScore(t *testing.T) {
	tests := []struct {
		name      string
		profile   finance.CreditProfile
		wantScore int
		wantBand  string
	}{
		{"Perfect", finance.CreditProfile{
			OnTimePayments: 120,
			Utilization:    0.05,
			HistoryYears:   20,
			AccountTypes:   2,
		}, 850, "exceptional"},
		{"Worst", finance.CreditProfile{
			LatePayments:  10,
			Utilization:   1.2,
			HardInquiries: 6,
		}, 300, "poor"},
		{"Empty", finance.CreditProfile{}, 616, "fair"},
		{"HighUtilization", finance.CreditProfile{
			OnTimePayments: 120,
			Utilization:    0.5,
			HistoryYears:   15,
			AccountTypes:   2,
		}, 751, "very good"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := finance.EstimateCreditScore(test.profile)
			if got.Score != test.wantScore || got.Band != test.wantBand {
				t.Errorf("Score: got %d (%s), want %d (%s)", got.Score, got.Band, test.wantScore, test.wantBand)
			}
			var w float64
			for _, f := range got.Factors {
				w += f.Weight
				if f.Score < 0 || f.Score > 1 {
					t.Errorf("Factor %q: score %g out of range", f.Name, f.Score)
				}
			}
			if w < 0.999 || w > 1.001 {
				t.Errorf("Factor weights sum to %g, want 1", w)
			}
		})
	}
}

func TestCreditScoreMonotone(t *testing.T) {
	// Raising utilization never raises the score.
	prev := 851
	for u := 0.0; u <= 1.2; u += 0.05 {
		got := finance.EstimateCreditScore(finance.CreditProfile{OnTimePayments: 10, Utilization: u}).Score
		if got > prev {
			t.Errorf("Utilization %.2f: score %d > %d", u, got, prev)
		}
		prev = got
	}
}

func testLedger() *finance.Ledger {
	oct := func(day int) finance.Date { return finance.NewDate(2026, time.October, day) }
	return &finance.Ledger{
		Currency: "USD",
		Transactions: []finance.Transaction{
			{Date: oct(1), Kind: finance.Income, Amount: dec("5000"), Category: "salary"},
			{Date: oct(3), Kind: finance.Expense, Amount: dec("2000"), Category: "rent"},
			{Date: oct(12), Kind: finance.Expense, Amount: dec("1000"), Category: "food"},
			{Date: finance.NewDate(2026, time.September, 30), Kind: finance.Expense, Amount: dec("7777")},
		},
		Recurring: []finance.RecurringExpense{
			{Name: "insurance", Amount: dec("1200"), Frequency: finance.Annual},
		},
		Cards: []finance.CreditCard{
			{Name: "visa", Balance: dec("500"), Limit: dec("5000"), APR: dec("22.9"), MinimumPayment: dec("25")},
		},
		Loans: []finance.Loan{
			{Name: "car", Balance: dec("10000"), APR: dec("5"), Payment: dec("250"), TermMonths: 48},
		},
		Goals: []finance.SavingsGoal{
			{Name: "rainy day", Target: dec("18000"), Saved: dec("9000"), Emergency: true},
			{Name: "vacation", Target: dec("3000"), Saved: dec("1000")},
		},
	}
}

func TestHealth(t *testing.T) {
	h := testLedger().Health(finance.Month(2026, time.October))
	checks := []struct {
		name string
		got  string
		want string
	}{
		{"Income", h.Income.String(), "5000"},
		{"Expenses", h.Expenses.String(), "3000"},
		{"NetCashFlow", h.NetCashFlow.String(), "2000"},
		{"SavingsRate", h.SavingsRate.String(), "0.4"},
		{"Recurring", h.Recurring.String(), "100"},
		{"DebtPayments", h.DebtPayments.String(), "275"},
		{"TotalDebt", h.TotalDebt.String(), "10500"},
		{"DebtToIncome", h.DebtToIncome.String(), "0.055"},
		{"EmergencyFund", h.EmergencyFund.String(), "9000"},
		{"EmergencyMonths", h.EmergencyMonths.String(), "3"},
		{"CreditUtilization", h.CreditUtilization.String(), "0.1"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, c.got, c.want)
		}
	}
	if h.Score != 88 {
		t.Errorf("Score: got %d, want 88", h.Score)
	}
	if got, want := h.Status(), "income exceeds expenses"; got != want {
		t.Errorf("Status: got %q, want %q", got, want)
	}
}

func TestHealthEmpty(t *testing.T) {
	var l finance.Ledger
	h := l.Health(finance.Month(2026, time.October))
	// No debt, no expenses, and no cards, but nothing saved from income.
	if h.Score != 75 {
		t.Errorf("Score: got %d, want 75", h.Score)
	}
	if got, want := h.Status(), "income matches expenses"; got != want {
		t.Errorf("Status: got %q, want %q", got, want)
	}
}

func TestLedgerCreditProfile(t *testing.T) {
	p := testLedger().CreditProfile(finance.CreditProfile{OnTimePayments: 36, HistoryYears: 4})
	if p.AccountTypes != 2 {
		t.Errorf("AccountTypes: got %d, want 2", p.AccountTypes)
	}
	if p.Utilization != 0.1 {
		t.Errorf("Utilization: got %g, want 0.1", p.Utilization)
	}
	if p.OnTimePayments != 36 || p.HistoryYears != 4 {
		t.Errorf("CreditProfile lost caller fields: %+v", p)
	}
}
