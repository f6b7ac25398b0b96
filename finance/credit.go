// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// A CreditProfile summarizes the inputs to a credit score estimate.
type CreditProfile struct {
	OnTimePayments int     `json:"on_time_payments"`
	LatePayments   int     `json:"late_payments"`
	Utilization    float64 `json:"utilization"`   // fraction of revolving credit in use
	HistoryYears   float64 `json:"history_years"` // age of the oldest account
	AccountTypes   int     `json:"account_types"` // distinct kinds of credit, e.g., cards and loans
	HardInquiries  int     `json:"hard_inquiries"`
}

// A Factor is one weighted component of a credit score estimate.
type Factor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"` // in [0, 1]
}

// A CreditEstimate is the result of EstimateCreditScore.
type CreditEstimate struct {
	Score   int      `json:"score"`
	Band    string   `json:"band"`
	Factors []Factor `json:"factors"`
}

const (
	minScore = 300
	maxScore = 850
)

// EstimateCreditScore computes a rough credit score in the range 300-850
// from a weighted combination of payment history (35%), utilization (30%),
// length of history (15%), credit mix (10%), and new credit (10%).
//
// This is a heuristic for planning. It is not the scoring model of any
// credit bureau.
func EstimateCreditScore(p CreditProfile) CreditEstimate {
	fs := []Factor{
		{Name: "payment history", Weight: 0.35, Score: paymentScore(p.OnTimePayments, p.LatePayments)},
		{Name: "utilization", Weight: 0.30, Score: utilizationScore(p.Utilization)},
		{Name: "history length", Weight: 0.15, Score: clamp01(p.HistoryYears / 15)},
		{Name: "credit mix", Weight: 0.10, Score: clamp01(float64(p.AccountTypes) / 2)},
		{Name: "new credit", Weight: 0.10, Score: clamp01(1 - 0.2*float64(p.HardInquiries))},
	}
	var sum float64
	for _, f := range fs {
		sum += f.Weight * f.Score
	}
	score := minScore + int(math.Round(sum*(maxScore-minScore)))
	return CreditEstimate{Score: score, Band: scoreBand(score), Factors: fs}
}

// paymentScore penalizes each late payment heavily. With no history at all
// the score is neutral.
func paymentScore(onTime, late int) float64 {
	total := onTime + late
	if total <= 0 {
		return 0.5
	}
	return clamp01(1 - 5*float64(late)/float64(total))
}

func utilizationScore(u float64) float64 {
	switch {
	case u <= 0.1:
		return 1
	case u <= 0.3:
		return 1 - (u-0.1)*1.5
	case u <= 0.5:
		return 0.7 - (u-0.3)*1.5
	case u <= 0.75:
		return 0.4 - (u-0.5)*0.8
	default:
		return clamp01(0.2 - (u-0.75)*0.8)
	}
}

func scoreBand(score int) string {
	switch {
	case score < 580:
		return "poor"
	case score < 670:
		return "fair"
	case score < 740:
		return "good"
	case score < 800:
		return "very good"
	default:
		return "exceptional"
	}
}

func clamp01(v float64) float64 { return max(0, min(v, 1)) }

// Utilization returns the fraction of total card limits in use across all
// the cards of l.
func (l *Ledger) Utilization() decimal.Decimal {
	bal, lim := decimal.Zero, decimal.Zero
	for _, c := range l.Cards {
		bal = bal.Add(c.Balance)
		lim = lim.Add(c.Limit)
	}
	if !lim.IsPositive() {
		return decimal.Zero
	}
	return bal.Div(lim)
}

// CreditProfile fills in the parts of p derived from the accounts of l,
// namely utilization and credit mix, and returns the result.
func (l *Ledger) CreditProfile(p CreditProfile) CreditProfile {
	p.Utilization = l.Utilization().InexactFloat64()
	p.AccountTypes = 0
	if len(l.Cards) != 0 {
		p.AccountTypes++
	}
	if len(l.Loans) != 0 {
		p.AccountTypes++
	}
	return p
}
