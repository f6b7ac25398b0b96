// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package finance defines a personal finance ledger and calculators over it.
//
// All money amounts are [decimal.Decimal] values in the ledger currency, and
// all rates are annual percentages (e.g., 19.99 for 19.99% APR). Interest
// accrues monthly and is rounded to cents each month.
//
// The calculators cover loan amortization ([MonthlyPayment], [Amortize]),
// multi-debt payoff planning ([PlanPayoff]), a credit score heuristic
// ([EstimateCreditScore]), and a monthly health report ([Ledger.Health]).
package finance
