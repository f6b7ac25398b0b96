// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/creachadair/cfo/finance"
	"github.com/creachadair/cfo/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func importCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a ledger file into the database",
		Long: `Import a ledger file into the database. The file is JWCC (JSON with commas
and comments) with fields "transactions", "recurring", "cards", "loans", and
"goals". Either every record is imported, or none is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			l, err := finance.ParseLedger(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return e.withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				n, err := s.Import(ctx, l)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d records\n", n)
				return nil
			})
		},
	}
}

// loadLedger reads the complete ledger from the configured database.
func (e *env) loadLedger(ctx context.Context) (*finance.Ledger, error) {
	var l *finance.Ledger
	err := e.withStore(ctx, func(ctx context.Context, s *store.Store) error {
		var err error
		l, err = s.Load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	l.Currency = e.cfg.Currency
	return l, nil
}

func parseMonthFlag(month string) (finance.Period, error) {
	if month == "" {
		now := time.Now()
		return finance.Month(now.Year(), now.Month()), nil
	}
	return finance.ParseMonth(month)
}

func percent(d decimal.Decimal) string { return d.Shift(2).StringFixed(1) + "%" }

func healthCmd(e *env) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Report financial health for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseMonthFlag(month)
			if err != nil {
				return err
			}
			l, err := e.loadLedger(cmd.Context())
			if err != nil {
				return err
			}
			writeHealth(cmd.OutOrStdout(), l.Currency, l.Health(p))
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to report (YYYY-MM; default this month)")
	return cmd
}

func writeHealth(w io.Writer, currency string, h finance.Health) {
	tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
	money := func(d decimal.Decimal) string { return d.StringFixed(2) + " " + currency }
	fmt.Fprintf(tw, "Period\t%s\n", h.Period)
	fmt.Fprintf(tw, "Income\t%s\n", money(h.Income))
	fmt.Fprintf(tw, "Expenses\t%s\n", money(h.Expenses))
	fmt.Fprintf(tw, "Net cash flow\t%s\t(%s)\n", money(h.NetCashFlow), h.Status())
	fmt.Fprintf(tw, "Savings rate\t%s\n", percent(h.SavingsRate))
	fmt.Fprintf(tw, "Recurring (monthly)\t%s\n", money(h.Recurring))
	fmt.Fprintf(tw, "Debt payments\t%s\n", money(h.DebtPayments))
	fmt.Fprintf(tw, "Total debt\t%s\n", money(h.TotalDebt))
	fmt.Fprintf(tw, "Debt to income\t%s\n", percent(h.DebtToIncome))
	fmt.Fprintf(tw, "Emergency fund\t%s\t(%s months)\n", money(h.EmergencyFund), h.EmergencyMonths.StringFixed(1))
	fmt.Fprintf(tw, "Credit utilization\t%s\n", percent(h.CreditUtilization))
	fmt.Fprintf(tw, "Score\t%d/100\n", h.Score)
	tw.Flush()
}

func debtCmd(e *env) *cobra.Command {
	var extra, strategy string
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Plan payoff of all cards and loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := finance.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			amt, err := decimal.NewFromString(extra)
			if err != nil {
				return fmt.Errorf("invalid extra payment %q: %w", extra, err)
			}
			l, err := e.loadLedger(cmd.Context())
			if err != nil {
				return err
			}
			plan, err := finance.PlanPayoff(l.Debts(), amt, s)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "Debt\tPaid off\tInterest\tTotal paid")
			for _, p := range plan.Payoffs {
				fmt.Fprintf(tw, "%s\tmonth %d\t%s\t%s\n", p.Name, p.Month, p.Interest.StringFixed(2), p.Paid.StringFixed(2))
			}
			tw.Flush()
			fmt.Fprintf(w, "\n%s: debt free in %d months, %s interest, %s paid in total\n",
				plan.Strategy, plan.Months, plan.TotalInterest.StringFixed(2), plan.TotalPaid.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&extra, "extra", "0", "Monthly payment beyond the minimums")
	cmd.Flags().StringVar(&strategy, "strategy", "avalanche", "Payoff strategy (avalanche or snowball)")
	return cmd
}

func loanCmd() *cobra.Command {
	var principal, apr string
	var months int
	var schedule bool
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Compute the payment and schedule of a fixed-rate loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimal.NewFromString(principal)
			if err != nil {
				return fmt.Errorf("invalid principal %q: %w", principal, err)
			}
			r, err := decimal.NewFromString(apr)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", apr, err)
			}
			pay, err := finance.MonthlyPayment(p, r, months)
			if err != nil {
				return err
			}
			sched, err := finance.Amortize(p, r, pay)
			if err != nil {
				return err
			}
			total := decimal.Zero
			for _, in := range sched {
				total = total.Add(in.Interest)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Monthly payment: %s over %d months, %s interest\n",
				pay.StringFixed(2), len(sched), total.StringFixed(2))
			if schedule {
				tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', tabwriter.AlignRight)
				fmt.Fprintln(tw, "Month\tPayment\tInterest\tPrincipal\tBalance\t")
				for _, in := range sched {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", in.Month, in.Payment.StringFixed(2),
						in.Interest.StringFixed(2), in.Principal.StringFixed(2), in.Balance.StringFixed(2))
				}
				tw.Flush()
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&principal, "principal", "", "Amount borrowed (required)")
	fs.StringVar(&apr, "apr", "0", "Annual percentage rate")
	fs.IntVar(&months, "months", 12, "Term in months")
	fs.BoolVar(&schedule, "schedule", false, "Print the full payment schedule")
	cmd.MarkFlagRequired("principal")
	return cmd
}

func scoreCmd(e *env) *cobra.Command {
	var p finance.CreditProfile
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Estimate a credit score",
		Long: `Estimate a credit score from payment history and the cards and loans in the
ledger. This is a rough planning heuristic, not a bureau score.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := e.loadLedger(cmd.Context())
			if err != nil {
				return err
			}
			est := finance.EstimateCreditScore(l.CreditProfile(p))
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Estimated score: %d (%s)\n", est.Score, est.Band)
			tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
			for _, f := range est.Factors {
				fmt.Fprintf(tw, "  %s\t%.0f%%\t%.0f/100\n", f.Name, f.Weight*100, f.Score*100)
			}
			return tw.Flush()
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&p.OnTimePayments, "on-time", 0, "Number of on-time payments")
	fs.IntVar(&p.LatePayments, "late", 0, "Number of late payments")
	fs.Float64Var(&p.HistoryYears, "years", 0, "Age of the oldest account in years")
	fs.IntVar(&p.HardInquiries, "inquiries", 0, "Hard inquiries in the last year")
	return cmd
}
