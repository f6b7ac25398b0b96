// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/creachadair/cfo/finance"
	"github.com/creachadair/cfo/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func txCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and list transactions",
	}
	cmd.AddCommand(txAddCmd(e), txListCmd(e), txRemoveCmd(e))
	return cmd
}

func txAddCmd(e *env) *cobra.Command {
	var date, kind, amount string
	var tx finance.Transaction
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tx.Date = finance.Today()
			if date != "" {
				d, err := finance.ParseDate(date)
				if err != nil {
					return err
				}
				tx.Date = d
			}
			tx.Kind = finance.Kind(kind)
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			tx.Amount = amt

			return e.withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				added, err := s.AddTransaction(ctx, tx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), added.ID)
				return nil
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&date, "date", "", "Transaction date (YYYY-MM-DD; default today)")
	fs.StringVar(&kind, "kind", string(finance.Expense), "Transaction kind (income or expense)")
	fs.StringVar(&amount, "amount", "", "Amount (required)")
	fs.StringVar(&tx.Category, "category", "", "Spending category")
	fs.StringVar(&tx.Description, "desc", "", "Description")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func txListCmd(e *env) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p finance.Period
			if month != "" {
				var err error
				if p, err = finance.ParseMonth(month); err != nil {
					return err
				}
			}
			return e.withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				txs, err := s.ListTransactions(ctx, p)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 8, 2, ' ', 0)
				for _, t := range txs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						t.Date, t.Kind, t.Amount.StringFixed(2), t.Category, t.Description, t.ID)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Only list this month (YYYY-MM)")
	return cmd
}

func txRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				var errs []error
				for _, id := range args {
					errs = append(errs, s.Delete(ctx, store.Transactions, id))
				}
				return errors.Join(errs...)
			})
		},
	}
}
