// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/creachadair/cfo/finance"
)

// scanner is the common subset of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and scans each row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// parseDate decodes a date column, which is empty for the zero date.
func parseDate(s string, dst *finance.Date) error {
	d, err := finance.ParseDate(s)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// ListTransactions returns the transactions within p, ordered by date. The zero
// Period selects all transactions.
func (s *Store) ListTransactions(ctx context.Context, p finance.Period) ([]finance.Transaction, error) {
	query := `SELECT id, date, kind, amount, category, description FROM transactions`
	var args []any
	if !p.IsZero() {
		query += ` WHERE date BETWEEN ? AND ?`
		args = append(args, p.Start.String(), p.End.String())
	}
	query += ` ORDER BY date, rowid`
	out, err := queryAll(ctx, s.db, func(r scanner) (t finance.Transaction, err error) {
		var date, kind string
		if err := r.Scan(&t.ID, &date, &kind, &t.Amount, &t.Category, &t.Description); err != nil {
			return t, err
		}
		t.Kind = finance.Kind(kind)
		return t, parseDate(date, &t.Date)
	}, query, args...)
	return out, wrap("list transactions", err)
}

// ListRecurring returns all the recurring expenses, ordered by name.
func (s *Store) ListRecurring(ctx context.Context) ([]finance.RecurringExpense, error) {
	out, err := queryAll(ctx, s.db, func(r scanner) (e finance.RecurringExpense, err error) {
		var freq, due string
		if err := r.Scan(&e.ID, &e.Name, &e.Amount, &freq, &e.Category, &due); err != nil {
			return e, err
		}
		e.Frequency = finance.Frequency(freq)
		return e, parseDate(due, &e.NextDue)
	}, `SELECT id, name, amount, frequency, category, next_due FROM recurring ORDER BY name, rowid`)
	return out, wrap("list recurring expenses", err)
}

// ListCards returns all the credit cards, ordered by name.
func (s *Store) ListCards(ctx context.Context) ([]finance.CreditCard, error) {
	out, err := queryAll(ctx, s.db, func(r scanner) (c finance.CreditCard, err error) {
		err = r.Scan(&c.ID, &c.Name, &c.Balance, &c.Limit, &c.APR, &c.MinimumPayment)
		return c, err
	}, `SELECT id, name, balance, credit_limit, apr, minimum_payment FROM cards ORDER BY name, rowid`)
	return out, wrap("list cards", err)
}

// ListLoans returns all the loans, ordered by name.
func (s *Store) ListLoans(ctx context.Context) ([]finance.Loan, error) {
	out, err := queryAll(ctx, s.db, func(r scanner) (n finance.Loan, err error) {
		err = r.Scan(&n.ID, &n.Name, &n.Balance, &n.APR, &n.Payment, &n.TermMonths)
		return n, err
	}, `SELECT id, name, balance, apr, payment, term_months FROM loans ORDER BY name, rowid`)
	return out, wrap("list loans", err)
}

// ListGoals returns all the savings goals, ordered by name.
func (s *Store) ListGoals(ctx context.Context) ([]finance.SavingsGoal, error) {
	out, err := queryAll(ctx, s.db, func(r scanner) (g finance.SavingsGoal, err error) {
		var deadline string
		if err := r.Scan(&g.ID, &g.Name, &g.Target, &g.Saved, &deadline, &g.Emergency); err != nil {
			return g, err
		}
		return g, parseDate(deadline, &g.Deadline)
	}, `SELECT id, name, target, saved, deadline, emergency FROM goals ORDER BY name, rowid`)
	return out, wrap("list goals", err)
}

// Load reads the complete ledger from the database. The currency of the
// result is left empty.
func (s *Store) Load(ctx context.Context) (*finance.Ledger, error) {
	var l finance.Ledger
	var err error
	if l.Transactions, err = s.ListTransactions(ctx, finance.Period{}); err != nil {
		return nil, err
	}
	if l.Recurring, err = s.ListRecurring(ctx); err != nil {
		return nil, err
	}
	if l.Cards, err = s.ListCards(ctx); err != nil {
		return nil, err
	}
	if l.Loans, err = s.ListLoans(ctx); err != nil {
		return nil, err
	}
	if l.Goals, err = s.ListGoals(ctx); err != nil {
		return nil, err
	}
	return &l, nil
}

// Count reports the number of records in the given table.
func (s *Store) Count(ctx context.Context, table Table) (int, error) {
	if !isTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+string(table)).Scan(&n)
	return n, wrap("count "+string(table), err)
}
