// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package store persists a finance ledger in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/creachadair/cfo/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// ErrNotFound is reported when a record does not exist.
var ErrNotFound = errors.New("record not found")

// A Table names one of the record types kept by a Store.
type Table string

const (
	Transactions Table = "transactions"
	Recurring    Table = "recurring"
	Cards        Table = "cards"
	Loans        Table = "loans"
	Goals        Table = "goals"
)

var tables = []Table{Transactions, Recurring, Cards, Loans, Goals}

func isTable(t Table) bool { return slices.Contains(tables, t) }

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	kind TEXT NOT NULL,
	amount TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);

CREATE TABLE IF NOT EXISTS recurring (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	amount TEXT NOT NULL,
	frequency TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	next_due TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cards (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	balance TEXT NOT NULL,
	credit_limit TEXT NOT NULL,
	apr TEXT NOT NULL,
	minimum_payment TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	balance TEXT NOT NULL,
	apr TEXT NOT NULL,
	payment TEXT NOT NULL,
	term_months INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	target TEXT NOT NULL,
	saved TEXT NOT NULL,
	deadline TEXT NOT NULL DEFAULT '',
	emergency INTEGER NOT NULL DEFAULT 0
);
`

// A Store is a ledger database. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the database at path. The path ":memory:" opens a
// private in-memory database. If log == nil, nothing is logged.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer, and each connection to ":memory:" is a
	// separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	log.Debug("opened ledger database", zap.String("path", path))
	return &Store{db: db, log: log}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// execer is the common subset of *sql.DB and *sql.Tx used for writes.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// AddTransaction records t, assigning it a new ID if it has none, and
// returns the stored value.
func (s *Store) AddTransaction(ctx context.Context, t finance.Transaction) (finance.Transaction, error) {
	return t, s.write(func(ex execer) error { return addTransaction(ctx, ex, &t) })
}

// AddRecurring records r, assigning it a new ID if it has none.
func (s *Store) AddRecurring(ctx context.Context, r finance.RecurringExpense) (finance.RecurringExpense, error) {
	return r, s.write(func(ex execer) error { return addRecurring(ctx, ex, &r) })
}

// AddCard records c, assigning it a new ID if it has none.
func (s *Store) AddCard(ctx context.Context, c finance.CreditCard) (finance.CreditCard, error) {
	return c, s.write(func(ex execer) error { return addCard(ctx, ex, &c) })
}

// AddLoan records n, assigning it a new ID if it has none.
func (s *Store) AddLoan(ctx context.Context, n finance.Loan) (finance.Loan, error) {
	return n, s.write(func(ex execer) error { return addLoan(ctx, ex, &n) })
}

// AddGoal records g, assigning it a new ID if it has none.
func (s *Store) AddGoal(ctx context.Context, g finance.SavingsGoal) (finance.SavingsGoal, error) {
	return g, s.write(func(ex execer) error { return addGoal(ctx, ex, &g) })
}

func (s *Store) write(f func(execer) error) error {
	if err := f(s.db); err != nil {
		s.log.Warn("write failed", zap.Error(err))
		return err
	}
	return nil
}

func addTransaction(ctx context.Context, ex execer, t *finance.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.ID = newID(t.ID)
	_, err := ex.ExecContext(ctx, `INSERT INTO transactions (id, date, kind, amount, category, description)
VALUES (?, ?, ?, ?, ?, ?)`, t.ID, t.Date.String(), string(t.Kind), t.Amount, t.Category, t.Description)
	return wrap("add transaction", err)
}

func addRecurring(ctx context.Context, ex execer, r *finance.RecurringExpense) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.ID = newID(r.ID)
	_, err := ex.ExecContext(ctx, `INSERT INTO recurring (id, name, amount, frequency, category, next_due)
VALUES (?, ?, ?, ?, ?, ?)`, r.ID, r.Name, r.Amount, string(r.Frequency), r.Category, r.NextDue.String())
	return wrap("add recurring expense", err)
}

func addCard(ctx context.Context, ex execer, c *finance.CreditCard) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.ID = newID(c.ID)
	_, err := ex.ExecContext(ctx, `INSERT INTO cards (id, name, balance, credit_limit, apr, minimum_payment)
VALUES (?, ?, ?, ?, ?, ?)`, c.ID, c.Name, c.Balance, c.Limit, c.APR, c.MinimumPayment)
	return wrap("add card", err)
}

func addLoan(ctx context.Context, ex execer, n *finance.Loan) error {
	if err := n.Validate(); err != nil {
		return err
	}
	n.ID = newID(n.ID)
	_, err := ex.ExecContext(ctx, `INSERT INTO loans (id, name, balance, apr, payment, term_months)
VALUES (?, ?, ?, ?, ?, ?)`, n.ID, n.Name, n.Balance, n.APR, n.Payment, n.TermMonths)
	return wrap("add loan", err)
}

func addGoal(ctx context.Context, ex execer, g *finance.SavingsGoal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	g.ID = newID(g.ID)
	_, err := ex.ExecContext(ctx, `INSERT INTO goals (id, name, target, saved, deadline, emergency)
VALUES (?, ?, ?, ?, ?, ?)`, g.ID, g.Name, g.Target, g.Saved, g.Deadline.String(), g.Emergency)
	return wrap("add goal", err)
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes the record with the given ID from the table. If no such
// record exists, it reports ErrNotFound.
func (s *Store) Delete(ctx context.Context, table Table, id string) error {
	if !isTable(table) {
		return fmt.Errorf("unknown table %q", table)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+string(table)+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%s %q: %w", table, id, ErrNotFound)
	}
	return nil
}

// Import adds every entry of l to the database in a single transaction, and
// reports the number of records written. Entries of l without an ID are
// assigned one once the import commits. If any entry fails, nothing is
// written and l is not modified.
func (s *Store) Import(ctx context.Context, l *finance.Ledger) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	// IDs are assigned on copies, and copied back after the commit.
	work := finance.Ledger{
		Transactions: slices.Clone(l.Transactions),
		Recurring:    slices.Clone(l.Recurring),
		Cards:        slices.Clone(l.Cards),
		Loans:        slices.Clone(l.Loans),
		Goals:        slices.Clone(l.Goals),
	}
	var n int
	add := func(err error) error {
		if err == nil {
			n++
		}
		return err
	}
	for i := range work.Transactions {
		if err := add(addTransaction(ctx, tx, &work.Transactions[i])); err != nil {
			return 0, fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}
	for i := range work.Recurring {
		if err := add(addRecurring(ctx, tx, &work.Recurring[i])); err != nil {
			return 0, err
		}
	}
	for i := range work.Cards {
		if err := add(addCard(ctx, tx, &work.Cards[i])); err != nil {
			return 0, err
		}
	}
	for i := range work.Loans {
		if err := add(addLoan(ctx, tx, &work.Loans[i])); err != nil {
			return 0, err
		}
	}
	for i := range work.Goals {
		if err := add(addGoal(ctx, tx, &work.Goals[i])); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	copy(l.Transactions, work.Transactions)
	copy(l.Recurring, work.Recurring)
	copy(l.Cards, work.Cards)
	copy(l.Loans, work.Loans)
	copy(l.Goals, work.Goals)
	s.log.Info("imported ledger", zap.Int("records", n))
	return n, nil
}
