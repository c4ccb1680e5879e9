// Package store persists calculation runs in a local SQLite database so past
// filings can be audited after the source CSV exports are gone.
//
// A run is one invocation of the calculator: its timestamp, base currency,
// and the resulting tax lines with exact decimal amounts. Amounts are stored
// as text to keep them exact; costs keep their cash/coupon structure as JSON.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/oskarw/cryptotax"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    created_at    DATETIME NOT NULL,
    source        TEXT NOT NULL,
    base_currency TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS taxable_trades (
    run_id   TEXT    NOT NULL REFERENCES runs(id),
    seq      INTEGER NOT NULL,
    date     TEXT    NOT NULL,
    currency TEXT    NOT NULL,
    amount   TEXT    NOT NULL,
    income   TEXT    NOT NULL,
    costs    TEXT    NOT NULL,
    PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`

// Run summarizes one stored calculation.
type Run struct {
	ID           string
	CreatedAt    time.Time
	Source       string // the broker export the run was calculated from
	BaseCurrency string
	Lines        int
}

// Store is a handle to the audit database. Safe for concurrent use; writes
// serialize on a single connection since SQLite is single-writer.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the tax lines of one calculation and returns the new run
// id. source names the broker export the lines were calculated from.
func (s *Store) SaveRun(ctx context.Context, source, baseCurrency string, lines []cryptotax.TaxableTrade) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source, base_currency) VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), source, baseCurrency,
	); err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO taxable_trades (run_id, seq, date, currency, amount, income, costs)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for i, line := range lines {
		income, err := json.Marshal(line.Income)
		if err != nil {
			return "", fmt.Errorf("store: encode income: %w", err)
		}
		costs, err := json.Marshal(line.Costs)
		if err != nil {
			return "", fmt.Errorf("store: encode costs: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			id, i, line.Date, line.Currency, line.Amount.String(), string(income), string(costs),
		); err != nil {
			return "", fmt.Errorf("store: insert line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.source, r.base_currency, COUNT(t.run_id)
		FROM runs r
		LEFT JOIN taxable_trades t ON t.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Source, &r.BaseCurrency, &r.Lines); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("store: bad created_at %q: %w", created, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunTrades loads the tax lines of one run in their original order.
func (s *Store) RunTrades(ctx context.Context, runID string) ([]cryptotax.TaxableTrade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, currency, amount, income, costs
		FROM taxable_trades
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: query trades: %w", err)
	}
	defer rows.Close()

	var lines []cryptotax.TaxableTrade
	for rows.Next() {
		var date, currency, amount, incomeJSON, costsJSON string
		if err := rows.Scan(&date, &currency, &amount, &incomeJSON, &costsJSON); err != nil {
			return nil, fmt.Errorf("store: scan trade: %w", err)
		}

		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("store: run %s: bad amount %q: %w", runID, amount, err)
		}
		var income cryptotax.Money
		if err := json.Unmarshal([]byte(incomeJSON), &income); err != nil {
			return nil, fmt.Errorf("store: run %s: decode income: %w", runID, err)
		}
		var costs []cryptotax.Money
		if err := json.Unmarshal([]byte(costsJSON), &costs); err != nil {
			return nil, fmt.Errorf("store: run %s: decode costs: %w", runID, err)
		}

		lines = append(lines, cryptotax.NewTaxableTrade(date, currency, amt, income, costs))
	}
	return lines, rows.Err()
}
