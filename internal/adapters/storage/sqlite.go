package storage

// sqlite.go — append-only trade log for the decision engine.
//
// One row per trading iteration, whatever the outcome. The engine never
// reads this back: its only decision state is the in-memory last-trade
// flag. The log exists so a run can be audited after the fact.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS iterations (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    at          DATETIME NOT NULL,
    symbol      TEXT     NOT NULL,
    outcome     TEXT     NOT NULL,
    cash        TEXT     NOT NULL DEFAULT '0',
    last_price  TEXT     NOT NULL DEFAULT '0',
    quantity    INTEGER  NOT NULL DEFAULT 0,
    probability REAL     NOT NULL DEFAULT 0,
    label       TEXT     NOT NULL DEFAULT 'neutral',
    degraded    INTEGER  NOT NULL DEFAULT 0,
    side        TEXT,
    take_profit TEXT,
    stop_loss   TEXT,
    order_id    TEXT,
    liquidated  INTEGER  NOT NULL DEFAULT 0,
    reason      TEXT
);

CREATE INDEX IF NOT EXISTS idx_iterations_at     ON iterations(at DESC);
CREATE INDEX IF NOT EXISTS idx_iterations_symbol ON iterations(symbol);
`

// retention: a daily cadence produces ~365 rows/year, pruning is about
// keeping stray high-frequency test runs from growing the file forever.
const retention = 365 * 24 * time.Hour

// SQLiteTradeLog implements ports.TradeLog using SQLite (pure Go, no CGo).
type SQLiteTradeLog struct {
	db *sql.DB
}

// NewSQLiteTradeLog opens (or creates) the database at the given path,
// applies the schema, and prunes old rows.
func NewSQLiteTradeLog(path string) (*SQLiteTradeLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteTradeLog: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteTradeLog: apply schema: %w", err)
	}

	s := &SQLiteTradeLog{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveIteration appends one iteration record.
func (s *SQLiteTradeLog) SaveIteration(ctx context.Context, rec domain.IterationRecord) error {
	var side, takeProfit, stopLoss, orderID sql.NullString
	if rec.Order != nil {
		side = sql.NullString{String: string(rec.Order.Side), Valid: true}
		takeProfit = sql.NullString{String: rec.Order.TakeProfit.String(), Valid: true}
		stopLoss = sql.NullString{String: rec.Order.StopLoss.String(), Valid: true}
	}
	if rec.Handle != nil {
		orderID = sql.NullString{String: rec.Handle.ID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO iterations
		    (at, symbol, outcome, cash, last_price, quantity,
		     probability, label, degraded,
		     side, take_profit, stop_loss, order_id, liquidated, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.At.UTC(), rec.Symbol, string(rec.Outcome),
		rec.Sizing.Cash.String(), rec.Sizing.LastPrice.String(), rec.Sizing.Quantity,
		rec.Sentiment.Probability, string(rec.Sentiment.Label), boolToInt(rec.Sizing.Degraded || rec.Sentiment.Degraded),
		side, takeProfit, stopLoss, orderID, boolToInt(rec.Liquidated), rec.Reason,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveIteration: insert: %w", err)
	}
	return nil
}

// History returns the iteration records in [from, to], oldest first.
func (s *SQLiteTradeLog) History(ctx context.Context, from, to time.Time) ([]domain.IterationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT at, symbol, outcome, cash, last_price, quantity,
		       probability, label, degraded,
		       side, take_profit, stop_loss, order_id, liquidated, reason
		FROM iterations
		WHERE at >= ? AND at <= ?
		ORDER BY at ASC`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage.History: query: %w", err)
	}
	defer rows.Close()

	var records []domain.IterationRecord
	for rows.Next() {
		rec, err := scanIteration(rows)
		if err != nil {
			return nil, fmt.Errorf("storage.History: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.History: rows: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteTradeLog) Close() error {
	return s.db.Close()
}

func scanIteration(rows *sql.Rows) (domain.IterationRecord, error) {
	var (
		rec                              domain.IterationRecord
		cash, lastPrice, outcome, label  string
		degraded, liquidated             int
		side, takeProfit, stopLoss, oid  sql.NullString
		reason                           sql.NullString
	)
	err := rows.Scan(
		&rec.At, &rec.Symbol, &outcome, &cash, &lastPrice, &rec.Sizing.Quantity,
		&rec.Sentiment.Probability, &label, &degraded,
		&side, &takeProfit, &stopLoss, &oid, &liquidated, &reason,
	)
	if err != nil {
		return domain.IterationRecord{}, fmt.Errorf("scan: %w", err)
	}

	rec.Outcome = domain.IterationOutcome(outcome)
	rec.Sentiment.Label = domain.Label(label)
	rec.Liquidated = liquidated != 0
	rec.Reason = reason.String
	if rec.Sizing.Cash, err = decimal.NewFromString(cash); err != nil {
		return domain.IterationRecord{}, fmt.Errorf("parse cash %q: %w", cash, err)
	}
	if rec.Sizing.LastPrice, err = decimal.NewFromString(lastPrice); err != nil {
		return domain.IterationRecord{}, fmt.Errorf("parse last_price %q: %w", lastPrice, err)
	}

	if side.Valid {
		tp, err := decimal.NewFromString(takeProfit.String)
		if err != nil {
			return domain.IterationRecord{}, fmt.Errorf("parse take_profit: %w", err)
		}
		sl, err := decimal.NewFromString(stopLoss.String)
		if err != nil {
			return domain.IterationRecord{}, fmt.Errorf("parse stop_loss: %w", err)
		}
		rec.Order = &domain.OrderSpec{
			Symbol:     rec.Symbol,
			Quantity:   rec.Sizing.Quantity,
			Side:       domain.Side(side.String),
			Kind:       domain.OrderKindBracket,
			LimitRef:   rec.Sizing.LastPrice,
			TakeProfit: tp,
			StopLoss:   sl,
		}
	}
	if oid.Valid {
		rec.Handle = &domain.OrderHandle{ID: oid.String}
	}
	return rec, nil
}

// pruneOld removes rows beyond the retention window. Best effort.
func (s *SQLiteTradeLog) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retention)
	s.db.ExecContext(ctx, `DELETE FROM iterations WHERE at < ?`, cutoff)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
