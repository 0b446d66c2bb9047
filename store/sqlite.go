package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/market"
)

// SQLite persists the account in a single SQLite database. Decimals are
// stored as TEXT so values survive round-trips exactly.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Balance() (decimal.Decimal, error) {
	var cash string
	err := s.db.QueryRow(`SELECT cash FROM account WHERE id = 1`).Scan(&cash)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(cash)
}

func (s *SQLite) AdjustCash(delta decimal.Decimal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := adjustCashTx(tx, delta); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Position(symbol string) (market.Position, bool, error) {
	row := s.db.QueryRow(`
		SELECT symbol, market, quantity, avg_price
		FROM positions
		WHERE symbol = ?`, symbol)

	pos, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return market.Position{}, false, nil
	}
	if err != nil {
		return market.Position{}, false, err
	}
	return pos, true, nil
}

func (s *SQLite) Positions() ([]market.Position, error) {
	rows, err := s.db.Query(`
		SELECT symbol, market, quantity, avg_price
		FROM positions
		ORDER BY symbol ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []market.Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, rows.Err()
}

func (s *SQLite) Orders() ([]market.Order, error) {
	// ULIDs are time-sortable, so descending ID is most recent first.
	rows, err := s.db.Query(`
		SELECT id, symbol, market, side, quantity, price, ts
		FROM orders
		ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []market.Order
	for rows.Next() {
		var o market.Order
		var mkt, side, qty, price string
		if err := rows.Scan(&o.ID, &o.Symbol, &mkt, &side, &qty, &price, &o.Time); err != nil {
			return nil, err
		}
		o.Market = market.Market(mkt)
		o.Side = market.Side(side)
		if o.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, err
		}
		if o.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ApplyTrade commits the cash delta, the position change, and the order
// record in one transaction: all three land or none do.
func (s *SQLite) ApplyTrade(m TradeMutation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := adjustCashTx(tx, m.CashDelta); err != nil {
		return err
	}

	if m.Upsert != nil {
		p := m.Upsert
		_, err = tx.Exec(`
			INSERT INTO positions (symbol, market, quantity, avg_price)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(symbol) DO UPDATE SET
				market = excluded.market,
				quantity = excluded.quantity,
				avg_price = excluded.avg_price`,
			p.Symbol, string(p.Market), p.Quantity.String(), p.AvgPrice.String(),
		)
		if err != nil {
			return err
		}
	}

	if m.Remove != "" {
		if _, err := tx.Exec(`DELETE FROM positions WHERE symbol = ?`, m.Remove); err != nil {
			return err
		}
	}

	o := m.Order
	_, err = tx.Exec(`
		INSERT INTO orders (id, symbol, market, side, quantity, price, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Symbol, string(o.Market), string(o.Side),
		o.Quantity.String(), o.Price.String(), o.Time,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// adjustCashTx rewrites the single account row. The engine validates
// balances before calling; a negative result here means the caller and
// the store disagree, so the transaction is aborted.
func adjustCashTx(tx *sql.Tx, delta decimal.Decimal) error {
	var cash string
	if err := tx.QueryRow(`SELECT cash FROM account WHERE id = 1`).Scan(&cash); err != nil {
		return err
	}
	cur, err := decimal.NewFromString(cash)
	if err != nil {
		return err
	}

	next := cur.Add(delta)
	if next.IsNegative() {
		return fmt.Errorf("cash would go negative: %s + %s", cur, delta)
	}

	_, err = tx.Exec(`UPDATE account SET cash = ? WHERE id = 1`, next.String())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (market.Position, error) {
	var p market.Position
	var mkt, qty, avg string
	if err := row.Scan(&p.Symbol, &mkt, &qty, &avg); err != nil {
		return market.Position{}, err
	}
	p.Market = market.Market(mkt)

	var err error
	if p.Quantity, err = decimal.NewFromString(qty); err != nil {
		return market.Position{}, err
	}
	if p.AvgPrice, err = decimal.NewFromString(avg); err != nil {
		return market.Position{}, err
	}
	return p, nil
}
