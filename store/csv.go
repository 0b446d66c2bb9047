package store

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/paperquant/aitrader/market"
)

// WriteOrdersCSV dumps the order journal, most recent first, as CSV.
func WriteOrdersCSV(w io.Writer, orders []market.Order) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "symbol", "market", "side", "quantity", "price", "ts"}); err != nil {
		return err
	}
	for _, o := range orders {
		err := cw.Write([]string{
			o.ID,
			o.Symbol,
			string(o.Market),
			string(o.Side),
			o.Quantity.String(),
			o.Price.String(),
			o.Time.Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePositionsCSV dumps current holdings as CSV.
func WritePositionsCSV(w io.Writer, positions []market.Position) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"symbol", "market", "quantity", "avg_price"}); err != nil {
		return err
	}
	for _, p := range positions {
		err := cw.Write([]string{
			p.Symbol,
			string(p.Market),
			p.Quantity.String(),
			p.AvgPrice.String(),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
