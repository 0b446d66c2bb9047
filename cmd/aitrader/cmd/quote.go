package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperquant/aitrader/market"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Look up an A-share or HK quote",
	Long: `Look up the current quote for an instrument.

Examples:
  aitrader quote --a 600519
  aitrader quote --hk 0700`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

var (
	quoteA  string
	quoteHK string
)

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().StringVar(&quoteA, "a", "", "A-share code, e.g. 600519")
	quoteCmd.Flags().StringVar(&quoteHK, "hk", "", "HK code, e.g. 0700")
	quoteCmd.MarkFlagsMutuallyExclusive("a", "hk")
}

func runQuote(cmd *cobra.Command, args []string) error {
	var symbol string
	var mkt market.Market
	switch {
	case quoteA != "":
		symbol, mkt = quoteA, market.MarketA
	case quoteHK != "":
		symbol, mkt = quoteHK, market.MarketHK
	default:
		return fmt.Errorf("provide --a or --hk")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	timeout, err := cfg.Quote.ParseTimeout()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	q, err := newQuotePort(cfg).Quote(ctx, symbol, mkt)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n", q.Symbol, q.Name)
	fmt.Printf("  price: %s %s\n", q.Price, q.Currency)
	if !q.Change.IsZero() || !q.ChangePercent.IsZero() {
		fmt.Printf("  change: %s (%s%%)\n", q.Change, q.ChangePercent)
	}
	if !q.Time.IsZero() {
		fmt.Printf("  time: %s\n", q.Time.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
