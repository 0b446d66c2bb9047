package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/paperquant/aitrader/broker"
	"github.com/paperquant/aitrader/market"
)

var orderCmd = &cobra.Command{
	Use:   "order <buy|sell> <symbol>",
	Short: "Place a paper order",
	Long: `Place a buy or sell order against the paper account.

Without --price the current quote is used; an explicit price wins.

Examples:
  aitrader order buy 600519 --market A --qty 10 --price 1800
  aitrader order sell 600519 --market A --qty 10`,
	Args: cobra.ExactArgs(2),
	RunE: runOrder,
}

var (
	orderMarket string
	orderQty    string
	orderPrice  string
)

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.Flags().StringVarP(&orderMarket, "market", "m", "A", "market: A, HK, or OTHER")
	orderCmd.Flags().StringVarP(&orderQty, "qty", "q", "", "quantity (required)")
	orderCmd.Flags().StringVarP(&orderPrice, "price", "p", "", "execution price (optional, quote used when omitted)")
	orderCmd.MarkFlagRequired("qty")
}

func runOrder(cmd *cobra.Command, args []string) error {
	side, err := market.ParseSide(args[0])
	if err != nil {
		return err
	}

	qty, err := decimal.NewFromString(orderQty)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}

	req := broker.OrderRequest{
		Symbol:   args[1],
		Market:   market.ParseMarket(orderMarket),
		Side:     side,
		Quantity: qty,
	}
	if orderPrice != "" {
		price, err := decimal.NewFromString(orderPrice)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		req.Price = &price
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, st, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	order, err := engine.PlaceOrder(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Printf("Applied %s %s x %s @ %s (order %s)\n",
		order.Side, order.Symbol, order.Quantity, order.Price, order.ID)

	balance, err := engine.Balance()
	if err != nil {
		return err
	}
	fmt.Printf("Cash balance: %s %s\n", balance, cfg.Broker.Currency)
	return nil
}
