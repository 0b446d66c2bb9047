package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/paperquant/aitrader/market"
	"github.com/paperquant/aitrader/workflow"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the research-advise-execute demo workflow",
	Long: `Run the full workflow against two well-known instruments:
research the topic, fetch quotes, ask the advisor for an allocation,
deposit funds, and execute the buy plan.

Example:
  aitrader demo --topic "A-share liquor sector outlook" --deposit 1000000`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var (
	demoTopic   string
	demoDeposit string
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoTopic, "topic", "blue chip outlook", "research topic")
	demoCmd.Flags().StringVar(&demoDeposit, "deposit", "1000000", "amount to deposit before buying")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	deposit, err := decimal.NewFromString(demoDeposit)
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}

	engine, st, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	adv, err := newAdvisor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	coor := workflow.NewCoordinator(newSearcher(cfg), newQuotePort(cfg), adv, engine, logger)

	ten := decimal.NewFromInt(10)
	result, err := coor.Run(cmd.Context(), workflow.Params{
		Topic: demoTopic,
		Goal:  "steady growth",
		Targets: []workflow.Target{
			{Symbol: "600519", Market: market.MarketA}, // Kweichow Moutai
			{Symbol: "0700", Market: market.MarketHK},  // Tencent
		},
		BuyPlan: map[string]decimal.Decimal{
			"600519": ten,
			"0700":   ten,
		},
		Deposit: deposit,
	})
	if err != nil {
		return err
	}

	fmt.Println("Research (top):")
	for i, r := range result.Research {
		if i >= 5 {
			break
		}
		fmt.Printf("[%d] %s -> %s\n", i+1, r.Title, r.URL)
	}

	fmt.Println("\nQuotes:")
	for _, q := range result.Quotes {
		if q.HasPrice() {
			fmt.Printf("  %s: %s %s\n", q.Symbol, q.Price, q.Currency)
		} else {
			fmt.Printf("  %s: unavailable\n", q.Symbol)
		}
	}

	if result.Advice != "" {
		fmt.Printf("\nAllocation advice:\n%s\n", result.Advice)
	}

	fmt.Printf("\nCash balance: %s %s\n", result.Balance, cfg.Broker.Currency)
	printPositions(result.Positions)
	printOrders(result.Orders)
	return nil
}
