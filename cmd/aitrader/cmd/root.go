package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/paperquant/aitrader/advisor"
	"github.com/paperquant/aitrader/broker"
	"github.com/paperquant/aitrader/config"
	"github.com/paperquant/aitrader/quote"
	"github.com/paperquant/aitrader/research"
	"github.com/paperquant/aitrader/store"
)

var (
	cfgFile string
	verbose bool
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aitrader",
	Short: "A paper-trading account with research and advisory helpers",
	Long: `aitrader tracks a simulated brokerage account in a local SQLite
database: cash, holdings with weighted average cost, and an append-only
journal of executed orders.

Around the account it wires the stateless helpers the workflow needs:
  - A-share / HK quote lookup (Yahoo with Sina fallback)
  - finance topic search (DuckDuckGo or Serper)
  - LLM allocation suggestions (Gemini or a local Ollama model)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.FromEnv()
}

// newQuotePort builds the configured provider chain, each provider
// wrapped in a circuit breaker.
func newQuotePort(cfg *config.Config) quote.Port {
	var providers []quote.Port
	for _, name := range cfg.Quote.Providers {
		switch name {
		case "yahoo":
			providers = append(providers, quote.NewBreaker("yahoo", quote.NewYahoo()))
		case "sina":
			providers = append(providers, quote.NewBreaker("sina", quote.NewSina()))
		}
	}
	return quote.NewChain(providers...)
}

// openEngine builds the engine over the configured SQLite store. The
// caller closes the store.
func openEngine(cfg *config.Config) (*broker.Engine, store.Store, error) {
	st, err := store.NewSQLite(cfg.Broker.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	timeout, err := cfg.Quote.ParseTimeout()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	engine := broker.New(st, newQuotePort(cfg),
		broker.WithLogger(logger),
		broker.WithQuoteTimeout(timeout),
	)
	return engine, st, nil
}

func newSearcher(cfg *config.Config) research.Searcher {
	if cfg.Research.Provider == "serper" {
		return research.NewSerper(cfg.Research.SerperKey)
	}
	return research.NewDuckDuckGo()
}

// newAdvisor returns nil when advisory is disabled.
func newAdvisor(ctx context.Context, cfg *config.Config) (advisor.Advisor, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		return advisor.NewGemini(client, cfg.LLM.Model), nil
	case "ollama":
		return advisor.NewOllama(cfg.LLM.Model), nil
	default:
		return nil, nil
	}
}
