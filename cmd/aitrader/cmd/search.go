package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search finance news and research",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var searchTop int

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchTop, "top", 6, "maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results, err := newSearcher(cfg).Search(cmd.Context(), args[0], searchTop)
	if err != nil {
		return err
	}

	for i, r := range results {
		fmt.Printf("[%d] %s\n%s\n%s\n\n", i+1, r.Title, r.URL, r.Snippet)
	}
	return nil
}
