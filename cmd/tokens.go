package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"euclid-dex/config"
	"euclid-dex/pkg/catalog"
)

var (
	filterChain  string
	filterSymbol string
)

var tokensCmd = &cobra.Command{
	Use:     "list-tokens",
	Aliases: []string{"tokens", "ls"},
	Short:   "List all supported tokens",
	Long: `List the tokens the Euclid router can swap and the chain each lives on.

You can filter tokens by chain or symbol.

Examples:
  euclid-dex list-tokens
  euclid-dex list-tokens --chain osmosis
  euclid-dex list-tokens --symbol ATOM`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterChain, "chain", "", "Filter by chain id")
	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by token symbol")
}

type tokenView struct {
	Symbol   string `json:"symbol"`
	ChainID  string `json:"chain_id"`
	Chain    string `json:"chain"`
	Contract string `json:"contract"`
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}

	filtered := filterTokens(cfg.Catalog().Tokens(), filterChain, filterSymbol)

	if jsonOutput {
		views := make([]tokenView, 0, len(filtered))
		for _, t := range filtered {
			views = append(views, tokenView{Symbol: t.Symbol, ChainID: t.Chain.ChainID, Chain: t.Chain.Name, Contract: t.Chain.Contract})
		}
		printJSON(views)
		return
	}
	displayTokens(filtered)
}

func filterTokens(tokens []catalog.Token, chain, symbol string) []catalog.Token {
	var out []catalog.Token
	for _, t := range tokens {
		if chain != "" && !strings.EqualFold(t.Chain.ChainID, chain) {
			continue
		}
		if symbol != "" && !strings.Contains(strings.ToUpper(t.Symbol), strings.ToUpper(symbol)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func displayTokens(tokens []catalog.Token) {
	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	color.Green("                            SUPPORTED TOKENS")
	fmt.Println(strings.Repeat("=", 90))

	// Tokens arrive sorted by chain
	chains := 0
	current := ""
	for _, t := range tokens {
		if t.Chain.ChainID != current {
			current = t.Chain.ChainID
			chains++
			color.Cyan("\n%s", strings.ToUpper(t.Chain.Name))
			fmt.Println(strings.Repeat("-", 90))
		}

		contract := t.Chain.Contract
		if len(contract) > 40 {
			contract = contract[:37] + "..."
		}
		fmt.Printf("  %-10s  %s\n", color.YellowString(t.Symbol), color.HiBlackString(contract))
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	fmt.Printf("\nTotal: %d tokens across %d chains\n\n", len(tokens), chains)
}
