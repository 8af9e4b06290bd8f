package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"euclid-dex/pkg/catalog"
	"euclid-dex/pkg/client"
	"euclid-dex/pkg/logger"
	"euclid-dex/pkg/parser"
	"euclid-dex/pkg/types"
)

var (
	liqSlippage   float64
	liqSender     string
	liqChain      string
	liqVLP        string
	liqTimeout    int
	liqCrossChain []string
)

var liquidityCmd = &cobra.Command{
	Use:     "liquidity",
	Aliases: []string{"lp"},
	Short:   "Add or remove pool liquidity",
}

var addLiquidityCmd = &cobra.Command{
	Use:   "add <token-1> <token-2> <amount-1> <amount-2>",
	Short: "Add liquidity to a pool",
	Long: `Deposit both sides of a pool.

Examples:
  euclid-dex liquidity add OSMO ATOM 1000 2000
  euclid-dex liquidity add NIB UST 500 500 --slippage 2`,
	Args: cobra.ExactArgs(4),
	Run:  runAddLiquidity,
}

var removeLiquidityCmd = &cobra.Command{
	Use:   "remove <token-1> <token-2> <lp-allocation>",
	Short: "Remove liquidity from a pool",
	Long: `Withdraw an LP allocation from a pool.

Examples:
  euclid-dex liquidity remove OSMO ATOM 100 --vlp nibi1...
  euclid-dex liquidity remove OSMO ATOM 100 --vlp nibi1... --timeout 60 --cross-chain osmo1...@osmosis`,
	Args: cobra.ExactArgs(3),
	Run:  runRemoveLiquidity,
}

func init() {
	rootCmd.AddCommand(liquidityCmd)
	liquidityCmd.AddCommand(addLiquidityCmd)
	liquidityCmd.AddCommand(removeLiquidityCmd)

	liquidityCmd.PersistentFlags().StringVar(&liqSender, "sender", "", "Sender address (default: connected wallet)")
	liquidityCmd.PersistentFlags().StringVar(&liqChain, "chain", "", "Sender chain (default: chain of the first token)")

	addLiquidityCmd.Flags().Float64Var(&liqSlippage, "slippage", -1, "Slippage tolerance in percent (default from config)")

	removeLiquidityCmd.Flags().StringVar(&liqVLP, "vlp", "", "VLP contract address of the pool")
	removeLiquidityCmd.Flags().IntVar(&liqTimeout, "timeout", 0, "Timeout in seconds interpreted by the service (30-240)")
	removeLiquidityCmd.Flags().StringSliceVar(&liqCrossChain, "cross-chain", nil, "Release address as <address>@<chain-id>, repeatable")
	_ = removeLiquidityCmd.MarkFlagRequired("vlp")
}

// liquidityChains resolves the chain of each pool token and the chain the
// sender acts on.
func liquidityChains(a *app, token1, token2 string) (catalog.Chain, catalog.Chain, string, error) {
	c1, err := a.catalog.ChainForToken(token1)
	if err != nil {
		return catalog.Chain{}, catalog.Chain{}, "", err
	}
	c2, err := a.catalog.ChainForToken(token2)
	if err != nil {
		return catalog.Chain{}, catalog.Chain{}, "", err
	}

	senderChain := c1.ChainID
	if liqChain != "" {
		chain, err := a.catalog.Chain(liqChain)
		if err != nil {
			return catalog.Chain{}, catalog.Chain{}, "", err
		}
		senderChain = chain.ChainID
	}
	return c1, c2, senderChain, nil
}

func runAddLiquidity(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	token1, token2 := strings.ToUpper(args[0]), strings.ToUpper(args[1])
	c1, c2, senderChain, err := liquidityChains(a, token1, token2)
	if err != nil {
		fatal(err)
	}

	sender, err := a.sender(ctx, senderChain, liqSender)
	if err != nil {
		exitOnWalletError(err)
	}

	tolerance := liqSlippage
	if tolerance < 0 {
		tolerance = a.cfg.DefaultSlippage
	}

	params := client.AddLiquidityParams{
		PairInfo: types.PairInfo{
			Token1: types.NewSmartAsset(parser.WireToken(token1), c1.Contract),
			Token2: types.NewSmartAsset(parser.WireToken(token2), c2.Contract),
		},
		Token1Liquidity:   args[2],
		Token2Liquidity:   args[3],
		SlippageTolerance: tolerance,
		SenderAddress:     sender.Address,
		ChainUID:          sender.ChainUID,
	}

	resp := withSpinner(cmd, "Adding liquidity...", func(ctx context.Context) *types.Response {
		return client.NewLenient(a.api, logger.Log).AddLiquidity(ctx, params)
	})
	reportLiquidity(resp, jsonOutput, "Liquidity added successfully!", "Failed to add liquidity.")
}

func runRemoveLiquidity(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	token1, token2 := strings.ToUpper(args[0]), strings.ToUpper(args[1])
	_, _, senderChain, err := liquidityChains(a, token1, token2)
	if err != nil {
		fatal(err)
	}

	crossChain, err := parseCrossChain(liqCrossChain)
	if err != nil {
		fatal(err)
	}

	sender, err := a.sender(ctx, senderChain, liqSender)
	if err != nil {
		exitOnWalletError(err)
	}

	params := client.RemoveLiquidityParams{
		Pair:                types.Pair{Token1: parser.WireToken(token1), Token2: parser.WireToken(token2)},
		LPAllocation:        args[2],
		SenderAddress:       sender.Address,
		ChainUID:            sender.ChainUID,
		VLPAddress:          liqVLP,
		CrossChainAddresses: crossChain,
		Timeout:             timeoutFlag(liqTimeout),
	}

	resp := withSpinner(cmd, "Removing liquidity...", func(ctx context.Context) *types.Response {
		return client.NewLenient(a.api, logger.Log).RemoveLiquidity(ctx, params)
	})
	reportLiquidity(resp, jsonOutput, "Liquidity removed successfully!", "Failed to remove liquidity.")
}

func withSpinner(cmd *cobra.Command, suffix string, fn func(context.Context) *types.Response) *types.Response {
	stop := startSpinner(cmd, suffix)
	defer stop()
	return fn(cmd.Context())
}

// reportLiquidity prints the outcome. A nil response means the call failed
// and the cause was already logged.
func reportLiquidity(resp *types.Response, jsonOutput bool, ok, failed string) {
	if resp == nil {
		if jsonOutput {
			printJSON(map[string]interface{}{"success": false, "error": failed})
			os.Exit(1)
		}
		fatal(errors.New(failed))
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "result": resp.Body})
		return
	}

	color.Green("\n%s", ok)
	fmt.Println(resp.String())
}
