package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/catalog"
	"euclid-dex/pkg/client"
	"euclid-dex/pkg/parser"
	"euclid-dex/pkg/slippage"
	"euclid-dex/pkg/types"
)

const (
	minTimeoutSeconds = 30
	maxTimeoutSeconds = 240
)

var (
	swapSlippage         float64
	swapMinOut           string
	swapSender           string
	swapTimeout          int
	swapCrossChain       []string
	swapPartnerFeeBps    int
	swapPartnerRecipient string
	noConfirm            bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <source-token> to <dest-token>",
	Short: "Simulate and execute a token swap",
	Long: `Swap tokens through the Euclid router.

The swap is simulated first. Unless --min-out is given, the minimum output is
derived from the simulated amount and the slippage tolerance:
  min_out = amount_out * (1 - slippage / 100)

Examples:
  euclid-dex swap 10 OSMO to ATOM
  euclid-dex swap 10 OSMO to NIB --slippage 0.5 --yes
  euclid-dex swap 10 OSMO to NIB --cross-chain nibi1...@nibiru --timeout 120`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().Float64Var(&swapSlippage, "slippage", -1, "Slippage tolerance in percent (default from config)")
	swapCmd.Flags().StringVar(&swapMinOut, "min-out", "", "Minimum output amount (overrides --slippage)")
	swapCmd.Flags().StringVar(&swapSender, "sender", "", "Sender address (default: connected wallet)")
	swapCmd.Flags().IntVar(&swapTimeout, "timeout", 0, "Timeout in seconds interpreted by the service (30-240)")
	swapCmd.Flags().StringSliceVar(&swapCrossChain, "cross-chain", nil, "Release address as <address>@<chain-id>, repeatable")
	swapCmd.Flags().IntVar(&swapPartnerFeeBps, "partner-fee-bps", 0, "Partner fee in basis points")
	swapCmd.Flags().StringVar(&swapPartnerRecipient, "partner-recipient", "", "Partner fee recipient address")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

// swapRoute is a parsed swap with the chains it touches
type swapRoute struct {
	intent *types.SwapIntent
	from   catalog.Chain
	to     catalog.Chain
}

func (r swapRoute) path() types.SwapPath {
	return types.SwapPath{parser.WireToken(r.intent.SourceToken), parser.WireToken(r.intent.DestToken)}
}

func resolveRoute(a *app, args []string) (swapRoute, error) {
	intent, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		return swapRoute{}, err
	}

	from, err := a.catalog.ChainForToken(intent.SourceToken)
	if err != nil {
		return swapRoute{}, err
	}
	to, err := a.catalog.ChainForToken(intent.DestToken)
	if err != nil {
		return swapRoute{}, err
	}

	return swapRoute{intent: intent, from: from, to: to}, nil
}

func simulate(ctx context.Context, cmd *cobra.Command, a *app, route swapRoute) (*types.SimulateSwapResponse, error) {
	stop := startSpinner(cmd, "Simulating swap...")
	defer stop()

	return a.api.SimulateSwap(ctx, client.SimulateSwapParams{
		AmountIn:     route.intent.Amount,
		AssetIn:      parser.WireToken(route.intent.SourceToken),
		AssetOut:     parser.WireToken(route.intent.DestToken),
		Contract:     route.from.Contract,
		MinAmountOut: "1",
		Swaps:        route.path(),
	})
}

func runSwap(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	route, err := resolveRoute(a, args)
	if err != nil {
		fatal(err)
	}

	crossChain, err := parseCrossChain(swapCrossChain)
	if err != nil {
		fatal(err)
	}

	sender, err := a.sender(ctx, route.from.ChainID, swapSender)
	if err != nil {
		exitOnWalletError(err)
	}

	sim, err := simulate(ctx, cmd, a, route)
	if err != nil {
		fatal(errors.Wrap(err, "failed to simulate swap"))
	}

	tolerance := swapSlippage
	if tolerance < 0 {
		tolerance = a.cfg.DefaultSlippage
	}
	minOut, err := minimumOutput(sim.AmountOut.String(), swapMinOut, tolerance)
	if err != nil {
		fatal(err)
	}

	if !jsonOutput {
		displaySwapQuote(route, sender, sim, minOut)
	}

	if !noConfirm && !jsonOutput {
		if !confirm("Proceed with swap?") {
			fmt.Println("\nSwap cancelled.")
			return
		}
	}

	params := client.SwapParams{
		AmountIn:            route.intent.Amount,
		AssetIn:             types.NewSmartAsset(parser.WireToken(route.intent.SourceToken), route.from.Contract),
		AssetOut:            parser.WireToken(route.intent.DestToken),
		MinAmountOut:        minOut,
		Sender:              sender,
		Swaps:               route.path(),
		CrossChainAddresses: crossChain,
		Timeout:             timeoutFlag(swapTimeout),
	}
	if swapPartnerRecipient != "" {
		params.PartnerFee = &types.PartnerFee{PartnerFeeBps: swapPartnerFeeBps, Recipient: swapPartnerRecipient}
	}

	stop := startSpinner(cmd, "Executing swap...")
	resp, err := a.api.Swap(ctx, params)
	stop()
	if err != nil {
		fatal(errors.Wrap(err, "failed to execute swap"))
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"simulation":     sim.Raw,
			"min_amount_out": minOut,
			"result":         resp.Body,
		})
		return
	}

	color.Green("\nSwap executed successfully! You swapped %s %s for %s.", route.intent.Amount, route.intent.SourceToken, route.intent.DestToken)
	fmt.Println(resp.String())
}

// minimumOutput returns the explicit minimum when set, otherwise
// amount_out * (1 - tolerance/100) of the simulated amount.
func minimumOutput(simulated, explicit string, tolerance float64) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	minOut, err := slippage.MinAmountOut(simulated, tolerance)
	if err != nil {
		return "", errors.Wrap(err, "derive minimum output")
	}
	return minOut, nil
}

// parseCrossChain reads <address>@<chain-id> values
func parseCrossChain(values []string) ([]types.CrossChainAddress, error) {
	out := make([]types.CrossChainAddress, 0, len(values))
	for _, v := range values {
		address, chainID, ok := strings.Cut(v, "@")
		if !ok || address == "" || chainID == "" {
			return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "cross-chain address %q must look like <address>@<chain-id>", v)
		}
		out = append(out, types.CrossChainAddress{User: types.SenderRef{Address: address, ChainUID: chainID}})
	}
	return out, nil
}

// timeoutFlag turns the --timeout flag into the optional wire field. Values
// outside the documented range are still sent; the service decides.
func timeoutFlag(seconds int) *int {
	if seconds == 0 {
		return nil
	}
	if seconds < minTimeoutSeconds || seconds > maxTimeoutSeconds {
		color.Yellow("Warning: timeout %ds is outside the supported %d-%ds range", seconds, minTimeoutSeconds, maxTimeoutSeconds)
	}
	return &seconds
}

func displaySwapQuote(route swapRoute, sender types.SenderRef, sim *types.SimulateSwapResponse, minOut string) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:              %s %s\n", route.intent.Amount, color.YellowString(route.intent.SourceToken))
	fmt.Printf("  To:                ~%s %s\n", sim.AmountOut.String(), color.YellowString(route.intent.DestToken))
	fmt.Printf("  Minimum Received:  %s %s\n", minOut, route.intent.DestToken)
	fmt.Printf("  Estimated Gas:     %s\n", sim.EstimatedGas.String())
	fmt.Printf("  Source Chain:      %s\n", route.from.Name)
	fmt.Printf("  Destination Chain: %s\n", route.to.Name)
	fmt.Printf("  Sender:            %s\n", color.CyanString(sender.Address))

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
