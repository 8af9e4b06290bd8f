package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var simulateSlippage float64

var simulateCmd = &cobra.Command{
	Use:     "simulate <amount> <source-token> to <dest-token>",
	Aliases: []string{"quote"},
	Short:   "Simulate a swap without executing it",
	Long: `Ask the Euclid router how much a swap would return.

No wallet is needed. The minimum received is shown for the given slippage.

Examples:
  euclid-dex simulate 10 OSMO to ATOM
  euclid-dex simulate 2.5 NIB to STARS --slippage 0.5 --json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Float64Var(&simulateSlippage, "slippage", -1, "Slippage tolerance in percent (default from config)")
}

func runSimulate(cmd *cobra.Command, args []string) {
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

	sim, err := simulate(cmd.Context(), cmd, a, route)
	if err != nil {
		fatal(errors.Wrap(err, "failed to simulate swap"))
	}

	tolerance := simulateSlippage
	if tolerance < 0 {
		tolerance = a.cfg.DefaultSlippage
	}
	minOut, err := minimumOutput(sim.AmountOut.String(), "", tolerance)
	if err != nil {
		fatal(err)
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"amount_in":          route.intent.Amount,
			"asset_in":           route.intent.SourceToken,
			"asset_out":          route.intent.DestToken,
			"amount_out":         sim.AmountOut,
			"estimated_gas":      sim.EstimatedGas,
			"slippage_tolerance": tolerance,
			"min_amount_out":     minOut,
		})
		return
	}

	displaySimulation(route, sim.AmountOut.String(), sim.EstimatedGas.String(), minOut, tolerance)
}

func displaySimulation(route swapRoute, amountOut, gas, minOut string, tolerance float64) {
	fmt.Println()
	fmt.Printf("  %s %s -> %s %s\n", route.intent.Amount, route.intent.SourceToken, amountOut, route.intent.DestToken)
	fmt.Printf("  Route:            %s -> %s\n", route.from.Name, route.to.Name)
	fmt.Printf("  Estimated Gas:    %s\n", gas)
	fmt.Printf("  Minimum Received: %s %s (%.2f%% slippage)\n\n", minOut, route.intent.DestToken, tolerance)
}
