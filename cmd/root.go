package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"euclid-dex/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "euclid-dex",
	Short: "A CLI for swaps and liquidity on the Euclid DEX",
	Long: `euclid-dex is a command-line front-end for the Euclid decentralized exchange.
It connects a wallet to obtain your address, then asks the Euclid API to
simulate and execute swaps or to add and remove pool liquidity.

Examples:
  euclid-dex wallet connect --chain osmosis
  euclid-dex simulate 10 OSMO to ATOM
  euclid-dex swap 10 OSMO to ATOM --slippage 0.5
  euclid-dex liquidity add OSMO ATOM 1000 2000
  euclid-dex list-tokens`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		return logger.Init(verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $HOME/.euclid-dex.yaml)")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// startSpinner shows progress on interactive terminals only. The returned
// func stops it.
func startSpinner(cmd *cobra.Command, suffix string) func() {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	s.Start()
	return s.Stop
}

func confirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		color.Yellow("\nNot an interactive terminal; pass --yes to confirm.")
		return false
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n%s (y/N): ", prompt)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func fatal(err error) {
	printError(err)
	logger.Sync()
	os.Exit(1)
}
