package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/wallet"
	"euclid-dex/pkg/wallet/cosmos"
)

const weiDecimals = 18

var (
	walletKind  string
	walletChain string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Connect and inspect the wallet",
}

var walletConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect a Keplr or MetaMask wallet",
	Long: `Connect a wallet and remember the session for later commands.

Examples:
  euclid-dex wallet connect --chain osmosis
  euclid-dex wallet connect --kind evm`,
	Args: cobra.NoArgs,
	Run:  runWalletConnect,
}

var walletDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Forget the connected wallet",
	Args:  cobra.NoArgs,
	Run:   runWalletDisconnect,
}

var walletStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the connected wallet",
	Args:  cobra.NoArgs,
	Run:   runWalletStatus,
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance [denom]",
	Short: "Show the balance of the connected wallet",
	Long: `Show a balance of the connected address.

Cosmos wallets query the bank module of the chain's REST endpoint; the denom
defaults to "u" + the chain prefix. EVM wallets show the native balance.

Examples:
  euclid-dex wallet balance uosmo
  euclid-dex wallet balance`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWalletBalance,
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletConnectCmd, walletDisconnectCmd, walletStatusCmd, walletBalanceCmd)

	walletConnectCmd.Flags().StringVar(&walletKind, "kind", string(wallet.KindCosmos), "Wallet kind: cosmos or evm")
	walletConnectCmd.Flags().StringVar(&walletChain, "chain", "", "Chain to connect to (default from config)")
	walletDisconnectCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func parseKind(s string) (wallet.ChainKind, error) {
	switch wallet.ChainKind(strings.ToLower(s)) {
	case wallet.KindCosmos:
		return wallet.KindCosmos, nil
	case wallet.KindEVM:
		return wallet.KindEVM, nil
	}
	return "", errors.Wrapf(apperrors.ErrInvalidArgument, "unknown wallet kind %q", s)
}

func runWalletConnect(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	kind, err := parseKind(walletKind)
	if err != nil {
		fatal(err)
	}

	a, err := newApp(cmd)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	chainID := walletChain
	if chainID == "" {
		chainID = a.cfg.Cosmos.DefaultChain
		if kind == wallet.KindEVM {
			chainID = a.cfg.EVM.ChainID
		}
	}

	stop := startSpinner(cmd, "Connecting wallet...")
	s, err := a.connect(cmd.Context(), kind, chainID)
	stop()
	if err != nil {
		exitOnWalletError(err)
	}

	if jsonOutput {
		printJSON(s)
		return
	}
	color.Green("\nConnected to %s. Address: %s", s.ChainID, s.Address)
}

func runWalletDisconnect(cmd *cobra.Command, args []string) {
	a, err := newApp(cmd)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	s, ok := a.connector.Session()
	if !ok {
		printSuccess("No wallet connected.")
		return
	}

	if !noConfirm && !confirm(fmt.Sprintf("Disconnect %s?", s.Address)) {
		fmt.Println("\nDisconnect cancelled.")
		return
	}

	a.connector.Disconnect()
	if err := a.store.Clear(); err != nil {
		fatal(err)
	}
	printSuccess("Wallet disconnected.")
}

func runWalletStatus(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	s, ok := a.connector.Session()
	if jsonOutput {
		printJSON(map[string]interface{}{
			"state":   a.connector.State(),
			"session": sessionOrNil(s, ok),
		})
		return
	}

	if !ok {
		color.Yellow("\nNo wallet connected. Run 'euclid-dex wallet connect' first.\n")
		return
	}

	fmt.Println()
	fmt.Printf("  State:        %s\n", color.GreenString(string(a.connector.State())))
	fmt.Printf("  Wallet:       %s\n", s.Kind)
	fmt.Printf("  Chain:        %s\n", s.ChainID)
	fmt.Printf("  Address:      %s\n", color.CyanString(s.Address))
	fmt.Printf("  Connected At: %s\n", s.ConnectedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Session File: %s\n\n", a.store.GetFilePath())
}

func sessionOrNil(s wallet.Session, ok bool) interface{} {
	if !ok {
		return nil
	}
	return s
}

func runWalletBalance(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	s, ok := a.connector.Session()
	if !ok {
		fatal(apperrors.ErrNotConnected)
	}

	var amount, denom string
	switch s.Kind {
	case wallet.KindEVM:
		stop := startSpinner(cmd, "Fetching balance...")
		wei, err := a.evm.Balance(ctx, s.Address)
		stop()
		if err != nil {
			fatal(err)
		}
		amount = decimal.NewFromBigInt(wei, -weiDecimals).String()
		denom = "ETH"

	default:
		chain, err := a.catalog.Chain(s.ChainID)
		if err != nil {
			fatal(err)
		}
		denom = "u" + chain.Bech32Prefix
		if len(args) > 0 {
			denom = args[0]
		}
		endpoint, err := a.restEndpoint(chain)
		if err != nil {
			fatal(err)
		}

		stop := startSpinner(cmd, "Fetching balance...")
		amount, err = cosmos.NewBankClient(endpoint).Balance(ctx, s.Address, denom)
		stop()
		if err != nil {
			fatal(err)
		}
	}

	if jsonOutput {
		printJSON(map[string]string{"address": s.Address, "denom": denom, "amount": amount})
		return
	}
	fmt.Printf("\n  %s %s\n\n", color.YellowString(amount), denom)
}
