package cmd

import (
	"context"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"euclid-dex/config"
	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/catalog"
	"euclid-dex/pkg/client"
	"euclid-dex/pkg/logger"
	"euclid-dex/pkg/session"
	"euclid-dex/pkg/types"
	"euclid-dex/pkg/wallet"
	"euclid-dex/pkg/wallet/cosmos"
	"euclid-dex/pkg/wallet/evm"
)

// app holds the dependencies one command invocation needs
type app struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	api       *client.Client
	connector *wallet.Connector
	store     *session.Storage
	keplr     *cosmos.Keplr
	evm       *evm.Provider
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	store, err := session.NewStorage(cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	cat := cfg.Catalog()
	keplr := cosmos.NewKeplr(cfg.Cosmos.Mnemonic, cat)
	provider := evm.NewProvider(cfg.EVM.RPCURL, cfg.EVM.PrivateKey)

	a := &app{
		cfg:     cfg,
		catalog: cat,
		api: client.NewClient(cfg.BaseURL,
			client.WithAPIKey(cfg.APIKey),
			client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
			client.WithLogger(logger.Log)),
		connector: wallet.NewConnector(logger.Log, keplr, provider),
		store:     store,
		keplr:     keplr,
		evm:       provider,
	}

	saved, ok, err := store.Load()
	if err != nil {
		return nil, err
	}
	if ok {
		a.connector.Restore(saved)
	}

	return a, nil
}

func (a *app) close() {
	a.evm.Close()
}

// connect runs the wallet connection and persists the session
func (a *app) connect(ctx context.Context, kind wallet.ChainKind, chainID string) (wallet.Session, error) {
	s, err := a.connector.Connect(ctx, kind, chainID)
	if err != nil {
		return wallet.Session{}, err
	}
	if err := a.store.Save(s); err != nil {
		return wallet.Session{}, err
	}
	return s, nil
}

// sender returns the address acting on chainID. An explicit override wins;
// otherwise the saved session is used when it is on chainID. A Cosmos
// session on another chain is replaced by a new connection; a session of
// another kind is never replaced implicitly.
func (a *app) sender(ctx context.Context, chainID, override string) (types.SenderRef, error) {
	if override != "" {
		return types.SenderRef{Address: override, ChainUID: chainID}, nil
	}

	if s, ok := a.connector.Session(); ok {
		if strings.EqualFold(s.ChainID, chainID) {
			return s.Sender(), nil
		}
		if s.Kind != wallet.KindCosmos {
			return types.SenderRef{}, errors.Wrapf(apperrors.ErrNotConnected,
				"a %s wallet is connected on %s; run 'euclid-dex wallet connect --chain %s' to replace it", s.Kind, s.ChainID, chainID)
		}
		color.Yellow("Switching wallet from %s to %s", s.ChainID, chainID)
	}

	s, err := a.connect(ctx, wallet.KindCosmos, chainID)
	if err != nil {
		return types.SenderRef{}, err
	}
	color.Green("Connected to %s. Address: %s", chainID, s.Address)
	return s.Sender(), nil
}

// restEndpoint picks the bank REST endpoint for a chain. The configured
// cosmos.rest_endpoint only serves the default chain.
func (a *app) restEndpoint(chain catalog.Chain) (string, error) {
	if chain.RESTEndpoint != "" {
		return chain.RESTEndpoint, nil
	}
	if strings.EqualFold(chain.ChainID, a.cfg.Cosmos.DefaultChain) && a.cfg.Cosmos.RESTEndpoint != "" {
		return a.cfg.Cosmos.RESTEndpoint, nil
	}
	return "", errors.Wrapf(apperrors.ErrUnknownChain,
		"no REST endpoint for chain %s; set rest_endpoint for it in the chains section", chain.ChainID)
}

// exitOnWalletError prints install instructions for a missing wallet, or the
// error itself, and exits.
func exitOnWalletError(err error) {
	if errors.Is(err, apperrors.ErrExtensionMissing) {
		color.Yellow("\n%s\n", strings.TrimSuffix(err.Error(), ": "+apperrors.ErrExtensionMissing.Error()))
		fatal(errors.New("no wallet connected"))
	}
	if errors.Is(err, apperrors.ErrUserRejected) {
		fatal(errors.Wrap(err, "failed to connect wallet, please try again"))
	}
	fatal(err)
}
