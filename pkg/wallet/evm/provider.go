package evm

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/wallet"
)

// EIP-1193 error code for a request the user declined
const userRejectedCode = 4001

// Provider is an injected-provider style extension. Accounts come from the
// configured private key when present, otherwise from eth_requestAccounts on
// the JSON-RPC endpoint.
type Provider struct {
	rpcURL     string
	privateKey string

	mu       sync.Mutex
	client   *rpc.Client
	accounts []wallet.Account
}

// NewProvider creates the extension. With neither an RPC URL nor a private key
// the extension is not installed.
func NewProvider(rpcURL, privateKey string) *Provider {
	return &Provider{
		rpcURL:     strings.TrimSpace(rpcURL),
		privateKey: strings.TrimSpace(privateKey),
	}
}

func (p *Provider) Kind() wallet.ChainKind {
	return wallet.KindEVM
}

func (p *Provider) Installed() bool {
	return p.rpcURL != "" || p.privateKey != ""
}

func (p *Provider) InstallHint() string {
	return "Please install MetaMask: set EUCLID_DEX_EVM_RPC_URL or EUCLID_DEX_EVM_PRIVATE_KEY"
}

// Enable requests account access for chainID
func (p *Provider) Enable(ctx context.Context, chainID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.privateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(p.privateKey, "0x"))
		if err != nil {
			return errors.Wrap(err, "invalid private key")
		}
		p.accounts = []wallet.Account{{Address: crypto.PubkeyToAddress(key.PublicKey).Hex()}}
		return nil
	}

	client, err := p.dial(ctx)
	if err != nil {
		return err
	}

	if chainID != "" {
		if err := checkChainID(ctx, client, chainID); err != nil {
			return err
		}
	}

	var addresses []string
	if err := client.CallContext(ctx, &addresses, "eth_requestAccounts"); err != nil {
		return mapRPCError(err, "eth_requestAccounts")
	}

	accounts := make([]wallet.Account, 0, len(addresses))
	for _, addr := range addresses {
		if !common.IsHexAddress(addr) {
			return errors.Errorf("provider returned invalid address %q", addr)
		}
		accounts = append(accounts, wallet.Account{Address: common.HexToAddress(addr).Hex()})
	}
	p.accounts = accounts
	return nil
}

// Accounts returns the accounts granted by Enable
func (p *Provider) Accounts(_ context.Context, _ string) ([]wallet.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accounts == nil {
		return nil, errors.New("provider is not enabled")
	}
	out := make([]wallet.Account, len(p.accounts))
	copy(out, p.accounts)
	return out, nil
}

// Balance returns the native balance of address in wei
func (p *Provider) Balance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "invalid address %s", address)
	}

	p.mu.Lock()
	client, err := p.dial(ctx)
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}

	balance, err := ethclient.NewClient(client).BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, errors.Wrap(err, "BalanceAt")
	}
	return balance, nil
}

// Close releases the RPC connection
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
}

// dial must be called with p.mu held
func (p *Provider) dial(ctx context.Context) (*rpc.Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	if p.rpcURL == "" {
		return nil, errors.Wrap(apperrors.ErrExtensionMissing, "no EVM RPC endpoint configured")
	}

	client, err := rpc.DialContext(ctx, p.rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "rpc.DialContext")
	}
	p.client = client
	return client, nil
}

func checkChainID(ctx context.Context, client *rpc.Client, want string) error {
	wanted, ok := parseChainID(want)
	if !ok {
		return errors.Wrapf(apperrors.ErrUnknownChain, "chain id %q is not numeric", want)
	}

	var got hexutil.Big
	if err := client.CallContext(ctx, &got, "eth_chainId"); err != nil {
		return mapRPCError(err, "eth_chainId")
	}
	if got.ToInt().Cmp(wanted) != 0 {
		return errors.Wrapf(apperrors.ErrUnknownChain, "provider is on chain %s, want %s", got.ToInt(), wanted)
	}
	return nil
}

func parseChainID(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return new(big.Int).SetString(s[2:], 16)
	}
	return new(big.Int).SetString(s, 10)
}

func mapRPCError(err error, method string) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return errors.Wrap(apperrors.ErrUserRejected, rpcErr.Error())
	}
	return errors.Wrap(err, method)
}
