package cosmos

import (
	"context"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"

	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/catalog"
	"euclid-dex/pkg/wallet"
)

// Cosmos SDK default HD path m/44'/118'/0'/0/0
var hdPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 118,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

// Keplr is a Keplr-style extension backed by a BIP-39 mnemonic. A chain must
// be enabled before its offline signer can be used.
type Keplr struct {
	mnemonic string
	catalog  *catalog.Catalog

	mu      sync.Mutex
	enabled map[string]catalog.Chain
}

// NewKeplr creates the extension. An empty mnemonic means the extension is
// not installed.
func NewKeplr(mnemonic string, cat *catalog.Catalog) *Keplr {
	return &Keplr{
		mnemonic: strings.Join(strings.Fields(mnemonic), " "),
		catalog:  cat,
		enabled:  make(map[string]catalog.Chain),
	}
}

func (k *Keplr) Kind() wallet.ChainKind {
	return wallet.KindCosmos
}

func (k *Keplr) Installed() bool {
	return k.mnemonic != ""
}

func (k *Keplr) InstallHint() string {
	return "Please install the Keplr extension: set EUCLID_DEX_COSMOS_MNEMONIC or cosmos.mnemonic in .euclid-dex.yaml"
}

// Enable authorizes chainID. Chains missing from the catalog are refused.
func (k *Keplr) Enable(_ context.Context, chainID string) error {
	chain, err := k.catalog.Chain(chainID)
	if err != nil {
		return err
	}
	if !bip39.IsMnemonicValid(k.mnemonic) {
		return errors.Wrap(apperrors.ErrUserRejected, "mnemonic is not a valid BIP-39 phrase")
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.enabled[strings.ToLower(chainID)] = chain
	return nil
}

// OfflineSigner returns the signer of an enabled chain
func (k *Keplr) OfflineSigner(chainID string) (*OfflineSigner, error) {
	k.mu.Lock()
	chain, ok := k.enabled[strings.ToLower(chainID)]
	k.mu.Unlock()
	if !ok {
		return nil, errors.Errorf("chain %s is not enabled", chainID)
	}

	return &OfflineSigner{prefix: chain.Bech32Prefix, seed: bip39.NewSeed(k.mnemonic, "")}, nil
}

// Accounts lists the accounts of an enabled chain
func (k *Keplr) Accounts(_ context.Context, chainID string) ([]wallet.Account, error) {
	signer, err := k.OfflineSigner(chainID)
	if err != nil {
		return nil, err
	}
	return signer.Accounts()
}

// OfflineSigner derives addresses for one chain prefix
type OfflineSigner struct {
	prefix string
	seed   []byte
}

// Accounts returns the account at the default HD path
func (s *OfflineSigner) Accounts() ([]wallet.Account, error) {
	address, err := deriveAddress(s.seed, s.prefix)
	if err != nil {
		return nil, err
	}
	return []wallet.Account{{Address: address}}, nil
}

func deriveAddress(seed []byte, prefix string) (string, error) {
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", errors.Wrap(err, "hdkeychain.NewMaster")
	}

	for _, index := range hdPath {
		key, err = key.Derive(index)
		if err != nil {
			return "", errors.Wrap(err, "key.Derive")
		}
	}

	pub, err := key.ECPubKey()
	if err != nil {
		return "", errors.Wrap(err, "key.ECPubKey")
	}

	address, err := bech32.EncodeFromBase256(prefix, btcutil.Hash160(pub.SerializeCompressed()))
	if err != nil {
		return "", errors.Wrap(err, "bech32.EncodeFromBase256")
	}
	return address, nil
}
