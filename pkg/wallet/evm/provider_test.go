package evm

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/wallet"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newRPCServer answers JSON-RPC calls from a method -> result/error table
func newRPCServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		result, ok := results[req.Method]
		if !ok {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"error":{"code":-32601,"message":"method not found"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,` + result + `}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProviderRequestAccounts(t *testing.T) {
	t.Parallel()

	server := newRPCServer(t, map[string]string{
		"eth_chainId":         `"result":"0xaa36a7"`,
		"eth_requestAccounts": `"result":["0x52908400098527886e0f7030069857d2e4169ee7"]`,
		"eth_getBalance":      `"result":"0xde0b6b3a7640000"`,
	})

	p := NewProvider(server.URL, "")
	defer p.Close()
	require.True(t, p.Installed())

	require.NoError(t, p.Enable(context.Background(), "11155111"))

	accounts, err := p.Accounts(context.Background(), "11155111")
	require.NoError(t, err)
	require.Equal(t, []wallet.Account{{Address: "0x52908400098527886E0F7030069857D2E4169EE7"}}, accounts)

	balance, err := p.Balance(context.Background(), accounts[0].Address)
	require.NoError(t, err)
	require.Equal(t, "1000000000000000000", balance.String())
}

func TestProviderWrongChain(t *testing.T) {
	t.Parallel()

	server := newRPCServer(t, map[string]string{
		"eth_chainId": `"result":"0x1"`,
	})

	p := NewProvider(server.URL, "")
	defer p.Close()

	err := p.Enable(context.Background(), "0xaa36a7")
	require.True(t, errors.Is(err, apperrors.ErrUnknownChain))
}

func TestProviderUserRejected(t *testing.T) {
	t.Parallel()

	server := newRPCServer(t, map[string]string{
		"eth_requestAccounts": `"error":{"code":4001,"message":"User rejected the request."}`,
	})

	p := NewProvider(server.URL, "")
	defer p.Close()

	err := p.Enable(context.Background(), "")
	require.True(t, errors.Is(err, apperrors.ErrUserRejected))

	_, err = p.Accounts(context.Background(), "")
	require.Error(t, err)
}

func TestProviderPrivateKey(t *testing.T) {
	t.Parallel()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey).Hex()

	p := NewProvider("", "0x"+hex.EncodeToString(crypto.FromECDSA(key)))
	require.True(t, p.Installed())
	require.NoError(t, p.Enable(context.Background(), "1"))

	accounts, err := p.Accounts(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, want, accounts[0].Address)

	_, err = p.Balance(context.Background(), want)
	require.True(t, errors.Is(err, apperrors.ErrExtensionMissing))

	require.Error(t, NewProvider("", "zz").Enable(context.Background(), "1"))
}

func TestProviderNotInstalled(t *testing.T) {
	t.Parallel()

	c := wallet.NewConnector(nil, NewProvider("", ""))
	_, err := c.Connect(context.Background(), wallet.KindEVM, "1")
	require.True(t, errors.Is(err, apperrors.ErrExtensionMissing))
	require.Contains(t, err.Error(), "Please install MetaMask")
	require.Equal(t, wallet.StateDisconnected, c.State())
}
