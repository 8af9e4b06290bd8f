package catalog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"euclid-dex/pkg/apperrors"
)

func TestChainForToken(t *testing.T) {
	t.Parallel()

	c := New(nil)

	tests := []struct {
		token   string
		chainID string
	}{
		{token: "OSMO", chainID: "osmosis"},
		{token: "atom", chainID: "osmosis"},
		{token: "UST", chainID: "nibiru"},
		{token: "VCOIN", chainID: "vsl"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			chain, err := c.ChainForToken(tt.token)
			require.NoError(t, err)
			require.Equal(t, tt.chainID, chain.ChainID)
		})
	}

	t.Run("unknown token", func(t *testing.T) {
		_, err := c.ChainForToken("DOGE")
		require.Error(t, err)
		require.True(t, errors.Is(err, apperrors.ErrUnknownToken))
		require.Contains(t, err.Error(), "DOGE")
	})
}

func TestChainLookup(t *testing.T) {
	t.Parallel()

	c := New([]Chain{{ChainID: "local", Bech32Prefix: "loc", Tokens: []string{"LOC"}}})

	chain, err := c.Chain("LOCAL")
	require.NoError(t, err)
	require.Equal(t, "loc", chain.Bech32Prefix)

	_, err = c.Chain("osmosis")
	require.True(t, errors.Is(err, apperrors.ErrUnknownChain))
}

func TestTokensSorted(t *testing.T) {
	t.Parallel()

	tokens := New(nil).Tokens()
	require.Len(t, tokens, 10)
	require.Equal(t, "CORE", tokens[0].Symbol)
	require.Equal(t, "coreum", tokens[0].Chain.ChainID)
	require.Equal(t, "VSL", tokens[len(tokens)-1].Symbol)
}
