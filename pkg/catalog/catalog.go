package catalog

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"euclid-dex/pkg/apperrors"
)

// Chain is a network the DEX can route through
type Chain struct {
	ChainID      string   `mapstructure:"chain_id" json:"chain_id"`
	Name         string   `mapstructure:"name" json:"name"`
	Bech32Prefix string   `mapstructure:"prefix" json:"prefix"`
	Contract     string   `mapstructure:"contract" json:"contract"`
	RESTEndpoint string   `mapstructure:"rest_endpoint" json:"rest_endpoint,omitempty"`
	Tokens       []string `mapstructure:"tokens" json:"tokens"`
}

// Token pairs a token id with the chain that lists it
type Token struct {
	Symbol string
	Chain  Chain
}

// Catalog resolves tokens to chains. Chains keep their declared order;
// the first chain listing a token wins.
type Catalog struct {
	chains []Chain
}

// DefaultChains are the testnet chains the Euclid router is deployed on
func DefaultChains() []Chain {
	return []Chain{
		{ChainID: "osmosis", Name: "Osmosis", Bech32Prefix: "osmo", Contract: "osmo18gghjrgcp8gh0m2r796rku50385usc65euf3lqv8hs57mkx7guhqlrcx6d", Tokens: []string{"OSMO", "ATOM", "JUNO"}},
		{ChainID: "nibiru", Name: "Nibiru", Bech32Prefix: "nibi", Contract: "nibi1rwrwsyny3ew703ru0k2tgscwktrqsw9kyg5ykaydrxy0fq7gz6ksuyqfnm", Tokens: []string{"NIB", "UST"}},
		{ChainID: "neutron", Name: "Neutron", Bech32Prefix: "neutron", Contract: "neutron1cpwa5pagnych4a42wj80k06wv7p3n39kzffdc8vczta3g0g0ee2spj5n3j", Tokens: []string{"NTRN"}},
		{ChainID: "coreum", Name: "Coreum", Bech32Prefix: "core", Contract: "testcore18x9pxj50r39hsakzaanq2vq8xmdgxmwg5qr4ku34elwuqvexhv6s7l873c", Tokens: []string{"CORE"}},
		{ChainID: "stargaze", Name: "Stargaze", Bech32Prefix: "stars", Contract: "stars193jxyq40le6dpzs49ejfjh4my4yuule502fzmwycfn8ls30rlkjq9z6mxk", Tokens: []string{"STARS"}},
		{ChainID: "vsl", Name: "VSL", Bech32Prefix: "vsl", Contract: "nibi1hevc4apgvjwrvmxud483nmd4ayfffear8hpjd9arm0mzr9rsa9sq40j2rl", Tokens: []string{"VSL", "VCOIN"}},
	}
}

// New creates a catalog. An empty list falls back to DefaultChains.
func New(chains []Chain) *Catalog {
	if len(chains) == 0 {
		chains = DefaultChains()
	}
	return &Catalog{chains: chains}
}

// Chains returns every chain in declared order
func (c *Catalog) Chains() []Chain {
	out := make([]Chain, len(c.chains))
	copy(out, c.chains)
	return out
}

// Chain looks a chain up by id, case-insensitively
func (c *Catalog) Chain(chainID string) (Chain, error) {
	for _, chain := range c.chains {
		if strings.EqualFold(chain.ChainID, chainID) {
			return chain, nil
		}
	}
	return Chain{}, errors.Wrapf(apperrors.ErrUnknownChain, "chain %q", chainID)
}

// ChainForToken returns the first chain that lists token
func (c *Catalog) ChainForToken(token string) (Chain, error) {
	for _, chain := range c.chains {
		for _, t := range chain.Tokens {
			if strings.EqualFold(t, token) {
				return chain, nil
			}
		}
	}
	return Chain{}, errors.Wrapf(apperrors.ErrUnknownToken, "token %s is not associated with any chain", token)
}

// Tokens lists every token, sorted by chain id then symbol
func (c *Catalog) Tokens() []Token {
	var tokens []Token
	for _, chain := range c.chains {
		for _, t := range chain.Tokens {
			tokens = append(tokens, Token{Symbol: t, Chain: chain})
		}
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Chain.ChainID != tokens[j].Chain.ChainID {
			return tokens[i].Chain.ChainID < tokens[j].Chain.ChainID
		}
		return tokens[i].Symbol < tokens[j].Symbol
	})
	return tokens
}
