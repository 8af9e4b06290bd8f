package types

// PairInfo describes both sides of a pool when adding liquidity
type PairInfo struct {
	Token1 AssetRef `json:"token_1"`
	Token2 AssetRef `json:"token_2"`
}

// Pair names a pool by its token ids
type Pair struct {
	Token1 string `json:"token_1"`
	Token2 string `json:"token_2"`
}

// AddLiquidityRequest is the wire body of POST /execute/liquidity/add
type AddLiquidityRequest struct {
	PairInfo          PairInfo  `json:"pair_info"`
	Sender            SenderRef `json:"sender"`
	SlippageTolerance float64   `json:"slippage_tolerance"`
	Token1Liquidity   string    `json:"token_1_liquidity"`
	Token2Liquidity   string    `json:"token_2_liquidity"`
}

// RemoveLiquidityRequest is the wire body of POST /execute/liquidity/remove.
// Timeout is serialized as null when unset.
type RemoveLiquidityRequest struct {
	CrossChainAddresses []CrossChainAddress `json:"cross_chain_addresses"`
	LPAllocation        string              `json:"lp_allocation"`
	Pair                Pair                `json:"pair"`
	Sender              SenderRef           `json:"sender"`
	Timeout             *int                `json:"timeout"`
	VLPAddress          string              `json:"vlp_address"`
}
