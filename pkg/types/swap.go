package types

import "encoding/json"

// SwapIntent is what a user typed on the command line
type SwapIntent struct {
	Amount      string
	SourceToken string
	DestToken   string
}

// SwapPath is the ordered list of tokens a trade routes through
type SwapPath []string

// AssetRef identifies a token held by a smart contract
type AssetRef struct {
	Token     string    `json:"token" validate:"required"`
	TokenType TokenType `json:"token_type"`
}

// TokenType describes where the token lives
type TokenType struct {
	Smart SmartToken `json:"smart"`
}

// SmartToken points at the contract holding the token
type SmartToken struct {
	ContractAddress string `json:"contract_address"`
}

// NewSmartAsset builds an AssetRef for a contract-held token
func NewSmartAsset(token, contractAddress string) AssetRef {
	return AssetRef{
		Token:     token,
		TokenType: TokenType{Smart: SmartToken{ContractAddress: contractAddress}},
	}
}

// SenderRef is the wallet address and chain acting in a request
type SenderRef struct {
	Address  string `json:"address" validate:"required"`
	ChainUID string `json:"chain_uid" validate:"required"`
}

// CrossChainAddress names a destination for released assets on another chain
type CrossChainAddress struct {
	User  SenderRef `json:"user"`
	Limit *Limit    `json:"limit,omitempty"`
}

// Limit caps the amount released to a cross-chain address
type Limit struct {
	LessThanOrEqual string `json:"less_than_or_equal"`
}

// PartnerFee routes a share of the swap to a partner
type PartnerFee struct {
	PartnerFeeBps int    `json:"partner_fee_bps"`
	Recipient     string `json:"recipient"`
}

// SwapRequest is the wire body of POST /execute/swap
type SwapRequest struct {
	AmountIn            string              `json:"amount_in"`
	AssetIn             AssetRef            `json:"asset_in"`
	AssetOut            string              `json:"asset_out"`
	CrossChainAddresses []CrossChainAddress `json:"cross_chain_addresses"`
	MinAmountOut        string              `json:"min_amount_out"`
	PartnerFee          *PartnerFee         `json:"partner_fee,omitempty"`
	Sender              SenderRef           `json:"sender"`
	Swaps               SwapPath            `json:"swaps"`
	Timeout             *int                `json:"timeout,omitempty"`
}

// SimulateSwapRequest is the wire body of POST /simulate-swap
type SimulateSwapRequest struct {
	AmountIn     string   `json:"amount_in"`
	AssetIn      string   `json:"asset_in"`
	AssetOut     string   `json:"asset_out"`
	Contract     string   `json:"contract"`
	MinAmountOut string   `json:"min_amount_out"`
	Swaps        SwapPath `json:"swaps"`
}

// SimulateSwapResponse holds the fields of a simulation the CLI displays.
// Raw keeps the full body.
type SimulateSwapResponse struct {
	AmountOut    json.Number     `json:"amount_out"`
	EstimatedGas json.Number     `json:"estimated_gas"`
	Raw          json.RawMessage `json:"-"`
}

// Response is a parsed JSON body returned by the API
type Response struct {
	Body json.RawMessage
}

// Decode unmarshals the body into v
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// String returns the body as indented JSON when possible
func (r *Response) String() string {
	out, err := json.MarshalIndent(r.Body, "", "  ")
	if err != nil {
		return string(r.Body)
	}
	return string(out)
}
