package client

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"euclid-dex/pkg/types"
)

// tokenIDPattern matches token identifiers such as "osmo", "usdc.axl" or
// "factory/osmo1.../uion".
var tokenIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:/-]*$`)

// AddLiquidityParams holds the inputs of AddLiquidity. SlippageTolerance is a
// percentage and is sent as given.
type AddLiquidityParams struct {
	PairInfo          types.PairInfo
	Token1Liquidity   string `validate:"required"`
	Token2Liquidity   string `validate:"required"`
	SlippageTolerance float64
	SenderAddress     string `validate:"required"`
	ChainUID          string `validate:"required"`
}

// RemoveLiquidityParams holds the inputs of RemoveLiquidity. Timeout is in
// seconds; the service accepts 30 to 240.
type RemoveLiquidityParams struct {
	Pair                types.Pair
	LPAllocation        string `validate:"required"`
	SenderAddress       string `validate:"required"`
	ChainUID            string `validate:"required"`
	VLPAddress          string `validate:"required"`
	CrossChainAddresses []types.CrossChainAddress
	Timeout             *int
}

// SimulateSwapParams holds the inputs of SimulateSwap
type SimulateSwapParams struct {
	AmountIn     string         `validate:"required"`
	AssetIn      string         `validate:"tokenid"`
	AssetOut     string         `validate:"tokenid"`
	Contract     string         `validate:"required"`
	MinAmountOut string         `validate:"required"`
	Swaps        types.SwapPath `validate:"required,dive,tokenid"`
}

// SwapParams holds the inputs of Swap
type SwapParams struct {
	AmountIn            string `validate:"required"`
	AssetIn             types.AssetRef
	AssetOut            string `validate:"tokenid"`
	MinAmountOut        string `validate:"required"`
	Sender              types.SenderRef
	Swaps               types.SwapPath `validate:"required,dive,tokenid"`
	CrossChainAddresses []types.CrossChainAddress
	PartnerFee          *types.PartnerFee
	Timeout             *int
}

// NewAddLiquidityRequest builds the wire body for AddLiquidity
func NewAddLiquidityRequest(p AddLiquidityParams) types.AddLiquidityRequest {
	return types.AddLiquidityRequest{
		PairInfo: p.PairInfo,
		Sender: types.SenderRef{
			Address:  p.SenderAddress,
			ChainUID: p.ChainUID,
		},
		SlippageTolerance: p.SlippageTolerance,
		Token1Liquidity:   p.Token1Liquidity,
		Token2Liquidity:   p.Token2Liquidity,
	}
}

// NewRemoveLiquidityRequest builds the wire body for RemoveLiquidity
func NewRemoveLiquidityRequest(p RemoveLiquidityParams) types.RemoveLiquidityRequest {
	return types.RemoveLiquidityRequest{
		CrossChainAddresses: crossChain(p.CrossChainAddresses),
		LPAllocation:        p.LPAllocation,
		Pair:                p.Pair,
		Sender: types.SenderRef{
			Address:  p.SenderAddress,
			ChainUID: p.ChainUID,
		},
		Timeout:    copyInt(p.Timeout),
		VLPAddress: p.VLPAddress,
	}
}

// NewSimulateSwapRequest builds the wire body for SimulateSwap
func NewSimulateSwapRequest(p SimulateSwapParams) types.SimulateSwapRequest {
	return types.SimulateSwapRequest{
		AmountIn:     p.AmountIn,
		AssetIn:      p.AssetIn,
		AssetOut:     p.AssetOut,
		Contract:     p.Contract,
		MinAmountOut: p.MinAmountOut,
		Swaps:        copyPath(p.Swaps),
	}
}

// NewSwapRequest builds the wire body for Swap
func NewSwapRequest(p SwapParams) types.SwapRequest {
	var fee *types.PartnerFee
	if p.PartnerFee != nil {
		f := *p.PartnerFee
		fee = &f
	}

	return types.SwapRequest{
		AmountIn:            p.AmountIn,
		AssetIn:             p.AssetIn,
		AssetOut:            p.AssetOut,
		CrossChainAddresses: crossChain(p.CrossChainAddresses),
		MinAmountOut:        p.MinAmountOut,
		PartnerFee:          fee,
		Sender:              p.Sender,
		Swaps:               copyPath(p.Swaps),
		Timeout:             copyInt(p.Timeout),
	}
}

func crossChain(in []types.CrossChainAddress) []types.CrossChainAddress {
	out := make([]types.CrossChainAddress, len(in))
	copy(out, in)
	return out
}

func copyPath(in types.SwapPath) types.SwapPath {
	if in == nil {
		return nil
	}
	out := make(types.SwapPath, len(in))
	copy(out, in)
	return out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("tokenid", func(fl validator.FieldLevel) bool {
		return tokenIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// describeValidation turns validator errors into a single readable line
func describeValidation(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "tokenid":
			msgs = append(msgs, fmt.Sprintf("%s must be a token identifier string, got %q", field, fmt.Sprint(e.Value())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
