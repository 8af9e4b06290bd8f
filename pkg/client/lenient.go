package client

import (
	"context"

	"go.uber.org/zap"

	"euclid-dex/pkg/types"
)

// Lenient wraps an API and turns every failure into a logged nil result.
// Callers check for nil instead of handling errors.
type Lenient struct {
	api API
	log *zap.Logger
}

// NewLenient creates a Lenient adapter over api
func NewLenient(api API, log *zap.Logger) *Lenient {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lenient{api: api, log: log}
}

// AddLiquidity returns nil when the call fails
func (l *Lenient) AddLiquidity(ctx context.Context, p AddLiquidityParams) *types.Response {
	resp, err := l.api.AddLiquidity(ctx, p)
	if err != nil {
		l.log.Error("error adding liquidity", zap.Error(err))
		return nil
	}
	return resp
}

// RemoveLiquidity returns nil when the call fails
func (l *Lenient) RemoveLiquidity(ctx context.Context, p RemoveLiquidityParams) *types.Response {
	resp, err := l.api.RemoveLiquidity(ctx, p)
	if err != nil {
		l.log.Error("error removing liquidity", zap.Error(err))
		return nil
	}
	return resp
}

// SimulateSwap returns nil when the call fails
func (l *Lenient) SimulateSwap(ctx context.Context, p SimulateSwapParams) *types.SimulateSwapResponse {
	resp, err := l.api.SimulateSwap(ctx, p)
	if err != nil {
		l.log.Error("error simulating swap", zap.Error(err))
		return nil
	}
	return resp
}

// Swap returns nil when the call fails
func (l *Lenient) Swap(ctx context.Context, p SwapParams) *types.Response {
	resp, err := l.api.Swap(ctx, p)
	if err != nil {
		l.log.Error("error executing swap", zap.Error(err))
		return nil
	}
	return resp
}
