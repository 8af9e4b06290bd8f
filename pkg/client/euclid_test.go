package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/types"
)

type capturedRequest struct {
	method string
	path   string
	header http.Header
	body   map[string]interface{}
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest, *int32) {
	t.Helper()

	captured := &capturedRequest{}
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.header = r.Header.Clone()

		// handler runs off the test goroutine: assert, never require
		raw, err := io.ReadAll(r.Body)
		captured.body = map[string]interface{}{}
		if !assert.NoError(t, err) || !assert.NoError(t, json.Unmarshal(raw, &captured.body)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return server, captured, &calls
}

func testPairInfo() types.PairInfo {
	return types.PairInfo{
		Token1: types.NewSmartAsset("osmo", "osmo1router"),
		Token2: types.NewSmartAsset("atom", "osmo1router"),
	}
}

func TestAddLiquidity(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		server, captured, _ := newTestServer(t, http.StatusOK, `{"msgs":[{"contractAddress":"osmo1router"}]}`)
		c := NewClient(server.URL)

		resp, err := c.AddLiquidity(context.Background(), AddLiquidityParams{
			PairInfo:          testPairInfo(),
			Token1Liquidity:   "1000",
			Token2Liquidity:   "2000",
			SlippageTolerance: 5,
			SenderAddress:     "osmo1sender",
			ChainUID:          "osmosis",
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		var decoded map[string]interface{}
		require.NoError(t, resp.Decode(&decoded))
		require.Contains(t, decoded, "msgs")

		require.Equal(t, http.MethodPost, captured.method)
		require.Equal(t, "/execute/liquidity/add", captured.path)
		require.Equal(t, "application/json", captured.header.Get("Content-Type"))
		require.Equal(t, "application/json", captured.header.Get("Accept"))
		require.Empty(t, captured.header.Get("Authorization"))

		require.Equal(t, "1000", captured.body["token_1_liquidity"])
		require.Equal(t, "2000", captured.body["token_2_liquidity"])
		require.Equal(t, float64(5), captured.body["slippage_tolerance"])
		require.Equal(t, map[string]interface{}{"address": "osmo1sender", "chain_uid": "osmosis"}, captured.body["sender"])

		pair := captured.body["pair_info"].(map[string]interface{})
		token1 := pair["token_1"].(map[string]interface{})
		require.Equal(t, "osmo", token1["token"])
		require.Equal(t, map[string]interface{}{"smart": map[string]interface{}{"contract_address": "osmo1router"}}, token1["token_type"])
	})

	t.Run("slippage outside documented range is sent unchanged", func(t *testing.T) {
		for _, slippage := range []float64{0, 0.25, 150, -3} {
			server, captured, _ := newTestServer(t, http.StatusOK, `{}`)
			c := NewClient(server.URL)

			_, err := c.AddLiquidity(context.Background(), AddLiquidityParams{
				PairInfo:          testPairInfo(),
				Token1Liquidity:   "1",
				Token2Liquidity:   "1",
				SlippageTolerance: slippage,
				SenderAddress:     "osmo1sender",
				ChainUID:          "osmosis",
			})
			require.NoError(t, err)
			require.Equal(t, slippage, captured.body["slippage_tolerance"])
		}
	})

	t.Run("api key", func(t *testing.T) {
		server, captured, _ := newTestServer(t, http.StatusOK, `{}`)
		c := NewClient(server.URL, WithAPIKey("secret"))

		_, err := c.AddLiquidity(context.Background(), AddLiquidityParams{
			PairInfo:        testPairInfo(),
			Token1Liquidity: "1",
			Token2Liquidity: "1",
			SenderAddress:   "osmo1sender",
			ChainUID:        "osmosis",
		})
		require.NoError(t, err)
		require.Equal(t, "Bearer secret", captured.header.Get("Authorization"))
	})

	t.Run("missing sender", func(t *testing.T) {
		server, _, calls := newTestServer(t, http.StatusOK, `{}`)
		c := NewClient(server.URL)

		_, err := c.AddLiquidity(context.Background(), AddLiquidityParams{
			PairInfo:        testPairInfo(),
			Token1Liquidity: "1",
			Token2Liquidity: "1",
			ChainUID:        "osmosis",
		})
		require.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
		require.Contains(t, err.Error(), "SenderAddress")
		require.Zero(t, atomic.LoadInt32(calls))
	})
}

func TestRemoveLiquidity(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		server, captured, _ := newTestServer(t, http.StatusOK, `{"ok":true}`)
		c := NewClient(server.URL)

		_, err := c.RemoveLiquidity(context.Background(), RemoveLiquidityParams{
			Pair:          types.Pair{Token1: "osmo", Token2: "atom"},
			LPAllocation:  "500",
			SenderAddress: "osmo1sender",
			ChainUID:      "osmosis",
			VLPAddress:    "nibi1vlp",
		})
		require.NoError(t, err)

		require.Equal(t, "/execute/liquidity/remove", captured.path)
		require.Equal(t, []interface{}{}, captured.body["cross_chain_addresses"])
		require.Contains(t, captured.body, "timeout")
		require.Nil(t, captured.body["timeout"])
		require.Equal(t, "500", captured.body["lp_allocation"])
		require.Equal(t, "nibi1vlp", captured.body["vlp_address"])
		require.Equal(t, map[string]interface{}{"token_1": "osmo", "token_2": "atom"}, captured.body["pair"])
	})

	t.Run("timeout and cross chain addresses", func(t *testing.T) {
		server, captured, _ := newTestServer(t, http.StatusOK, `{}`)
		c := NewClient(server.URL)

		timeout := 60
		_, err := c.RemoveLiquidity(context.Background(), RemoveLiquidityParams{
			Pair:          types.Pair{Token1: "osmo", Token2: "atom"},
			LPAllocation:  "500",
			SenderAddress: "osmo1sender",
			ChainUID:      "osmosis",
			VLPAddress:    "nibi1vlp",
			Timeout:       &timeout,
			CrossChainAddresses: []types.CrossChainAddress{
				{User: types.SenderRef{Address: "nibi1user", ChainUID: "nibiru"}},
			},
		})
		require.NoError(t, err)
		require.Equal(t, float64(60), captured.body["timeout"])
		require.Len(t, captured.body["cross_chain_addresses"], 1)
	})
}

func TestSimulateSwap(t *testing.T) {
	t.Parallel()

	params := SimulateSwapParams{
		AmountIn:     "100",
		AssetIn:      "osmo",
		AssetOut:     "atom",
		Contract:     "osmo1router",
		MinAmountOut: "1",
		Swaps:        types.SwapPath{"osmo", "atom"},
	}

	t.Run("success", func(t *testing.T) {
		server, captured, _ := newTestServer(t, http.StatusOK, `{"amount_out":"98","estimated_gas":"250000","asset_out":"atom"}`)
		c := NewClient(server.URL)

		resp, err := c.SimulateSwap(context.Background(), params)
		require.NoError(t, err)
		require.Equal(t, "98", resp.AmountOut.String())
		require.Equal(t, "250000", resp.EstimatedGas.String())
		require.JSONEq(t, `{"amount_out":"98","estimated_gas":"250000","asset_out":"atom"}`, string(resp.Raw))

		require.Equal(t, "/simulate-swap", captured.path)
		require.Equal(t, "osmo1router", captured.body["contract"])
		require.Equal(t, []interface{}{"osmo", "atom"}, captured.body["swaps"])
	})

	t.Run("numeric fields", func(t *testing.T) {
		server, _, _ := newTestServer(t, http.StatusOK, `{"amount_out":98,"estimated_gas":250000}`)
		c := NewClient(server.URL)

		resp, err := c.SimulateSwap(context.Background(), params)
		require.NoError(t, err)
		require.Equal(t, "98", resp.AmountOut.String())
	})

	t.Run("unexpected shape", func(t *testing.T) {
		server, _, _ := newTestServer(t, http.StatusOK, `{"amount_out":{"nested":true}}`)
		c := NewClient(server.URL)

		_, err := c.SimulateSwap(context.Background(), params)
		require.Error(t, err)
	})

	t.Run("invalid asset ids are rejected before the request", func(t *testing.T) {
		server, _, calls := newTestServer(t, http.StatusOK, `{}`)
		c := NewClient(server.URL)

		for _, asset := range []string{"", " ", `{"token":"osmo"}`, "[osmo]"} {
			p := params
			p.AssetIn = asset

			_, err := c.SimulateSwap(context.Background(), p)
			require.Error(t, err)
			require.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
			require.Contains(t, err.Error(), "AssetIn")
		}

		p := params
		p.AssetOut = ""
		_, err := c.SimulateSwap(context.Background(), p)
		require.True(t, errors.Is(err, apperrors.ErrInvalidArgument))

		require.Zero(t, atomic.LoadInt32(calls))
	})
}

func TestSwap(t *testing.T) {
	t.Parallel()

	params := SwapParams{
		AmountIn:     "100",
		AssetIn:      types.NewSmartAsset("osmo", "osmo1router"),
		AssetOut:     "atom",
		MinAmountOut: "99",
		Sender:       types.SenderRef{Address: "osmo1sender", ChainUID: "osmosis"},
		Swaps:        types.SwapPath{"osmo", "atom"},
	}

	t.Run("success", func(t *testing.T) {
		server, captured, _ := newTestServer(t, http.StatusOK, `{"type":"wasm"}`)
		c := NewClient(server.URL)

		resp, err := c.Swap(context.Background(), params)
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"wasm"}`, string(resp.Body))

		require.Equal(t, "/execute/swap", captured.path)
		require.Equal(t, []interface{}{}, captured.body["cross_chain_addresses"])
		require.NotContains(t, captured.body, "partner_fee")
		require.NotContains(t, captured.body, "timeout")
	})

	t.Run("partner fee and timeout", func(t *testing.T) {
		server, captured, _ := newTestServer(t, http.StatusOK, `{}`)
		c := NewClient(server.URL)

		timeout := 120
		p := params
		p.PartnerFee = &types.PartnerFee{PartnerFeeBps: 30, Recipient: "osmo1partner"}
		p.Timeout = &timeout

		_, err := c.Swap(context.Background(), p)
		require.NoError(t, err)
		require.Equal(t, map[string]interface{}{"partner_fee_bps": float64(30), "recipient": "osmo1partner"}, captured.body["partner_fee"])
		require.Equal(t, float64(120), captured.body["timeout"])
	})

	t.Run("non-2xx includes status and body", func(t *testing.T) {
		server, _, _ := newTestServer(t, http.StatusBadRequest, `{"message":"insufficient funds"}`)
		c := NewClient(server.URL)

		_, err := c.Swap(context.Background(), params)
		require.Error(t, err)
		require.Contains(t, err.Error(), "400")
		require.Contains(t, err.Error(), "insufficient funds")
		require.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	})

	t.Run("raw error body", func(t *testing.T) {
		server, _, _ := newTestServer(t, http.StatusBadGateway, `upstream down`)
		c := NewClient(server.URL)

		_, err := c.Swap(context.Background(), params)
		require.Contains(t, err.Error(), "502")
		require.Contains(t, err.Error(), "upstream down")
	})

	t.Run("malformed success body", func(t *testing.T) {
		server, _, _ := newTestServer(t, http.StatusOK, `not json`)
		c := NewClient(server.URL)

		_, err := c.Swap(context.Background(), params)
		require.Error(t, err)
		require.Zero(t, apperrors.StatusCode(err))
	})
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	core, logs := observer.New(zap.ErrorLevel)
	c := NewClient(url, WithLogger(zap.New(core)))

	_, err := c.Swap(context.Background(), SwapParams{
		AmountIn:     "1",
		AssetIn:      types.NewSmartAsset("osmo", "osmo1router"),
		AssetOut:     "atom",
		MinAmountOut: "1",
		Sender:       types.SenderRef{Address: "osmo1sender", ChainUID: "osmosis"},
		Swaps:        types.SwapPath{"osmo", "atom"},
	})
	require.Error(t, err)
	require.Zero(t, apperrors.StatusCode(err))
	require.Equal(t, 1, logs.FilterMessage("api request failed").Len())
}

func TestRequestsAreDeterministic(t *testing.T) {
	t.Parallel()

	timeout := 90
	swap := SwapParams{
		AmountIn:     "100",
		AssetIn:      types.NewSmartAsset("osmo", "osmo1router"),
		AssetOut:     "atom",
		MinAmountOut: "99",
		Sender:       types.SenderRef{Address: "osmo1sender", ChainUID: "osmosis"},
		Swaps:        types.SwapPath{"osmo", "atom"},
		PartnerFee:   &types.PartnerFee{PartnerFeeBps: 10, Recipient: "osmo1partner"},
		Timeout:      &timeout,
	}
	add := AddLiquidityParams{
		PairInfo:          testPairInfo(),
		Token1Liquidity:   "1",
		Token2Liquidity:   "2",
		SlippageTolerance: 0.5,
		SenderAddress:     "osmo1sender",
		ChainUID:          "osmosis",
	}
	remove := RemoveLiquidityParams{
		Pair:          types.Pair{Token1: "osmo", Token2: "atom"},
		LPAllocation:  "5",
		SenderAddress: "osmo1sender",
		ChainUID:      "osmosis",
		VLPAddress:    "nibi1vlp",
	}

	builders := map[string]func() interface{}{
		"swap":     func() interface{} { return NewSwapRequest(swap) },
		"simulate": func() interface{} { return NewSimulateSwapRequest(SimulateSwapParams{AmountIn: "1", AssetIn: "osmo", AssetOut: "atom", Contract: "c", MinAmountOut: "1", Swaps: types.SwapPath{"osmo", "atom"}}) },
		"add":      func() interface{} { return NewAddLiquidityRequest(add) },
		"remove":   func() interface{} { return NewRemoveLiquidityRequest(remove) },
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			first, err := json.Marshal(build())
			require.NoError(t, err)
			second, err := json.Marshal(build())
			require.NoError(t, err)
			require.Equal(t, string(first), string(second))
		})
	}

	t.Run("built request does not alias params", func(t *testing.T) {
		req := NewSwapRequest(swap)
		req.Swaps[0] = "mutated"
		*req.Timeout = 1
		req.PartnerFee.PartnerFeeBps = 99

		again, err := json.Marshal(NewSwapRequest(swap))
		require.NoError(t, err)
		require.Contains(t, string(again), `"swaps":["osmo","atom"]`)
		require.Contains(t, string(again), `"timeout":90`)
		require.Contains(t, string(again), `"partner_fee_bps":10`)
	})
}
