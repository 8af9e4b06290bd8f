package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/types"
)

const (
	DefaultBaseURL = "https://testnet.api.euclidprotocol.com/api/v1"

	addLiquidityPath    = "/execute/liquidity/add"
	removeLiquidityPath = "/execute/liquidity/remove"
	simulateSwapPath    = "/simulate-swap"
	swapPath            = "/execute/swap"
)

// API is the set of calls the CLI makes against the swap service
type API interface {
	AddLiquidity(ctx context.Context, p AddLiquidityParams) (*types.Response, error)
	RemoveLiquidity(ctx context.Context, p RemoveLiquidityParams) (*types.Response, error)
	SimulateSwap(ctx context.Context, p SimulateSwapParams) (*types.SimulateSwapResponse, error)
	Swap(ctx context.Context, p SwapParams) (*types.Response, error)
}

// Option configures a Client
type Option func(*Client)

// WithAPIKey sends the key as a bearer token on every request
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client talks to the Euclid swap and liquidity API
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	log      *zap.Logger
	validate *validator.Validate
}

// NewClient creates a new API client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      zap.NewNop(),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddLiquidity submits a liquidity deposit for a pair
func (c *Client) AddLiquidity(ctx context.Context, p AddLiquidityParams) (*types.Response, error) {
	if err := c.check(p); err != nil {
		return nil, err
	}

	body, err := c.post(ctx, addLiquidityPath, NewAddLiquidityRequest(p))
	if err != nil {
		return nil, errors.Wrap(err, "add liquidity")
	}
	return &types.Response{Body: body}, nil
}

// RemoveLiquidity withdraws an LP allocation from a pool
func (c *Client) RemoveLiquidity(ctx context.Context, p RemoveLiquidityParams) (*types.Response, error) {
	if err := c.check(p); err != nil {
		return nil, err
	}

	body, err := c.post(ctx, removeLiquidityPath, NewRemoveLiquidityRequest(p))
	if err != nil {
		return nil, errors.Wrap(err, "remove liquidity")
	}
	return &types.Response{Body: body}, nil
}

// SimulateSwap asks the router how much a swap would return. Asset ids are
// checked before anything is sent.
func (c *Client) SimulateSwap(ctx context.Context, p SimulateSwapParams) (*types.SimulateSwapResponse, error) {
	if err := c.check(p); err != nil {
		return nil, err
	}

	body, err := c.post(ctx, simulateSwapPath, NewSimulateSwapRequest(p))
	if err != nil {
		return nil, errors.Wrap(err, "simulate swap")
	}

	var out types.SimulateSwapResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.Error("unexpected simulate swap response", zap.ByteString("body", body), zap.Error(err))
		return nil, errors.Wrap(err, "decode simulate swap response")
	}
	out.Raw = body
	return &out, nil
}

// Swap executes a swap on behalf of the sender
func (c *Client) Swap(ctx context.Context, p SwapParams) (*types.Response, error) {
	if err := c.check(p); err != nil {
		return nil, err
	}

	body, err := c.post(ctx, swapPath, NewSwapRequest(p))
	if err != nil {
		return nil, errors.Wrap(err, "execute swap")
	}
	return &types.Response{Body: body}, nil
}

func (c *Client) check(p interface{}) error {
	if err := c.validate.Struct(p); err != nil {
		return errors.Wrap(apperrors.ErrInvalidArgument, describeValidation(err))
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "json.Marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "http.NewRequestWithContext")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.Debug("api request", zap.String("endpoint", path), zap.ByteString("payload", data))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api request failed", zap.String("endpoint", path), zap.Error(err))
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("failed to read api response", zap.String("endpoint", path), zap.Error(err))
		return nil, errors.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apperrors.APIError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       errorMessage(body),
		}
		c.log.Error("api request failed",
			zap.String("endpoint", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, apiErr
	}

	if !json.Valid(body) {
		c.log.Error("api returned malformed json", zap.String("endpoint", path), zap.ByteString("body", body))
		return nil, errors.Errorf("malformed JSON response from %s", path)
	}

	c.log.Debug("api response", zap.String("endpoint", path), zap.ByteString("body", body))
	return body, nil
}

// errorMessage extracts a readable message from an error body. The API
// answers with {"message": ...} or {"errors": ...}; anything else is kept raw.
func errorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var errorResp map[string]interface{}
	if err := json.Unmarshal(body, &errorResp); err == nil {
		if message, ok := errorResp["message"].(string); ok && message != "" {
			return message
		}
		if errs, ok := errorResp["errors"]; ok {
			if b, err := json.Marshal(errs); err == nil {
				return string(b)
			}
		}
	}
	return strings.TrimSpace(string(body))
}
