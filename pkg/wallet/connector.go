package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"euclid-dex/pkg/apperrors"
	"euclid-dex/pkg/types"
)

//go:generate mockgen -destination=mock/extension_mock.go -package=mock euclid-dex/pkg/wallet Extension

// ChainKind selects the wallet family used to sign for a chain
type ChainKind string

const (
	KindCosmos ChainKind = "cosmos"
	KindEVM    ChainKind = "evm"
)

// State is the connection state of a Connector
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Account is an address exposed by a wallet
type Account struct {
	Address string `json:"address"`
}

// Extension is a wallet back-end able to authorize a chain and list the
// accounts it holds for it.
type Extension interface {
	Kind() ChainKind
	// Installed reports whether the back-end is available at all.
	Installed() bool
	// InstallHint tells the user how to make the back-end available.
	InstallHint() string
	Enable(ctx context.Context, chainID string) error
	Accounts(ctx context.Context, chainID string) ([]Account, error)
}

// Session is a connected wallet address
type Session struct {
	ID          string    `json:"id"`
	Address     string    `json:"address"`
	Kind        ChainKind `json:"kind"`
	ChainID     string    `json:"chain_id"`
	ConnectedAt time.Time `json:"connected_at"`
}

// Sender returns the session as the sender of an API request
func (s Session) Sender() types.SenderRef {
	return types.SenderRef{Address: s.Address, ChainUID: s.ChainID}
}

// Connector tracks the single wallet session of the CLI. Only one chain kind
// is connected at a time; connecting another kind replaces the session.
type Connector struct {
	mu         sync.Mutex
	extensions map[ChainKind]Extension
	state      State
	session    *Session
	log        *zap.Logger
	now        func() time.Time
}

// NewConnector creates a disconnected connector over the given extensions
func NewConnector(log *zap.Logger, extensions ...Extension) *Connector {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Connector{
		extensions: make(map[ChainKind]Extension, len(extensions)),
		state:      StateDisconnected,
		log:        log,
		now:        time.Now,
	}
	for _, ext := range extensions {
		c.extensions[ext.Kind()] = ext
	}
	return c
}

// Connect enables chainID on the extension of the given kind and records the
// first account as the session address. When the extension is missing the
// returned error carries the install instruction and the state is untouched.
// A failed attempt restores the previous state.
func (c *Connector) Connect(ctx context.Context, kind ChainKind, chainID string) (Session, error) {
	ext, ok := c.extensions[kind]
	if !ok || !ext.Installed() {
		hint := "no wallet available for " + string(kind) + " chains"
		if ok {
			hint = ext.InstallHint()
		}
		return Session{}, errors.Wrap(apperrors.ErrExtensionMissing, hint)
	}

	c.mu.Lock()
	prevState, prevSession := c.state, c.session
	c.state = StateConnecting
	c.mu.Unlock()

	session, err := c.connect(ctx, ext, kind, chainID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state, c.session = prevState, prevSession
		c.log.Error("failed to connect wallet",
			zap.String("kind", string(kind)),
			zap.String("chain_id", chainID),
			zap.Error(err))
		return Session{}, err
	}

	c.state, c.session = StateConnected, &session
	c.log.Debug("wallet connected", zap.String("address", session.Address), zap.String("chain_id", chainID))
	return session, nil
}

func (c *Connector) connect(ctx context.Context, ext Extension, kind ChainKind, chainID string) (Session, error) {
	if err := ext.Enable(ctx, chainID); err != nil {
		return Session{}, errors.Wrapf(err, "enable %s", chainID)
	}

	accounts, err := ext.Accounts(ctx, chainID)
	if err != nil {
		return Session{}, errors.Wrap(err, "get accounts")
	}
	if len(accounts) == 0 || accounts[0].Address == "" {
		return Session{}, errors.Errorf("wallet returned no accounts for %s", chainID)
	}

	return Session{
		ID:          uuid.NewString(),
		Address:     accounts[0].Address,
		Kind:        kind,
		ChainID:     chainID,
		ConnectedAt: c.now().UTC(),
	}, nil
}

// Disconnect drops the session
func (c *Connector) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateDisconnected
	c.session = nil
}

// Restore marks a previously saved session as connected
func (c *Connector) Restore(s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateConnected
	c.session = &s
}

// State returns the current connection state
func (c *Connector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Session returns the connected session, if any
func (c *Connector) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected || c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Sender returns the sender of API requests, or ErrNotConnected
func (c *Connector) Sender() (types.SenderRef, error) {
	s, ok := c.Session()
	if !ok {
		return types.SenderRef{}, apperrors.ErrNotConnected
	}
	return s.Sender(), nil
}
