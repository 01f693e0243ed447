// Package session owns the zero-or-one active wallet-engine instance. All
// state transitions go through the Manager, which serializes its entry
// points behind a single mutex: two interleaved Initialize calls are
// linearized, never concurrent, so no caller can observe a half-disposed or
// half-registered session.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"wdk-wallet/go-daemon/internal/contracts"
	"wdk-wallet/go-daemon/internal/metrics"
	"wdk-wallet/go-daemon/internal/secrets"
	"wdk-wallet/go-daemon/internal/wdkerr"
)

// State is the lifecycle position of the manager. Disposal collapses back
// to Uninitialized.
type State int

const (
	Uninitialized State = iota
	Started
	Active
)

func (s State) String() string {
	switch s {
	case Started:
		return "started"
	case Active:
		return "active"
	default:
		return "uninitialized"
	}
}

// Config wires the immutable collaborators supplied at process start.
type Config struct {
	// Registry maps network name to its wallet-manager capability. Fixed
	// for the process lifetime.
	Registry map[string]contracts.WalletManager
	// RequiredNetworks must all appear in every initialize config.
	RequiredNetworks []string
	// NewEngine constructs a fresh engine from decrypted seed bytes.
	NewEngine contracts.EngineFactory
}

// Manager drives the session state machine.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	state    State
	engine   contracts.Engine
	networks []string
}

func New(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// Start acknowledges readiness to receive an initialize call. No engine
// exists yet; the transition is valid from any state.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Uninitialized {
		m.state = Started
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Networks returns the networks registered to the active session, sorted.
func (m *Manager) Networks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.networks))
	copy(out, m.networks)
	return out
}

// Initialize decrypts the seed, tears down any active session, constructs a
// fresh engine and registers every network named in configJSON. The session
// becomes active only after all registrations succeed; a single failure
// disposes the half-built engine and leaves no session installed beyond the
// already-completed disposal of the old one.
func (m *Manager) Initialize(ctx context.Context, keyB64, encryptedSeedB64, configJSON string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	netConfig, err := parseNetworkConfig(configJSON)
	if err != nil {
		return err
	}
	if missing := missingNetworks(m.cfg.RequiredNetworks, netConfig); len(missing) > 0 {
		return wdkerr.Newf(wdkerr.KindBadRequest, "config is missing required networks: %s", strings.Join(missing, ", "))
	}

	seed, err := secrets.Decrypt(encryptedSeedB64, keyB64)
	if err != nil {
		return wdkerr.Wrap(wdkerr.KindBadRequest, "seed decryption failed", err)
	}
	defer secrets.Zero(seed)

	// The old instance must be fully torn down before the new one is
	// constructed; two engines are never live at once.
	if m.engine != nil {
		m.disposeLocked(ctx)
	}

	engine, err := m.cfg.NewEngine(seed)
	if err != nil {
		return wdkerr.Wrap(wdkerr.KindManagerInit, "wdk engine construction failed", err)
	}

	networks := sortedNetworks(netConfig)
	for _, network := range networks {
		manager, ok := m.cfg.Registry[network]
		if !ok {
			_ = engine.Dispose(ctx)
			return wdkerr.Newf(wdkerr.KindManagerInit, "no wallet manager registered for network %q", network)
		}
		if err := engine.RegisterWallet(ctx, network, manager, netConfig[network]); err != nil {
			_ = engine.Dispose(ctx)
			return wdkerr.Wrapf(wdkerr.KindManagerInit, err, "wallet registration failed for network %q", network)
		}
	}

	m.engine = engine
	m.networks = networks
	m.state = Active
	metrics.ObserveSessionTransition("initialize")
	slog.Default().Info("wdk session initialized", "networks", networks)
	return nil
}

// Dispose tears down the active session. Idempotent: disposing with no
// active session is a no-op, never an error.
func (m *Manager) Dispose(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposeLocked(ctx)
}

func (m *Manager) disposeLocked(ctx context.Context) {
	if m.engine == nil {
		if m.state == Active {
			m.state = Started
		}
		return
	}
	if err := m.engine.Dispose(ctx); err != nil {
		slog.Default().Warn("wdk engine dispose reported error", "error", err)
	}
	m.engine = nil
	m.networks = nil
	m.state = Started
	metrics.ObserveSessionTransition("dispose")
	slog.Default().Info("wdk session disposed")
}

// Account resolves the capability object for (network, index) on the active
// session. The returned account is a borrow valid for one call only; the
// manager keeps exclusive ownership of the engine.
func (m *Manager) Account(ctx context.Context, network string, index int) (contracts.Account, error) {
	m.mu.Lock()
	engine := m.engine
	m.mu.Unlock()

	if engine == nil {
		return nil, wdkerr.New(wdkerr.KindManagerInit, "wdk is not initialized")
	}
	account, err := engine.GetAccount(ctx, network, index)
	if err != nil {
		return nil, wdkerr.Wrapf(wdkerr.KindAccountBalances, err, "account resolution failed for network %q index %d", network, index)
	}
	return account, nil
}

func parseNetworkConfig(configJSON string) (map[string]any, error) {
	if strings.TrimSpace(configJSON) == "" {
		return nil, wdkerr.New(wdkerr.KindBadRequest, "config is required")
	}
	var netConfig map[string]any
	if err := json.Unmarshal([]byte(configJSON), &netConfig); err != nil {
		return nil, wdkerr.Wrap(wdkerr.KindBadRequest, "config must be a JSON object keyed by network", err)
	}
	if netConfig == nil {
		return nil, wdkerr.New(wdkerr.KindBadRequest, "config must be a JSON object keyed by network")
	}
	return netConfig, nil
}

func missingNetworks(required []string, netConfig map[string]any) []string {
	var missing []string
	for _, network := range required {
		if _, ok := netConfig[network]; !ok {
			missing = append(missing, network)
		}
	}
	sort.Strings(missing)
	return missing
}

func sortedNetworks(netConfig map[string]any) []string {
	networks := make([]string, 0, len(netConfig))
	for network := range netConfig {
		networks = append(networks, network)
	}
	sort.Strings(networks)
	return networks
}
