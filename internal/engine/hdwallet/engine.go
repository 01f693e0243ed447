// Package hdwallet is the reference in-process wallet engine. It lets the
// daemon run standalone and gives tests a real engine behind the contracts
// ports; production deployments substitute their own engine factory.
package hdwallet

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"

	"wdk-wallet/go-daemon/internal/contracts"
	"wdk-wallet/go-daemon/internal/secrets"
)

var errDisposed = errors.New("wdk engine is disposed")

// Engine derives per-network key material from one seed. It owns a private
// copy of the seed and zeroizes it on dispose.
type Engine struct {
	mu       sync.Mutex
	seed     []byte
	wallets  map[string]*wallet
	disposed bool
}

type wallet struct {
	network string
	manager contracts.WalletManager
	config  any
	netSeed []byte
}

// New constructs an engine from decrypted seed bytes. The input slice is
// copied; the caller may scrub it immediately.
func New(seed []byte) (contracts.Engine, error) {
	if len(seed) == 0 {
		return nil, errors.New("seed is required")
	}
	owned := make([]byte, len(seed))
	copy(owned, seed)
	return &Engine{seed: owned, wallets: make(map[string]*wallet)}, nil
}

// Factory adapts New to the contracts.EngineFactory shape.
func Factory(seed []byte) (contracts.Engine, error) {
	return New(seed)
}

// RegisterWallet derives the network's key material and activates it.
func (e *Engine) RegisterWallet(ctx context.Context, network string, manager contracts.WalletManager, config any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return errDisposed
	}
	if network == "" {
		return errors.New("network is required")
	}
	if manager == nil {
		return fmt.Errorf("wallet manager is required for network %q", network)
	}
	if _, ok := e.wallets[network]; ok {
		return fmt.Errorf("network %q is already registered", network)
	}
	netSeed, err := expand(e.seed, "wdk/"+network+"/v1", 32)
	if err != nil {
		return err
	}
	e.wallets[network] = &wallet{
		network: network,
		manager: manager,
		config:  config,
		netSeed: netSeed,
	}
	return nil
}

// GetAccount resolves the capability object for (network, index).
func (e *Engine) GetAccount(ctx context.Context, network string, index int) (contracts.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return nil, errDisposed
	}
	w, ok := e.wallets[network]
	if !ok {
		return nil, fmt.Errorf("no wallet registered for network %q", network)
	}
	return w.account(index)
}

// Dispose zeroizes the seed and all derived network seeds. Idempotent.
func (e *Engine) Dispose(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return nil
	}
	secrets.Zero(e.seed)
	for _, w := range e.wallets {
		secrets.Zero(w.netSeed)
	}
	e.wallets = nil
	e.disposed = true
	return nil
}

func expand(seed []byte, info string, outLen int) ([]byte, error) {
	reader := hkdf.New(sha256.New, seed, nil, []byte(info))
	out := make([]byte, outLen)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}

func fingerprint(pub []byte) []byte {
	sum := sha256.Sum256(pub)
	return sum[:]
}
