// Package contracts holds the ports between the boundary layer and the
// wallet engine. The boundary never depends on a concrete engine; it only
// sees these interfaces.
package contracts

import "context"

// Capability is a single invocable operation exposed by an account. The
// dispatcher does not know capability signatures in advance: arguments are
// whatever the caller supplied after JSON decoding.
type Capability func(ctx context.Context, args ...any) (any, error)

// Account maps operation names to invocable capabilities. The name set is an
// open enumeration discovered at call time.
type Account map[string]Capability

// Names returns the account's invocable operation names in unspecified order.
func (a Account) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	return names
}

// WalletManager is the per-network plugin registered into an engine during
// session initialization. Managers are supplied at process start and the
// registry mapping network name to manager is immutable for the process
// lifetime.
type WalletManager interface {
	Network() string
}

// Engine is one live wallet-engine instance constructed from decrypted seed
// bytes. Dispose must be idempotent.
type Engine interface {
	RegisterWallet(ctx context.Context, network string, manager WalletManager, config any) error
	GetAccount(ctx context.Context, network string, index int) (Account, error)
	Dispose(ctx context.Context) error
}

// EngineFactory constructs a fresh engine from decrypted seed bytes. The seed
// slice is owned by the caller and is zeroized after the factory returns;
// implementations must copy what they need.
type EngineFactory func(seed []byte) (Engine, error)
