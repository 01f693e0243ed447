package hdwallet

import (
	"wdk-wallet/go-daemon/internal/contracts"
)

// Manager is the reference per-network wallet-manager capability. The real
// plugins live outside this repository; this one only carries its network
// identity, which is all the boundary layer ever relies on.
type Manager struct {
	network string
}

func NewManager(network string) *Manager {
	return &Manager{network: network}
}

func (m *Manager) Network() string { return m.network }

// Registry builds the immutable network-to-manager mapping supplied at
// process start.
func Registry(networks ...string) map[string]contracts.WalletManager {
	registry := make(map[string]contracts.WalletManager, len(networks))
	for _, network := range networks {
		registry[network] = NewManager(network)
	}
	return registry
}
