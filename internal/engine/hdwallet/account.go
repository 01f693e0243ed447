package hdwallet

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/mr-tron/base58"

	"wdk-wallet/go-daemon/internal/contracts"
	"wdk-wallet/go-daemon/internal/secrets"
)

// transaction is one entry of the reference history. Amount is a *big.Int
// on purpose: it exercises the arbitrary-precision path of the result
// serializer.
type transaction struct {
	Hash      string    `json:"hash"`
	Direction string    `json:"direction"`
	Amount    *big.Int  `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func (w *wallet) account(index int) (contracts.Account, error) {
	if index < 0 {
		return nil, fmt.Errorf("account index %d is out of range", index)
	}
	keySeed, err := expand(w.netSeed, fmt.Sprintf("account/%d", index), ed25519.SeedSize)
	if err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(keySeed)
	secrets.Zero(keySeed)
	pub := priv.Public().(ed25519.PublicKey)
	address := base58.Encode(fingerprint(pub))

	return contracts.Account{
		"getAddress": func(ctx context.Context, args ...any) (any, error) {
			return address, nil
		},
		"getBalance": func(ctx context.Context, args ...any) (any, error) {
			return deterministicBalance(pub), nil
		},
		"getTransactionHistory": func(ctx context.Context, args ...any) (any, error) {
			return historyFor(pub), nil
		},
		"sendTransaction": func(ctx context.Context, args ...any) (any, error) {
			return sendTransaction(priv, address, args)
		},
	}, nil
}

// deterministicBalance derives a stable pseudo-balance from the public key
// so repeated queries agree without any network access. Values exceed
// int64 range to keep big-integer serialization honest.
func deterministicBalance(pub ed25519.PublicKey) *big.Int {
	balance := new(big.Int).SetBytes(pub[:10])
	return balance.Mul(balance, big.NewInt(1_000_000))
}

func historyFor(pub ed25519.PublicKey) []transaction {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]transaction, 0, 3)
	for i := 0; i < 3; i++ {
		material := append([]byte{byte(i)}, pub...)
		sum := sha256.Sum256(material)
		direction := "in"
		if i%2 == 1 {
			direction = "out"
		}
		entries = append(entries, transaction{
			Hash:      hex.EncodeToString(sum[:]),
			Direction: direction,
			Amount:    new(big.Int).SetBytes(sum[:9]),
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	return entries
}

// sendTransaction expects a single object argument {to, amount}. It signs
// the canonical payload and returns the resulting transaction hash; nothing
// is broadcast anywhere.
func sendTransaction(priv ed25519.PrivateKey, from string, args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sendTransaction expects one argument, got %d", len(args))
	}
	payload, ok := args[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("sendTransaction argument must be an object")
	}
	to, _ := payload["to"].(string)
	if to == "" {
		return nil, fmt.Errorf("sendTransaction requires a destination address")
	}
	amount, ok := parseAmount(payload["amount"])
	if !ok {
		return nil, fmt.Errorf("sendTransaction requires a positive amount")
	}

	message := []byte(from + "->" + to + ":" + amount.String())
	signature := ed25519.Sign(priv, message)
	sum := sha256.Sum256(signature)
	return map[string]any{
		"hash":   hex.EncodeToString(sum[:]),
		"from":   from,
		"to":     to,
		"amount": amount,
	}, nil
}

func parseAmount(raw any) (*big.Int, bool) {
	switch v := raw.(type) {
	case string:
		amount, ok := new(big.Int).SetString(v, 10)
		if !ok || amount.Sign() <= 0 {
			return nil, false
		}
		return amount, true
	case float64:
		if v <= 0 || v != float64(int64(v)) {
			return nil, false
		}
		return big.NewInt(int64(v)), true
	default:
		return nil, false
	}
}
