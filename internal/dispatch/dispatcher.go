// Package dispatch forwards validated calls to per-network account
// capability objects without knowing their signatures, then serializes
// whatever comes back.
package dispatch

import (
	"context"
	"sort"
	"strings"

	"wdk-wallet/go-daemon/internal/session"
	"wdk-wallet/go-daemon/internal/validate"
	"wdk-wallet/go-daemon/internal/wdkerr"
)

// Dispatcher borrows the active session's accounts for the duration of one
// call; it never holds an engine reference across calls.
type Dispatcher struct {
	sessions *session.Manager
}

func New(sessions *session.Manager) *Dispatcher {
	return &Dispatcher{sessions: sessions}
}

// Call resolves (network, accountIndex) to an account, verifies methodName
// names an invocable capability on it, invokes the capability with the
// decoded arguments and serializes the result to a transport string.
//
// A capability that fails mid-invocation is wrapped with method context and
// keeps whatever kind was already attached; it is never re-raised bare.
func (d *Dispatcher) Call(ctx context.Context, methodName, network string, accountIndex int, argsJSON string) (string, error) {
	if err := validate.NonEmptyString("methodName", methodName); err != nil {
		return "", err
	}
	if err := validate.NonEmptyString("network", network); err != nil {
		return "", err
	}
	if err := validate.NonNegativeInt("accountIndex", accountIndex); err != nil {
		return "", err
	}
	args, err := decodeArgs(argsJSON)
	if err != nil {
		return "", err
	}

	account, err := d.sessions.Account(ctx, network, accountIndex)
	if err != nil {
		return "", err
	}

	capability, ok := account[methodName]
	if !ok {
		names := account.Names()
		sort.Strings(names)
		return "", wdkerr.Newf(wdkerr.KindBadRequest,
			"unknown method %q on %s account %d; available methods: %s",
			methodName, network, accountIndex, strings.Join(names, ", "))
	}

	result, err := capability(ctx, args...)
	if err != nil {
		return "", wdkerr.Wrapf(wdkerr.KindOf(err), err, "%s failed", methodName)
	}
	return wdkerr.MarshalValue(result), nil
}

// decodeArgs turns the optional args payload into positional arguments: a
// JSON array is spread, a JSON object is passed as a single argument.
func decodeArgs(argsJSON string) ([]any, error) {
	if strings.TrimSpace(argsJSON) == "" {
		return nil, nil
	}
	decoded, err := validate.JSONValue("args", argsJSON)
	if err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case []any:
		return v, nil
	case map[string]any:
		return []any{v}, nil
	default:
		return nil, wdkerr.New(wdkerr.KindBadRequest, "args must be a JSON array or object")
	}
}
