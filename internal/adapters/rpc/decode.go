package rpc

import (
	"encoding/json"
	"errors"
)

var errInvalidParams = errors.New("invalid params")

// decodeObjectParams accepts either an object or a single-element array
// wrapping one, matching what JSON-RPC clients actually send.
func decodeObjectParams(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errInvalidParams
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) != 1 {
			return errInvalidParams
		}
		raw = arr[0]
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errInvalidParams
	}
	return nil
}
