package wdkerr

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"
)

func TestMarshalValueBigInt(t *testing.T) {
	huge, ok := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	if !ok {
		t.Fatal("big.Int parse failed")
	}
	got := MarshalValue(huge)
	if got != `"340282366920938463463374607431768211455"` {
		t.Fatalf("big.Int serialized as %s", got)
	}
}

func TestMarshalValueTime(t *testing.T) {
	ts := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
	if got := MarshalValue(ts); got != `"2024-03-01T12:30:00Z"` {
		t.Fatalf("time serialized as %s", got)
	}
}

func TestMarshalValueNestedStructure(t *testing.T) {
	value := map[string]any{
		"balance": big.NewInt(7),
		"history": []any{
			map[string]any{"amount": big.NewInt(11), "at": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		},
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(MarshalValue(value)), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["balance"] != "7" {
		t.Fatalf("balance = %v", decoded["balance"])
	}
	history := decoded["history"].([]any)
	entry := history[0].(map[string]any)
	if entry["amount"] != "11" {
		t.Fatalf("amount = %v", entry["amount"])
	}
	if entry["at"] != "2024-01-02T00:00:00Z" {
		t.Fatalf("at = %v", entry["at"])
	}
}

func TestMarshalValueStructWithTags(t *testing.T) {
	type payment struct {
		Hash   string   `json:"hash"`
		Amount *big.Int `json:"amount"`
		hidden string
	}
	got := MarshalValue(payment{Hash: "abc", Amount: big.NewInt(5), hidden: "x"})
	var decoded map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["hash"] != "abc" || decoded["amount"] != "5" {
		t.Fatalf("decoded = %v", decoded)
	}
	if _, ok := decoded["hidden"]; ok {
		t.Fatal("unexported field leaked")
	}
}

func TestMarshalValueUnserializableFallsBack(t *testing.T) {
	got := MarshalValue(func() {})
	if !strings.Contains(got, "unserializable") {
		t.Fatalf("func serialized as %s", got)
	}
	got = MarshalValue(map[string]any{"ch": make(chan int)})
	if !strings.Contains(got, "unserializable") {
		t.Fatalf("channel serialized as %s", got)
	}
}

func TestMarshalValueNil(t *testing.T) {
	if got := MarshalValue(nil); got != "null" {
		t.Fatalf("nil serialized as %s", got)
	}
}
