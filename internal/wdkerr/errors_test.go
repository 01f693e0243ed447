package wdkerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesExistingKind(t *testing.T) {
	inner := New(KindBadRequest, "bad field")
	outer := Wrap(KindManagerInit, "initialize failed", inner)
	if outer.Kind != KindBadRequest {
		t.Fatalf("outer kind = %s, want BAD_REQUEST preserved", outer.Kind)
	}
	if !errors.Is(outer, inner) {
		t.Fatal("wrapped error must unwrap to the inner error")
	}
}

func TestWrapAttachesKindOnFirstClassification(t *testing.T) {
	plain := errors.New("something broke")
	wrapped := Wrap(KindAccountBalances, "account lookup", plain)
	if wrapped.Kind != KindAccountBalances {
		t.Fatalf("kind = %s, want ACCOUNT_BALANCES", wrapped.Kind)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(KindUnknown, "anything", nil) != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestKindOfClassifiedThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("outer context: %w", New(KindManagerInit, "engine down"))
	if KindOf(err) != KindManagerInit {
		t.Fatalf("kind = %s, want WDK_MANAGER_INIT", KindOf(err))
	}
}

func TestKindInference(t *testing.T) {
	cases := []struct {
		message string
		want    Kind
	}{
		{"invalid argument shape", KindBadRequest},
		{"field is required", KindBadRequest},
		{"malformed payload", KindBadRequest},
		{"wdk bring-up exploded", KindManagerInit},
		{"session teardown raced", KindManagerInit},
		{"engine constructor panicked", KindManagerInit},
		{"balance lookup timed out", KindAccountBalances},
		{"account 3 gone", KindAccountBalances},
		{"cosmic rays", KindUnknown},
	}
	for _, tc := range cases {
		if got := KindOf(errors.New(tc.message)); got != tc.want {
			t.Fatalf("KindOf(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestSerializeProductionHidesCause(t *testing.T) {
	err := Wrap(KindManagerInit, "initialize failed", errors.New("dial tcp 10.0.0.1: connection refused"))
	wire := Serialize(err, false)
	if wire.Kind != string(KindManagerInit) {
		t.Fatalf("kind = %s", wire.Kind)
	}
	if wire.Message != "initialize failed" {
		t.Fatalf("message = %q", wire.Message)
	}
	if wire.Cause != "" {
		t.Fatalf("production serialization leaked cause %q", wire.Cause)
	}
}

func TestSerializeDevModeIncludesCause(t *testing.T) {
	err := Wrap(KindBadRequest, "decode failed", errors.New("unexpected token"))
	wire := Serialize(err, true)
	if wire.Cause != "unexpected token" {
		t.Fatalf("cause = %q", wire.Cause)
	}
}

func TestSerializeUnclassified(t *testing.T) {
	wire := Serialize(errors.New("cosmic rays"), false)
	if wire.Kind != string(KindUnknown) {
		t.Fatalf("kind = %s, want UNKNOWN", wire.Kind)
	}
	if wire.Message != "cosmic rays" {
		t.Fatalf("message = %q", wire.Message)
	}
}
