package privacylog

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"strings"
	"testing"
)

func newLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	handler := WrapHandler(slog.NewJSONHandler(&buf, nil))
	return slog.New(handler), &buf
}

func b64Secret(t *testing.T, n int) string {
	t.Helper()
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestSensitiveKeysAreRedacted(t *testing.T) {
	for _, key := range []string{
		"mnemonic", "encryptedSeed", "encryptionKey", "rpc_token",
		"Authorization", "walletEntropy", "private_key",
	} {
		logger, buf := newLogger(t)
		logger.Info("request", key, "twelve words of doom")
		line := buf.String()
		if strings.Contains(line, "twelve words of doom") {
			t.Fatalf("key %q leaked its value: %s", key, line)
		}
		if !strings.Contains(line, redactedValue) {
			t.Fatalf("key %q not redacted: %s", key, line)
		}
	}
}

func TestSecretLookingValuesAreRedactedUnderInnocentKeys(t *testing.T) {
	logger, buf := newLogger(t)
	payload := b64Secret(t, 32)
	logger.Info("request", "payload", payload)
	if strings.Contains(buf.String(), payload) {
		t.Fatalf("payload leaked: %s", buf.String())
	}
}

func TestOrdinaryAttrsPassThrough(t *testing.T) {
	logger, buf := newLogger(t)
	logger.Info("request", "method", "callMethod", "network", "bitcoin", "latency_ms", 12)
	line := buf.String()
	for _, want := range []string{"callMethod", "bitcoin", "12"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in %s", want, line)
		}
	}
	if strings.Contains(line, redactedValue) {
		t.Fatalf("unexpected redaction: %s", line)
	}
}

func TestShortBase64IsNotRedacted(t *testing.T) {
	logger, buf := newLogger(t)
	logger.Info("request", "id", "YWJjZA==")
	if !strings.Contains(buf.String(), "YWJjZA==") {
		t.Fatalf("short value should pass through: %s", buf.String())
	}
}

func TestGroupsAreSanitizedRecursively(t *testing.T) {
	logger, buf := newLogger(t)
	logger.Info("request", slog.Group("session",
		slog.String("state", "active"),
		slog.String("seed", "super secret"),
	))
	line := buf.String()
	if strings.Contains(line, "super secret") {
		t.Fatalf("group attr leaked: %s", line)
	}
	if !strings.Contains(line, "active") {
		t.Fatalf("group sibling dropped: %s", line)
	}
}

func TestWithAttrsIsSanitized(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapHandler(slog.NewJSONHandler(&buf, nil)).WithAttrs([]slog.Attr{
		slog.String("token", "hunter2"),
	}))
	logger.Info("request")
	if strings.Contains(buf.String(), "hunter2") {
		t.Fatalf("WithAttrs leaked: %s", buf.String())
	}
}
