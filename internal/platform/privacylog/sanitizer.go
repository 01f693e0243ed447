// Package privacylog wraps an slog handler so secret material can never
// reach a log sink. Keys that name key/seed/mnemonic data are redacted
// outright, and string values that look like one of our base64 secret
// payloads are redacted even under an innocent key.
package privacylog

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
)

const redactedValue = "[REDACTED]"

var sensitiveKeyParts = []string{
	"mnemonic", "seed", "entropy", "encryptionkey", "encryption_key",
	"privatekey", "private_key", "token", "secret", "password",
	"passphrase", "authorization",
}

// minSecretPayloadLen is the base64 length of a 32-byte key; anything that
// long and decodable is treated as potential secret material.
const minSecretPayloadLen = 44

type SanitizingHandler struct {
	next slog.Handler
}

func WrapHandler(next slog.Handler) slog.Handler {
	if next == nil {
		return nil
	}
	return &SanitizingHandler{next: next}
}

func (h *SanitizingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *SanitizingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(SanitizeAttr(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *SanitizingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SanitizingHandler{next: h.next.WithAttrs(sanitizeAttrs(attrs))}
}

func (h *SanitizingHandler) WithGroup(name string) slog.Handler {
	return &SanitizingHandler{next: h.next.WithGroup(name)}
}

func SanitizeAttr(attr slog.Attr) slog.Attr {
	key := strings.TrimSpace(attr.Key)
	if isSensitiveKey(strings.ToLower(key)) {
		return slog.String(key, redactedValue)
	}
	switch attr.Value.Kind() {
	case slog.KindGroup:
		return slog.Attr{Key: key, Value: slog.GroupValue(sanitizeAttrs(attr.Value.Group())...)}
	case slog.KindString:
		if looksLikeSecretPayload(attr.Value.String()) {
			return slog.String(key, redactedValue)
		}
	}
	return attr
}

func sanitizeAttrs(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, SanitizeAttr(attr))
	}
	return out
}

func isSensitiveKey(key string) bool {
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}

func looksLikeSecretPayload(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) < minSecretPayloadLen {
		return false
	}
	if strings.ContainsAny(value, " \t\n") {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(value)
	return err == nil
}
