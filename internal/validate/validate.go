// Package validate holds the assertion helpers applied to every untrusted
// request field before it is used. Helpers never mutate their input and
// always fail with a BAD_REQUEST-classified error naming the field.
package validate

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"wdk-wallet/go-daemon/internal/wdkerr"
)

// NonEmptyString rejects empty or whitespace-only values.
func NonEmptyString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return wdkerr.Newf(wdkerr.KindBadRequest, "%s is required", field)
	}
	return nil
}

// NonNegativeInt rejects negative values.
func NonNegativeInt(field string, value int) error {
	if value < 0 {
		return wdkerr.Newf(wdkerr.KindBadRequest, "%s must be a non-negative integer", field)
	}
	return nil
}

// OneOf rejects values outside the allowed set.
func OneOf(field, value string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return wdkerr.Newf(wdkerr.KindBadRequest, "%s must be one of %s", field, strings.Join(allowed, ", "))
}

// Base64 checks the field is non-empty standard base64 and returns the
// decoded bytes. The decode itself is the second-stage format check.
func Base64(field, value string) ([]byte, error) {
	if err := NonEmptyString(field, value); err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, wdkerr.Wrapf(wdkerr.KindBadRequest, err, "%s must be valid base64", field)
	}
	return decoded, nil
}

// JSONValue checks the field decodes as JSON and returns the decoded value.
func JSONValue(field, value string) (any, error) {
	if err := NonEmptyString(field, value); err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return nil, wdkerr.Wrapf(wdkerr.KindBadRequest, err, "%s must be valid JSON", field)
	}
	return decoded, nil
}

// Mnemonic splits the phrase on whitespace and requires exactly 12 or 24
// words. Word-list membership is checked later by the mnemonic codec; this
// only asserts shape.
func Mnemonic(field, value string) ([]string, error) {
	words := strings.Fields(value)
	if len(words) != 12 && len(words) != 24 {
		return nil, wdkerr.Newf(wdkerr.KindBadRequest, "%s must contain 12 or 24 words, got %d", field, len(words))
	}
	return words, nil
}

// WordCount accepts only the two supported mnemonic lengths. Anything else
// is rejected outright, never rounded.
func WordCount(field string, value int) error {
	if value != 12 && value != 24 {
		return wdkerr.Newf(wdkerr.KindBadRequest, "%s must be 12 or 24, got %d", field, value)
	}
	return nil
}
