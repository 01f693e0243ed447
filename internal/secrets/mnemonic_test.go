package secrets

import (
	"bytes"
	"strings"
	"testing"
)

const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestAbandonMnemonicEntropyRoundTrip(t *testing.T) {
	entropy, err := MnemonicToEntropy(abandonMnemonic)
	if err != nil {
		t.Fatalf("mnemonic to entropy failed: %v", err)
	}
	if !bytes.Equal(entropy, make([]byte, 16)) {
		t.Fatalf("abandon mnemonic entropy = %x, want 16 zero bytes", entropy)
	}

	mnemonic, err := EntropyToMnemonic(entropy)
	if err != nil {
		t.Fatalf("entropy to mnemonic failed: %v", err)
	}
	if mnemonic != abandonMnemonic {
		t.Fatalf("round trip mnemonic = %q", mnemonic)
	}
}

func TestMnemonicToSeedDeterministic(t *testing.T) {
	first, err := MnemonicToSeed(abandonMnemonic)
	if err != nil {
		t.Fatalf("seed derivation failed: %v", err)
	}
	second, err := MnemonicToSeed("  abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon   about ")
	if err != nil {
		t.Fatalf("seed derivation with extra whitespace failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("seed derivation must normalize whitespace")
	}
	if len(first) != 64 {
		t.Fatalf("seed length = %d, want 64", len(first))
	}
}

func TestMnemonicToSeedRejectsInvalid(t *testing.T) {
	for _, mnemonic := range []string{
		"",
		"not a mnemonic at all",
		strings.Repeat("abandon ", 11) + "abandon", // bad checksum
	} {
		if _, err := MnemonicToSeed(mnemonic); err == nil {
			t.Fatalf("invalid mnemonic %q accepted", mnemonic)
		}
	}
}

func TestValidateMnemonic(t *testing.T) {
	if !ValidateMnemonic(abandonMnemonic) {
		t.Fatal("abandon mnemonic should validate")
	}
	if ValidateMnemonic("garbage words that are not on the list at all twelve words here") {
		t.Fatal("garbage mnemonic should not validate")
	}
}

func TestGeneratedEntropyEncodesToValidMnemonic(t *testing.T) {
	for _, wordCount := range []int{12, 24} {
		entropy, err := GenerateEntropy(wordCount)
		if err != nil {
			t.Fatalf("entropy generation failed: %v", err)
		}
		mnemonic, err := EntropyToMnemonic(entropy)
		if err != nil {
			t.Fatalf("mnemonic encoding failed: %v", err)
		}
		if got := len(strings.Fields(mnemonic)); got != wordCount {
			t.Fatalf("mnemonic has %d words, want %d", got, wordCount)
		}
		if !ValidateMnemonic(mnemonic) {
			t.Fatal("generated mnemonic should validate")
		}
	}
}
