package secrets

import (
	"strings"

	"github.com/tyler-smith/go-bip39"

	"wdk-wallet/go-daemon/internal/wdkerr"
)

// EntropyToMnemonic encodes raw entropy (16 or 32 bytes) as a BIP39 phrase.
func EntropyToMnemonic(entropy []byte) (string, error) {
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", wdkerr.Wrap(wdkerr.KindBadRequest, "invalid entropy", err)
	}
	return mnemonic, nil
}

// MnemonicToEntropy recovers the entropy a phrase encodes.
func MnemonicToEntropy(mnemonic string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(normalizeMnemonic(mnemonic))
	if err != nil {
		return nil, wdkerr.Wrap(wdkerr.KindBadRequest, "invalid mnemonic", err)
	}
	return entropy, nil
}

// MnemonicToSeed derives the wallet seed from a phrase. Seeds are derived
// with an empty passphrase; the mnemonic itself is the recovery secret.
func MnemonicToSeed(mnemonic string) ([]byte, error) {
	normalized := normalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(normalized) {
		return nil, wdkerr.New(wdkerr.KindBadRequest, "invalid mnemonic")
	}
	return bip39.NewSeed(normalized, ""), nil
}

// ValidateMnemonic reports whether the phrase is a well-formed BIP39
// mnemonic from the fixed wordlist.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalizeMnemonic(mnemonic))
}

func normalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}
