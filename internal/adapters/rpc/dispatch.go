package rpc

import (
	"context"
	"encoding/json"
	"strings"

	"wdk-wallet/go-daemon/internal/secrets"
	"wdk-wallet/go-daemon/internal/validate"
	"wdk-wallet/go-daemon/internal/wdkerr"
)

func (s *Server) dispatchRPC(ctx context.Context, method string, rawParams json.RawMessage) (any, *rpcError) {
	switch method {
	case "health_check":
		return map[string]string{"status": "ok"}, nil
	case "workletStart":
		s.sessions.Start()
		return map[string]string{"status": "started"}, nil
	case "generateEntropyAndEncrypt":
		return s.handleGenerateEntropyAndEncrypt(rawParams)
	case "getMnemonicFromEntropy":
		return s.handleGetMnemonicFromEntropy(rawParams)
	case "getSeedAndEntropyFromMnemonic":
		return s.handleSeedAndEntropyFromMnemonic(rawParams)
	case "initializeWDK":
		return s.handleInitializeWDK(ctx, rawParams)
	case "callMethod":
		return s.handleCallMethod(ctx, rawParams)
	case "dispose":
		s.sessions.Dispose(ctx)
		return map[string]any{}, nil
	default:
		return nil, rpcMethodNotFound(method)
	}
}

// encryptedSecretsResult is shared by both secret-producing methods: the
// key is surfaced exactly once, alongside the buffers sealed under it.
type encryptedSecretsResult struct {
	EncryptionKey          string `json:"encryptionKey"`
	EncryptedSeedBuffer    string `json:"encryptedSeedBuffer"`
	EncryptedEntropyBuffer string `json:"encryptedEntropyBuffer"`
}

func (s *Server) handleGenerateEntropyAndEncrypt(rawParams json.RawMessage) (any, *rpcError) {
	var params struct {
		WordCount int `json:"wordCount"`
	}
	if err := decodeObjectParams(rawParams, &params); err != nil {
		return nil, rpcInvalidParams("")
	}
	if err := validate.WordCount("wordCount", params.WordCount); err != nil {
		return nil, s.serviceError(err)
	}

	entropy, err := secrets.GenerateEntropy(params.WordCount)
	if err != nil {
		return nil, s.serviceError(err)
	}
	mnemonic, err := secrets.EntropyToMnemonic(entropy)
	if err != nil {
		secrets.Zero(entropy)
		return nil, s.serviceError(err)
	}
	seed, err := secrets.MnemonicToSeed(mnemonic)
	if err != nil {
		secrets.Zero(entropy)
		return nil, s.serviceError(err)
	}

	encrypted, err := secrets.EncryptSecrets(seed, entropy)
	if err != nil {
		return nil, s.serviceError(err)
	}
	return encryptedSecretsResult{
		EncryptionKey:          encrypted.Key,
		EncryptedSeedBuffer:    encrypted.Seed,
		EncryptedEntropyBuffer: encrypted.Entropy,
	}, nil
}

func (s *Server) handleGetMnemonicFromEntropy(rawParams json.RawMessage) (any, *rpcError) {
	var params struct {
		EncryptedEntropy string `json:"encryptedEntropy"`
		EncryptionKey    string `json:"encryptionKey"`
	}
	if err := decodeObjectParams(rawParams, &params); err != nil {
		return nil, rpcInvalidParams("")
	}
	if err := validate.NonEmptyString("encryptedEntropy", params.EncryptedEntropy); err != nil {
		return nil, s.serviceError(err)
	}
	if err := validate.NonEmptyString("encryptionKey", params.EncryptionKey); err != nil {
		return nil, s.serviceError(err)
	}

	entropy, err := secrets.Decrypt(params.EncryptedEntropy, params.EncryptionKey)
	if err != nil {
		return nil, s.serviceError(err)
	}
	mnemonic, err := secrets.EntropyToMnemonic(entropy)
	secrets.Zero(entropy)
	if err != nil {
		return nil, s.serviceError(err)
	}
	return map[string]string{"mnemonic": mnemonic}, nil
}

func (s *Server) handleSeedAndEntropyFromMnemonic(rawParams json.RawMessage) (any, *rpcError) {
	var params struct {
		Mnemonic string `json:"mnemonic"`
	}
	if err := decodeObjectParams(rawParams, &params); err != nil {
		return nil, rpcInvalidParams("")
	}
	words, err := validate.Mnemonic("mnemonic", params.Mnemonic)
	if err != nil {
		return nil, s.serviceError(err)
	}
	normalized := strings.Join(words, " ")

	entropy, err := secrets.MnemonicToEntropy(normalized)
	if err != nil {
		return nil, s.serviceError(err)
	}
	seed, err := secrets.MnemonicToSeed(normalized)
	if err != nil {
		secrets.Zero(entropy)
		return nil, s.serviceError(err)
	}

	encrypted, err := secrets.EncryptSecrets(seed, entropy)
	if err != nil {
		return nil, s.serviceError(err)
	}
	return encryptedSecretsResult{
		EncryptionKey:          encrypted.Key,
		EncryptedSeedBuffer:    encrypted.Seed,
		EncryptedEntropyBuffer: encrypted.Entropy,
	}, nil
}

func (s *Server) handleInitializeWDK(ctx context.Context, rawParams json.RawMessage) (any, *rpcError) {
	var params struct {
		Config        string `json:"config"`
		EncryptionKey string `json:"encryptionKey"`
		EncryptedSeed string `json:"encryptedSeed"`
	}
	if err := decodeObjectParams(rawParams, &params); err != nil {
		return nil, rpcInvalidParams("")
	}
	if err := validate.NonEmptyString("config", params.Config); err != nil {
		return nil, s.serviceError(err)
	}
	if err := validate.NonEmptyString("encryptionKey", params.EncryptionKey); err != nil {
		return nil, s.serviceError(err)
	}
	if err := validate.NonEmptyString("encryptedSeed", params.EncryptedSeed); err != nil {
		return nil, s.serviceError(err)
	}

	if err := s.sessions.Initialize(ctx, params.EncryptionKey, params.EncryptedSeed, params.Config); err != nil {
		return nil, s.serviceError(err)
	}
	return map[string]string{"status": "initialized"}, nil
}

func (s *Server) handleCallMethod(ctx context.Context, rawParams json.RawMessage) (any, *rpcError) {
	var params struct {
		MethodName   string `json:"methodName"`
		Network      string `json:"network"`
		AccountIndex *int   `json:"accountIndex"`
		Args         string `json:"args"`
	}
	if err := decodeObjectParams(rawParams, &params); err != nil {
		return nil, rpcInvalidParams("")
	}
	if params.AccountIndex == nil {
		return nil, s.serviceError(wdkerr.New(wdkerr.KindBadRequest, "accountIndex is required"))
	}

	result, err := s.dispatcher.Call(ctx, params.MethodName, params.Network, *params.AccountIndex, params.Args)
	if err != nil {
		return nil, s.serviceError(err)
	}
	return map[string]string{"result": result}, nil
}
