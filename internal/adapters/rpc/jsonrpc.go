package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"wdk-wallet/go-daemon/internal/metrics"
	"wdk-wallet/go-daemon/internal/wdkerr"
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    *errorData `json:"data,omitempty"`
}

// errorData carries the boundary's error taxonomy across the wire. Cause is
// present only in development mode.
type errorData struct {
	Kind  string `json:"kind"`
	Cause string `json:"cause,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

const maxRPCBodyBytes int64 = 1 << 20 // 1 MiB

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeRPC(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.limiter.allow(rpcRateLimitKey(r, s.extractRPCToken(r)), time.Now()) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRPCBodyBytes)
	var req rpcRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeRPC(w, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: -32700, Message: "parse error"},
		})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeRPCInvalidRequest(w, req.ID)
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		writeRPCInvalidRequest(w, req.ID)
		return
	}

	reqID := fmt.Sprintf("rpc_%d", time.Now().UnixNano())
	started := time.Now()
	slog.Default().Info("rpc request", "request_id", reqID, "method", req.Method)

	result, rpcErr := s.dispatchRPC(r.Context(), req.Method, req.Params)
	latency := time.Since(started)
	kind := ""
	if rpcErr != nil {
		if rpcErr.Data != nil {
			kind = rpcErr.Data.Kind
		} else {
			kind = string(wdkerr.KindUnknown)
		}
		slog.Default().Error("rpc failed", "request_id", reqID, "method", req.Method, "rpc_code", rpcErr.Code, "kind", kind, "latency_ms", latency.Milliseconds())
	} else {
		slog.Default().Info("rpc response", "request_id", reqID, "method", req.Method, "latency_ms", latency.Milliseconds())
	}
	metrics.ObserveRequest(req.Method, kind, latency.Seconds())

	writeRPC(w, rpcResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   rpcErr,
	})
}

func writeRPC(w http.ResponseWriter, resp rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeRPCInvalidRequest(w http.ResponseWriter, id json.RawMessage) {
	writeRPC(w, rpcResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: -32600, Message: "invalid request"},
	})
}

func rpcMethodNotFound(method string) *rpcError {
	return &rpcError{Code: -32601, Message: fmt.Sprintf("method %q not found", method)}
}

func rpcInvalidParams(message string) *rpcError {
	if message == "" {
		message = "invalid params"
	}
	return &rpcError{
		Code:    -32602,
		Message: message,
		Data:    &errorData{Kind: string(wdkerr.KindBadRequest)},
	}
}

// serviceError maps a classified boundary error onto the wire. The kind and
// message always survive; the cause chain only in dev mode.
func (s *Server) serviceError(err error) *rpcError {
	wire := wdkerr.Serialize(err, s.devMode)
	return &rpcError{
		Code:    codeForKind(wdkerr.Kind(wire.Kind)),
		Message: wire.Message,
		Data:    &errorData{Kind: wire.Kind, Cause: wire.Cause},
	}
}

func codeForKind(kind wdkerr.Kind) int {
	switch kind {
	case wdkerr.KindBadRequest:
		return -32001
	case wdkerr.KindManagerInit:
		return -32002
	case wdkerr.KindAccountBalances:
		return -32003
	default:
		return -32000
	}
}
