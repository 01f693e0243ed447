package rpc

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// authorizeRPC enforces the optional bearer token. When no token is
// configured the boundary is open, which is only acceptable on loopback
// deployments; the server logs a warning at startup in that case.
func (s *Server) authorizeRPC(w http.ResponseWriter, r *http.Request) bool {
	if s.rpcToken == "" {
		return true
	}
	supplied := s.extractRPCToken(r)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(s.rpcToken)) == 1 {
		return true
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
	return false
}

func (s *Server) extractRPCToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get("X-WDK-RPC-Token"))
}
