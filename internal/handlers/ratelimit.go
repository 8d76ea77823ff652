package handlers

import (
	"net"
	"net/http"
	"strings"
)

const generateScope = "generate"

// RateLimiter reports whether the caller identified by key may proceed.
type RateLimiter interface {
	Allow(key string) bool
}

// allowRequest keys the limiter by scope and client address. A nil limiter admits everything.
func allowRequest(limiter RateLimiter, r *http.Request, scope string, trustProxy bool) bool {
	if limiter == nil {
		return true
	}
	key := clientIP(r, trustProxy)
	if scope != "" {
		key = scope + ":" + key
	}
	return limiter.Allow(key)
}

// clientIP returns the socket address of the caller. Behind a trusted proxy it prefers the first
// X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := forwardedIP(r); ip != "" {
			return ip
		}
	}

	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}

func forwardedIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Real-IP"))
}
