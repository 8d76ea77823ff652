package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type keyRecorder struct {
	keys  []string
	allow bool
}

func (k *keyRecorder) Allow(key string) bool {
	k.keys = append(k.keys, key)
	return k.allow
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remote     string
		trustProxy bool
		want       string
	}{
		{name: "forwarded first hop behind proxy", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.1:1234", trustProxy: true, want: "203.0.113.7"},
		{name: "real ip behind proxy", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, remote: "10.0.0.1:1234", trustProxy: true, want: "198.51.100.2"},
		{name: "proxy without headers", remote: "10.0.0.1:1234", trustProxy: true, want: "10.0.0.1"},
		{name: "forwarded ignored without proxy", headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "192.0.2.10:5678", want: "192.0.2.10"},
		{name: "real ip ignored without proxy", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, remote: "192.0.2.10:5678", want: "192.0.2.10"},
		{name: "remote without port", remote: "192.0.2.11", want: "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/generate", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := clientIP(req, tt.trustProxy); got != tt.want {
				t.Fatalf("expected %q got %q", tt.want, got)
			}
		})
	}
}

func TestAllowRequestScopesKey(t *testing.T) {
	if !allowRequest(nil, httptest.NewRequest(http.MethodPost, "/generate", nil), generateScope, false) {
		t.Fatal("expected nil limiter to allow")
	}

	limiter := &keyRecorder{allow: false}
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	req.RemoteAddr = "192.0.2.10:5678"

	if allowRequest(limiter, req, generateScope, false) {
		t.Fatal("expected limiter decision to be honoured")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "generate:192.0.2.10" {
		t.Fatalf("unexpected keys %v", limiter.keys)
	}
}

func TestRotatingForwardedForSharesOneKey(t *testing.T) {
	limiter := &keyRecorder{allow: true}
	for _, hop := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.RemoteAddr = "192.0.2.10:5678"
		req.Header.Set("X-Forwarded-For", hop)
		allowRequest(limiter, req, generateScope, false)
	}

	for _, key := range limiter.keys {
		if key != "generate:192.0.2.10" {
			t.Fatalf("expected every request keyed on the socket address got %v", limiter.keys)
		}
	}
}
