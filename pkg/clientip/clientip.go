// Package clientip resolves the originating client address of a request.
//
// Proxy headers are consulted in order: CF-Connecting-IP, the first valid
// entry of X-Forwarded-For, X-Real-IP. RemoteAddr is the fallback. Only
// deploy behind a proxy that overwrites these headers; otherwise clients can
// choose their own rate-limit identity.
package clientip

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type contextKey struct{}

// GetIP returns the normalized client IP or "" if none can be parsed.
func GetIP(r *http.Request) string {
	if ip := parseIP(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for candidate := range strings.SplitSeq(forwarded, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware resolves the IP once and stores it in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithIP(r.Context(), GetIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// GetIPFromContext returns the IP stored by Middleware or "".
func GetIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
