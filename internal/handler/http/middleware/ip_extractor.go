// Package middleware holds HTTP middleware that needs request-level
// context: client IP extraction and rate limiting.
package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor resolves the client IP for a request.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address. It is the safe default
// when the service is reached directly, since RemoteAddr cannot be
// spoofed by the client.
type RemoteAddrExtractor struct{}

func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return ipFromAddr(r.RemoteAddr)
}

// ForwardedExtractor honors X-Forwarded-For, but only when the request
// arrives from a trusted proxy CIDR. Untrusted peers fall back to
// RemoteAddr so the header cannot be used to dodge rate limits.
type ForwardedExtractor struct {
	trusted []netip.Prefix
}

// NewForwardedExtractor parses the trusted proxy CIDR list. Bare IPs are
// accepted and treated as single-host prefixes.
func NewForwardedExtractor(cidrs []string) (*ForwardedExtractor, error) {
	e := &ForwardedExtractor{}
	for _, raw := range cidrs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			addr, err := netip.ParseAddr(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
			}
			e.trusted = append(e.trusted, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		e.trusted = append(e.trusted, prefix)
	}
	return e, nil
}

func (e *ForwardedExtractor) ExtractIP(r *http.Request) (string, error) {
	peer, err := ipFromAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if !e.isTrusted(peer) {
		return peer, nil
	}

	// Leftmost entry is the original client; proxies append their own.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if addr, err := netip.ParseAddr(first); err == nil {
			return addr.String(), nil
		}
	}
	if xrip := strings.TrimSpace(r.Header.Get("X-Real-IP")); xrip != "" {
		if addr, err := netip.ParseAddr(xrip); err == nil {
			return addr.String(), nil
		}
	}
	return peer, nil
}

func (e *ForwardedExtractor) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range e.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ipFromAddr strips the port from an "IP:port" address. Addresses
// without a port are returned as-is when they parse as an IP.
func ipFromAddr(addr string) (string, error) {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host, nil
	}
	if parsed, err := netip.ParseAddr(addr); err == nil {
		return parsed.String(), nil
	}
	return "", fmt.Errorf("cannot extract IP from %q", addr)
}
