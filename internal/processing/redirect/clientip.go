package redirect

import (
	"net"
	"strings"
)

// ClientIP derives the visitor address from proxy headers in strict priority
// order: X-Forwarded-For (first hop only), X-Real-Ip, CF-Connecting-Ip, then
// the raw socket address. "Unknown" when nothing resolves.
func ClientIP(forwardedFor, realIP, cfConnectingIP, remoteAddr string) string {
	if forwardedFor = strings.TrimSpace(forwardedFor); forwardedFor != "" {
		first := forwardedFor
		if i := strings.Index(forwardedFor, ","); i >= 0 {
			first = forwardedFor[:i]
		}
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP = strings.TrimSpace(realIP); realIP != "" {
		return realIP
	}
	if cfConnectingIP = strings.TrimSpace(cfConnectingIP); cfConnectingIP != "" {
		return cfConnectingIP
	}

	remoteAddr = strings.TrimSpace(remoteAddr)
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
		return host
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return Unknown
}
