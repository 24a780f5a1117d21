package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"travelgate/pkg/requestcontext"
)

// ClientMetadata stores the client IP and User-Agent in the request context.
// trustedHops is the number of reverse proxies in front of the service; see
// ClientIPFromRequest.
func ClientMetadata(trustedHops int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIPFromRequest(r, trustedHops)
			ctx := requestcontext.WithClientMetadata(r.Context(), ip, r.Header.Get("User-Agent"))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIPFromRequest resolves the caller's address for per-IP throttling.
// The hop chain is X-Forwarded-For followed by the peer address; the last
// trustedHops entries belong to our own proxies and the one before them is
// the client. Entries further left are client-supplied and never used, so
// with trustedHops == 0 the peer address is the answer.
func ClientIPFromRequest(r *http.Request, trustedHops int) string {
	chain := forwardedFor(r.Header.Values("X-Forwarded-For"))
	chain = append(chain, peerIP(r.RemoteAddr))

	i := len(chain) - 1 - max(trustedHops, 0)
	if i < 0 {
		i = 0
	}
	if chain[i] == "" {
		return "unknown"
	}
	return chain[i]
}

func forwardedFor(headers []string) []string {
	var hops []string
	for _, h := range headers {
		for part := range strings.SplitSeq(h, ",") {
			if p := strings.TrimSpace(part); p != "" {
				hops = append(hops, p)
			}
		}
	}
	return hops
}

// peerIP strips the port from RemoteAddr ("[::1]:port" for IPv6).
func peerIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return strings.TrimSpace(remoteAddr)
}

// DeviceDisplayName renders a short "Browser on OS" label for analytics events.
func DeviceDisplayName(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "Unknown Device"
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	os := ua.OSInfo().Name
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.Join(strings.Fields(browser+" on "+os), " ")
}
