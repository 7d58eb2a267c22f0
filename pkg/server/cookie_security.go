package server

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// cookieSecureFlag reports whether the visitor cookie is marked Secure.
// With SecureCookies on, an insecure request yields
// ErrSecureCookiesRequired and no cookie is issued.
func (s *Server) cookieSecureFlag(r *http.Request) (bool, error) {
	if !s.config.SecureCookies {
		return false, nil
	}
	if s.isRequestSecure(r) {
		return true, nil
	}
	return false, ErrSecureCookiesRequired
}

func (s *Server) isRequestSecure(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	if !s.trustedProxies.IsTrusted(remoteIPFromRequest(r)) {
		return false
	}

	if proto := forwardedProto(r.Header.Get("Forwarded")); proto != "" {
		return isSecureProto(proto)
	}
	if proto := firstHeaderValue(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		return isSecureProto(proto)
	}
	return false
}

// forwardedProto extracts proto= from the first element of an RFC 7239
// Forwarded header.
func forwardedProto(header string) string {
	first, _, _ := strings.Cut(header, ",")
	for _, param := range strings.Split(first, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(key, "proto") {
			continue
		}
		return strings.ToLower(strings.Trim(strings.TrimSpace(value), "\""))
	}
	return ""
}

func firstHeaderValue(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.ToLower(strings.Trim(strings.TrimSpace(first), "\""))
}

func isSecureProto(proto string) bool {
	return proto == "https" || proto == "wss"
}

func remoteIPFromRequest(r *http.Request) net.IP {
	host := strings.TrimSpace(r.RemoteAddr)
	if host == "" {
		return nil
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if zone := strings.Index(host, "%"); zone != -1 {
		host = host[:zone]
	}
	return net.ParseIP(host)
}

// proxyMatcher matches remote addresses against trusted proxy IPs and
// networks. A nil matcher trusts nobody.
type proxyMatcher struct {
	ips  map[string]struct{}
	nets []*net.IPNet
}

func newProxyMatcher(entries []string, logger *slog.Logger) *proxyMatcher {
	ips := make(map[string]struct{})
	var nets []*net.IPNet

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			_, network, err := net.ParseCIDR(entry)
			if err != nil {
				logger.Warn("invalid trusted proxy CIDR", "entry", entry, "error", err)
				continue
			}
			nets = append(nets, network)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			logger.Warn("invalid trusted proxy IP", "entry", entry)
			continue
		}
		ips[ip.String()] = struct{}{}
	}

	if len(ips) == 0 && len(nets) == 0 {
		return nil
	}
	return &proxyMatcher{ips: ips, nets: nets}
}

func (m *proxyMatcher) IsTrusted(ip net.IP) bool {
	if m == nil || ip == nil {
		return false
	}
	if _, ok := m.ips[ip.String()]; ok {
		return true
	}
	for _, network := range m.nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
