package proxy

import (
	"fmt"
	"net/url"
)

// Settings describes the upstream HTTP proxy used for browser
// fetches of courier pages that block datacenter traffic.
type Settings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// HasProxy reports whether a usable proxy is configured.
func (p Settings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// HostPort returns the credential-free proxy URL, suitable for
// logging and for passing to a browser that authenticates separately.
func (p Settings) HostPort() string {
	if !p.HasProxy() {
		return ""
	}
	return fmt.Sprintf("http://%s:%d", p.Hostname, p.Port)
}

// FullURL returns the proxy URL with credentials embedded, escaped
// for safe inclusion in a URL.
func (p Settings) FullURL() string {
	if !p.HasProxy() {
		return ""
	}

	u := url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", p.Hostname, p.Port),
	}
	if p.Username != "" && p.Password != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u.String()
}
