package config

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// Reachable reports whether base accepts a TCP connection and answers an
// HTTP GET on any of paths. Redirects are not followed; any response counts.
func Reachable(base string, paths ...string) bool {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Host
	if u.Port() == "" {
		if u.Scheme == "https" {
			host = net.JoinHostPort(u.Hostname(), "443")
		} else {
			host = net.JoinHostPort(u.Hostname(), "80")
		}
	}

	d := net.Dialer{Timeout: 250 * time.Millisecond}
	conn, err := d.Dial("tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()

	if len(paths) == 0 {
		paths = []string{"/"}
	}
	client := &http.Client{
		Timeout: 800 * time.Millisecond,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	for _, path := range paths {
		resp, err := client.Get(base + path)
		if err == nil {
			_ = resp.Body.Close()
			return true
		}
	}
	return false
}
