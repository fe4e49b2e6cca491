package utils

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// NormalizeURL normalizes a mirror URL so equal locations compare equal
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.Contains(rawURL, "://") && !strings.HasPrefix(rawURL, "//") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	if u.Scheme == "" {
		u.Scheme = "https"
	}
	u.Host = strings.ToLower(u.Host)

	if (u.Scheme == "http" && u.Port() == "80") ||
		(u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}

	if u.Path == "" {
		u.Path = "/"
	} else {
		u.Path = path.Clean(u.Path)
	}

	u.Fragment = ""

	return u.String(), nil
}

// IsHTTPURL checks if a URL uses HTTP or HTTPS scheme
func IsHTTPURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// GetDomain extracts the host from a URL
func GetDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// NormalizeMirrors normalizes every URL of a mirror list, keeping its order.
// It fails on the first entry that is not an absolute HTTP(S) URL.
func NormalizeMirrors(mirrors []string) ([]string, error) {
	out := make([]string, 0, len(mirrors))
	for _, m := range mirrors {
		if !IsHTTPURL(strings.TrimSpace(m)) {
			return nil, fmt.Errorf("not an http(s) url: %q", m)
		}
		normalized, err := NormalizeURL(m)
		if err != nil {
			return nil, fmt.Errorf("invalid url %q: %w", m, err)
		}
		out = append(out, normalized)
	}
	return out, nil
}
