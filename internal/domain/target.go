package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseTarget parses a probe target. Only absolute http(s) URLs with a host
// are accepted; "localhost:8080" is rejected.
func ParseTarget(target string) (*url.URL, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return nil, fmt.Errorf("empty target")
	}
	u, err := url.Parse(t)
	if err != nil {
		return nil, fmt.Errorf("target %q: %v", t, err)
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("target %q must be an absolute http(s) URL", t)
	}
	return u, nil
}

// MaskTarget hides a password embedded in the target URL. Anything that does
// not parse is returned unchanged.
func MaskTarget(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.User == nil {
		return target
	}
	return u.Redacted()
}
