package pipeline

import (
	"net/url"
	"strings"
)

// DomainMatcher accepts URLs whose host is one of a fixed set of publisher
// domains or a subdomain of one
type DomainMatcher struct {
	domains []string
}

// NewDomainMatcher creates a matcher for the given domains
func NewDomainMatcher(domains []string) *DomainMatcher {
	m := &DomainMatcher{}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		d = strings.TrimPrefix(d, ".")
		if d != "" {
			m.domains = append(m.domains, d)
		}
	}
	return m
}

// Eligible reports whether rawURL belongs to a known publisher domain
func (m *DomainMatcher) Eligible(rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, d := range m.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
