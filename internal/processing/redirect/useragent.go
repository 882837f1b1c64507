package redirect

import "strings"

// uaRule pairs an ordered predicate with its label. Order is load-bearing:
// engine tokens overlap (Chrome-based browsers include "safari", Edge
// includes "chrome"), so the first matching rule wins.
type uaRule struct {
	match func(ua string) bool
	label string
}

func contains(sub string) func(string) bool {
	return func(ua string) bool { return strings.Contains(ua, sub) }
}

func containsAny(subs ...string) func(string) bool {
	return func(ua string) bool {
		for _, sub := range subs {
			if strings.Contains(ua, sub) {
				return true
			}
		}
		return false
	}
}

var deviceRules = []uaRule{
	{contains("mobile"), "Mobile"},
	{contains("tablet"), "Tablet"},
}

var browserRules = []uaRule{
	{func(ua string) bool { return strings.Contains(ua, "chrome") && !strings.Contains(ua, "edg") }, "Chrome"},
	{func(ua string) bool { return strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome") }, "Safari"},
	{contains("firefox"), "Firefox"},
	{contains("edg"), "Edge"},
	{containsAny("opera", "opr"), "Opera"},
}

var osRules = []uaRule{
	{contains("windows"), "Windows"},
	{contains("mac"), "macOS"},
	{contains("linux"), "Linux"},
	{contains("android"), "Android"},
	{containsAny("iphone", "ipad"), "iOS"},
}

func firstMatch(rules []uaRule, ua, fallback string) string {
	for _, r := range rules {
		if r.match(ua) {
			return r.label
		}
	}
	return fallback
}

// Classify tags a raw user-agent string with device, browser and OS
// categories. Pure, case-insensitive and total: unrecognized strings fall
// back to Desktop/Unknown/Unknown.
func Classify(userAgent string) Classification {
	ua := strings.ToLower(userAgent)
	return Classification{
		Device:  firstMatch(deviceRules, ua, "Desktop"),
		Browser: firstMatch(browserRules, ua, Unknown),
		OS:      firstMatch(osRules, ua, Unknown),
	}
}
