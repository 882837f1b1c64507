package redirect

import "testing"

func TestClientIP(t *testing.T) {
	tests := []struct {
		name         string
		forwardedFor string
		realIP       string
		cfIP         string
		remoteAddr   string
		want         string
	}{
		{"forwarded-for single", "203.0.113.7", "", "", "10.0.0.1:1234", "203.0.113.7"},
		{"forwarded-for first hop only", "203.0.113.7, 70.41.3.18, 150.172.238.178", "", "", "", "203.0.113.7"},
		{"forwarded-for trims whitespace", "  203.0.113.7 , 70.41.3.18", "", "", "", "203.0.113.7"},
		{"real-ip fallback", "", "198.51.100.2", "", "10.0.0.1:1234", "198.51.100.2"},
		{"cf-connecting-ip fallback", "", "", "198.51.100.3", "10.0.0.1:1234", "198.51.100.3"},
		{"remote addr strips port", "", "", "", "192.0.2.9:5555", "192.0.2.9"},
		{"remote addr without port", "", "", "", "192.0.2.9", "192.0.2.9"},
		{"nothing resolves", "", "", "", "", Unknown},
		{"priority order", "203.0.113.7", "198.51.100.2", "198.51.100.3", "192.0.2.9:1", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClientIP(tt.forwardedFor, tt.realIP, tt.cfIP, tt.remoteAddr)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
