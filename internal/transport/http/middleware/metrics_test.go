package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			"UUID replacement",
			"/api/links/550e8400-e29b-41d4-a716-446655440000",
			"/api/links/:id",
		},
		{
			"numeric ID replacement",
			"/api/partners/12345",
			"/api/partners/:id",
		},
		{
			"no change for code path",
			"/abcXYZ",
			"/abcXYZ",
		},
		{
			"root path unchanged",
			"/",
			"/",
		},
		{
			"health endpoint unchanged",
			"/health",
			"/health",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizePath(tt.path)
			if got != tt.want {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
