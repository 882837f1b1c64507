package redirect

import "testing"

func TestClassify_Browser(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		// Chrome UAs also contain "safari"; Chrome must win the tie-break.
		{"chrome beats safari token", "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0 Safari/537.36", "Chrome"},
		{"plain safari", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15) AppleWebKit/605.1.15 Version/14.0 Safari/605.1.15", "Safari"},
		{"firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:89.0) Gecko/20100101 Firefox/89.0", "Firefox"},
		// Edge UAs contain "chrome" too; the edg exclusion routes them here.
		{"edge", "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/91.0 Safari/537.36 Edg/91.0", "Edge"},
		{"unknown", "curl/7.68.0", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ua).Browser; got != tt.want {
				t.Errorf("browser for %q: got %q, want %q", tt.ua, got, tt.want)
			}
		})
	}
}

func TestClassify_Device(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"mobile", "Mozilla/5.0 (iPhone; CPU iPhone OS 14_6) Mobile/15E148", "Mobile"},
		{"tablet", "Mozilla/5.0 (Tablet; rv:68.0) Gecko/68.0 Firefox/68.0", "Tablet"},
		{"desktop default", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "Desktop"},
		{"empty defaults to desktop", "", "Desktop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ua).Device; got != tt.want {
				t.Errorf("device for %q: got %q, want %q", tt.ua, got, tt.want)
			}
		})
	}
}

func TestClassify_OS(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "Windows"},
		{"macos", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", "macOS"},
		{"linux", "Mozilla/5.0 (X11; Linux x86_64)", "Linux"},
		// "Linux; Android" strings classify as Linux: the OS rules run in
		// fixed order and Linux is checked before Android.
		{"android behind linux", "Mozilla/5.0 (Linux; Android 10) Mobile", "Linux"},
		{"android without linux token", "Dalvik/2.1.0 (Android 11; Pixel 4)", "Android"},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 14_6)", "iOS"},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 14_6)", "iOS"},
		{"unknown", "curl/7.68.0", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ua).OS; got != tt.want {
				t.Errorf("os for %q: got %q, want %q", tt.ua, got, tt.want)
			}
		})
	}
}

func TestClassify_Total(t *testing.T) {
	got := Classify("")
	if got.Device != "Desktop" || got.Browser != Unknown || got.OS != Unknown {
		t.Errorf("empty UA should hit all fallbacks, got %+v", got)
	}
}
