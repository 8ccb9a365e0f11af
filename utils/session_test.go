package utils

import "testing"

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name        string
		userAgent   string
		wantBrowser string
		wantOS      string
		wantDevice  string
	}{
		{
			name:        "Chrome on Windows",
			userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.131 Safari/537.36",
			wantBrowser: "Chrome",
			wantOS:      "Windows",
			wantDevice:  "Desktop",
		},
		{
			name:        "Safari on iPhone",
			userAgent:   "Mozilla/5.0 (iPhone; CPU iPhone OS 14_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0.3 Mobile/15E148 Safari/604.1",
			wantBrowser: "Safari",
			wantOS:      "iOS",
			wantDevice:  "iPhone",
		},
		{
			name:        "Empty User Agent",
			userAgent:   "",
			wantBrowser: "Unknown Browser",
			wantOS:      "Unknown OS",
			wantDevice:  "Desktop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser, os, device := ParseUserAgent(tt.userAgent)
			if browser != tt.wantBrowser {
				t.Errorf("ParseUserAgent() browser = %q, want %q", browser, tt.wantBrowser)
			}
			if os != tt.wantOS {
				t.Errorf("ParseUserAgent() os = %q, want %q", os, tt.wantOS)
			}
			if device != tt.wantDevice {
				t.Errorf("ParseUserAgent() device = %q, want %q", device, tt.wantDevice)
			}
		})
	}
}

func TestGenerateSessionName(t *testing.T) {
	got := GenerateSessionName("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.131 Safari/537.36")
	if got != "Chrome on Windows" {
		t.Errorf("GenerateSessionName() = %q, want %q", got, "Chrome on Windows")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid password", "secret1!", true},
		{"too short", "a1!", false},
		{"no number", "secrets!", false},
		{"no special character", "secret12", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePassword(tt.password); got != tt.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestGenerateRecoveryCodes(t *testing.T) {
	codes, err := GenerateRecoveryCodes()
	if err != nil {
		t.Fatalf("GenerateRecoveryCodes() error: %v", err)
	}
	if len(codes) != NumRecoveryCodes {
		t.Fatalf("got %d codes, want %d", len(codes), NumRecoveryCodes)
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		if len(code) != RecoveryCodeLength+1 {
			t.Errorf("code %q has wrong length", code)
		}
		if code[4] != '-' {
			t.Errorf("code %q missing separator", code)
		}
		if seen[code] {
			t.Errorf("duplicate code %q", code)
		}
		seen[code] = true
	}

	hashed := HashRecoveryCodes(codes)
	if len(hashed) != len(codes) {
		t.Fatalf("got %d hashes, want %d", len(hashed), len(codes))
	}
	for i, h := range hashed {
		if h != HashString(codes[i]) {
			t.Errorf("hash mismatch for code %d", i)
		}
		if h == codes[i] {
			t.Errorf("code %d stored in plain text", i)
		}
	}
}
