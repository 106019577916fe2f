package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.10 ", "2001:db8::/32", "garbage", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.20.30.40", true},
		{"192.168.1.10", true},
		{"192.168.1.11", false},
		{"::ffff:10.1.1.1", true},
		{"2001:db8::1", true},
		{"2001:db9::1", false},
		{"not-an-ip", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher([]string{"garbage"}).IsEmpty() {
		t.Error("matcher with only invalid entries should be empty")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "1.2.3.4:5678", nil, false, "1.2.3.4"},
		{"headers ignored without trust", "1.2.3.4:5678", map[string]string{"X-Forwarded-For": "9.9.9.9"}, false, "1.2.3.4"},
		{"forwarded first hop", "1.2.3.4:5678", map[string]string{"X-Forwarded-For": " 9.9.9.9 , 8.8.8.8"}, true, "9.9.9.9"},
		{"cloudflare wins", "1.2.3.4:5678", map[string]string{"CF-Connecting-IP": "7.7.7.7", "X-Forwarded-For": "9.9.9.9"}, true, "7.7.7.7"},
		{"real ip", "1.2.3.4:5678", map[string]string{"X-Real-IP": "6.6.6.6"}, true, "6.6.6.6"},
		{"v6 remote", "[::1]:80", nil, false, "::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
