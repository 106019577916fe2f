package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"single char rejected", "a", "", ErrQueryTooShort},
		{"two chars accepted", "ab", "ab", nil},
		{"whitespace only", "   ", "", ErrQueryTooShort},
		{"trimmed to one char", "  a  ", "", ErrQueryTooShort},
		{"whitespace collapsed", "  sore   throat\t\nrelief ", "sore throat relief", nil},
		{"markup stripped", "<b>headache</b>", "headache", nil},
		{"script removed", "<script>alert(1)</script>sleep", "sleep", nil},
		{"exactly max", strings.Repeat("x", MaxQueryLength), strings.Repeat("x", MaxQueryLength), nil},
		{"over max", strings.Repeat("x", MaxQueryLength+1), "", ErrQueryTooLong},
		{"counts runes not bytes", "été", "été", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateQuery(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateQuery(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
