package respond

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		notWant string
		want    string
	}{
		{
			name:    "anthropic key",
			in:      "rewrite failed: invalid api key sk-ant-api03-abc123def",
			notWant: "abc123def",
			want:    "sk-ant-***",
		},
		{
			name:    "openai key",
			in:      "auth error for sk-proj1234567890abcdefghij",
			notWant: "proj1234567890",
			want:    "sk-***",
		},
		{
			name:    "dsn password",
			in:      "connect postgres://app:s3cret@db:5432/betpress",
			notWant: "s3cret",
			want:    "postgres://app:***@db:5432/betpress",
		},
		{
			name:    "keyword password",
			in:      "config: password=hunter2 host=db",
			notWant: "hunter2",
			want:    "password=***",
		},
		{
			name:    "slack webhook",
			in:      "post https://hooks.slack.com/services/T000/B000/xyz: timeout",
			notWant: "T000",
			want:    "https://hooks.slack.com/services/***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if strings.Contains(got, tt.notWant) {
				t.Errorf("Sanitize(%q) = %q, still contains %q", tt.in, got, tt.notWant)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Sanitize(%q) = %q, want substring %q", tt.in, got, tt.want)
			}
		})
	}
}
