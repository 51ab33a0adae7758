package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"betpress/internal/utils/text"
)

func TestParagraphsToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single paragraph",
			input:    "Tek paragraf.",
			expected: "<p>Tek paragraf.</p>",
		},
		{
			name:     "two paragraphs",
			input:    "Birinci paragraf.\n\nİkinci paragraf.",
			expected: "<p>Birinci paragraf.</p>\n<p>İkinci paragraf.</p>",
		},
		{
			name:     "inner newline flattened",
			input:    "Satır bir\nsatır iki.",
			expected: "<p>Satır bir satır iki.</p>",
		},
		{
			name:     "windows line endings",
			input:    "Bir.\r\n\r\nİki.",
			expected: "<p>Bir.</p>\n<p>İki.</p>",
		},
		{
			name:     "html escaped",
			input:    "a < b & c",
			expected: "<p>a &lt; b &amp; c</p>",
		},
		{
			name:     "blank paragraphs dropped",
			input:    "Bir.\n\n\n\n\n\nİki.",
			expected: "<p>Bir.</p>\n<p>İki.</p>",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.ParagraphsToHTML(tt.input))
		})
	}
}
