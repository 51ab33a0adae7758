package text_test

import (
	"testing"

	"betpress/internal/utils/text"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain ascii", "hello world", "hello-world"},
		{"turkish dotted capital I", "İstanbul", "istanbul"},
		{"turkish dotless i", "Bahis Sırları", "bahis-sirlari"},
		{"full turkish alphabet", "Çğİıöşü Özel", "cgiiosu-ozel"},
		{"punctuation collapsed", "Casino -- Bonus!!! (2024)", "casino-bonus-2024"},
		{"leading and trailing junk", "  ---Slot Oyunları---  ", "slot-oyunlari"},
		{"digits kept", "En İyi 10 Site", "en-iyi-10-site"},
		{"circumflex", "Kâr Rekoru", "kar-rekoru"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	const title = "Kripto Casino Dünyasında Büyük Gelişme"
	first := text.Slugify(title)
	for i := 0; i < 5; i++ {
		if got := text.Slugify(title); got != first {
			t.Fatalf("Slugify not deterministic: %q != %q", got, first)
		}
	}
}
