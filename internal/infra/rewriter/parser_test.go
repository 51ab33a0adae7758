package rewriter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fullRewriteResponse = `BAŞLIK: Süper Lig'de Şampiyonluk Yarışı Kızışıyor
KISA AÇIKLAMA: Ligin son haftalarına girilirken zirvede nefes kesen bir yarış yaşanıyor.
ANA İÇERİK: Süper Lig'de sezonun son düzlüğüne girildi.

Zirvedeki iki takım arasındaki puan farkı bire indi.`

func TestParseRewrite(t *testing.T) {
	got := ParseRewrite(fullRewriteResponse, "src title", "src content")

	assert.Equal(t, "Süper Lig'de Şampiyonluk Yarışı Kızışıyor", got.Title)
	assert.Equal(t, "Ligin son haftalarına girilirken zirvede nefes kesen bir yarış yaşanıyor.", got.Excerpt)
	assert.True(t, strings.HasPrefix(got.Body, "Süper Lig'de sezonun son düzlüğüne girildi."))
	assert.Contains(t, got.Body, "\n\n", "paragraph breaks survive parsing")
}

func TestParseRewrite_MissingMarkersFallBack(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantTitle   string
		wantBody    string
		wantExcerpt string
	}{
		{
			name:        "no markers at all",
			response:    "serbest metin, etiket yok",
			wantTitle:   "Kaynak Başlık",
			wantBody:    "Kaynak içerik metni.",
			wantExcerpt: "Kaynak içerik metni.",
		},
		{
			name:        "only title",
			response:    "BAŞLIK: Yeni Başlık",
			wantTitle:   "Yeni Başlık",
			wantBody:    "Kaynak içerik metni.",
			wantExcerpt: "Kaynak içerik metni.",
		},
		{
			name:        "only body",
			response:    "ANA İÇERİK: Yeniden yazılmış metin.",
			wantTitle:   "Kaynak Başlık",
			wantBody:    "Yeniden yazılmış metin.",
			wantExcerpt: "Yeniden yazılmış metin.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRewrite(tt.response, "Kaynak Başlık", "Kaynak içerik metni.")
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantBody, got.Body)
			assert.Equal(t, tt.wantExcerpt, got.Excerpt)
		})
	}
}

func TestParseRewrite_ExcerptFallbackTruncates(t *testing.T) {
	longBody := strings.Repeat("uzun kelime ", 40)
	got := ParseRewrite("ANA İÇERİK: "+longBody, "t", "c")
	assert.LessOrEqual(t, len([]rune(got.Excerpt)), 160)
	assert.True(t, strings.HasSuffix(got.Excerpt, "..."))
}

func TestParseMetadata(t *testing.T) {
	response := `SEO BAŞLIK: Şampiyonluk Yarışı Son Viraja Girdi
META AÇIKLAMA: Süper Lig'de zirve yarışının son durumu ve öne çıkan maçlar.
ETİKETLER: süper lig, şampiyonluk, bahis, futbol`

	got := ParseMetadata(response, "başlık", "gövde")
	assert.Equal(t, "Şampiyonluk Yarışı Son Viraja Girdi", got.MetaTitle)
	assert.Equal(t, "Süper Lig'de zirve yarışının son durumu ve öne çıkan maçlar.", got.MetaDescription)
	assert.Equal(t, []string{"süper lig", "şampiyonluk", "bahis", "futbol"}, got.Tags)
}

func TestParseMetadata_Fallbacks(t *testing.T) {
	got := ParseMetadata("cevap biçimsiz geldi", "Yedek Başlık", "Yedek gövde metni burada.")

	assert.Equal(t, "Yedek Başlık", got.MetaTitle)
	assert.Equal(t, "Yedek gövde metni burada.", got.MetaDescription)
	assert.Equal(t, defaultTags, got.Tags)
}

func TestParseMetadata_EnforcesLimits(t *testing.T) {
	response := "SEO BAŞLIK: " + strings.Repeat("a", 100) +
		"\nMETA AÇIKLAMA: " + strings.Repeat("b", 300) +
		"\nETİKETLER: bir, iki, üç, dört, beş, altı, yedi, sekiz"

	got := ParseMetadata(response, "t", "b")
	assert.LessOrEqual(t, len([]rune(got.MetaTitle)), maxMetaTitleLen)
	assert.LessOrEqual(t, len([]rune(got.MetaDescription)), maxMetaDescLen)
	assert.Len(t, got.Tags, 6, "tag list clamps at six")
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, parseTags(""))
	assert.Equal(t, []string{"casino", "slot"}, parseTags(" Casino ,, SLOT "))
}
