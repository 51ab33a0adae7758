package rewriter

import "fmt"

// Input longer than this is truncated before prompting to stay clear of
// token limits on both providers.
const maxPromptChars = 10000

const truncationNotice = "...\n(içerik uzun olduğu için kısaltıldı)"

func truncateForPrompt(s string) string {
	if len(s) <= maxPromptChars {
		return s
	}
	return s[:maxPromptChars] + truncationNotice
}

// buildRewritePrompt asks for a Turkish rewrite in three labeled sections.
// The markers are parsed literally by parser.go, so they must stay in sync.
func buildRewritePrompt(title, content string) string {
	return fmt.Sprintf(`Sen casino, bahis ve iGaming sektöründe uzman bir Türk haber editörüsün.
Aşağıdaki haberi Türkçeye çevirerek SEO uyumlu, özgün bir haber metni olarak yeniden yaz.

Kurallar:
- Akıcı ve profesyonel bir haber dili kullan.
- Bilgileri koru, kopyalama; kendi cümlelerinle yeniden anlat.
- Ana içeriği paragraflara böl, paragraflar arasında boş satır bırak.
- Cevabını TAM OLARAK şu biçimde ver:

BAŞLIK: [haberin Türkçe başlığı]
KISA AÇIKLAMA: [1-2 cümlelik özet]
ANA İÇERİK: [haberin tam metni]

Kaynak başlık: %s

Kaynak içerik:
%s`, title, truncateForPrompt(content))
}

// buildMetadataPrompt asks for SEO fields for the rewritten article.
func buildMetadataPrompt(title, body string) string {
	return fmt.Sprintf(`Aşağıdaki Türkçe habere SEO meta verileri hazırla.

Kurallar:
- SEO başlığı en fazla 60 karakter olsun.
- Meta açıklama en fazla 155 karakter olsun.
- 4 ile 6 arasında, virgülle ayrılmış etiket ver.
- Cevabını TAM OLARAK şu biçimde ver:

SEO BAŞLIK: [başlık]
META AÇIKLAMA: [açıklama]
ETİKETLER: [etiket1, etiket2, etiket3, etiket4]

Haber başlığı: %s

Haber metni:
%s`, title, truncateForPrompt(body))
}
