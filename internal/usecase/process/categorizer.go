package process

import (
	"strings"

	"betpress/internal/domain/entity"
)

// categoryKeywords pairs each category with its trigger words. Order matters:
// the first category whose keyword set matches wins, so sports outranks
// slots, regulation outranks crypto, and so on. Matching is done on the
// lower-cased body text.
var categoryKeywords = []struct {
	category entity.Category
	keywords []string
}{
	{entity.CategorySports, []string{
		"futbol", "basketbol", "maç", "lig", "süper lig", "şampiyonlar ligi",
		"derbi", "transfer", "teknik direktör", "milli takım", "tenis",
		"galatasaray", "fenerbahçe", "beşiktaş", "trabzonspor",
		"spor bahis", "iddaa", "canlı bahis", "oran",
	}},
	{entity.CategorySlots, []string{
		"slot", "jackpot", "makara", "rtp", "megaways", "free spin",
		"bedava dönüş", "pragmatic play", "netent", "play'n go",
	}},
	{entity.CategoryRegulation, []string{
		"yasa", "düzenleme", "lisans", "regülasyon", "denetim", "yasak",
		"mevzuat", "vergi", "kanun", "btk", "kurul",
	}},
	{entity.CategoryCrypto, []string{
		"kripto", "bitcoin", "ethereum", "blockchain", "stablecoin",
		"kripto casino", "btc", "usdt", "cüzdan",
	}},
	{entity.CategoryBonus, []string{
		"bonus", "promosyon", "kampanya", "freebet", "çevrim şartı",
		"hoş geldin", "kayıp iadesi", "cashback",
	}},
}

// Categorize maps article body text to one of the fixed categories.
// Deterministic, first match in priority order wins, default is general.
func Categorize(body string) entity.Category {
	lowered := strings.ToLower(body)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				return entry.category
			}
		}
	}
	return entity.CategoryGeneral
}
