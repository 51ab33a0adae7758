package entity

// Category is the fixed topic taxonomy assigned to every article.
// Matching happens in a fixed priority order; the first category whose
// keyword set matches the article body wins.
type Category string

const (
	CategorySports     Category = "Spor Haberleri"
	CategorySlots      Category = "Slot Oyunları"
	CategoryRegulation Category = "Yasal Düzenlemeler"
	CategoryCrypto     Category = "Kripto Casino"
	CategoryBonus      Category = "Bonus Kampanyaları"
	CategoryGeneral    Category = "Genel iGaming"
)

// Categories lists all valid categories in their matching priority order.
// CategoryGeneral is the fallback and matches everything.
var Categories = []Category{
	CategorySports,
	CategorySlots,
	CategoryRegulation,
	CategoryCrypto,
	CategoryBonus,
	CategoryGeneral,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
