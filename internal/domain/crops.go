package domain

import "strings"

// Crop identifies an entry in the fixed crop catalog.
type Crop string

const (
	CropRiceStorage Crop = "rice_storage"
	CropPotato      Crop = "potato"
	CropMaize       Crop = "maize"
	CropPaddy       Crop = "paddy"
	CropTomato      Crop = "tomato"
	CropOnion       Crop = "onion"
	CropWheat       Crop = "wheat"
	CropVegetable   Crop = "vegetable"

	// CropGeneric is the fallback for unrecognized free text. Its advisories
	// interpolate the literal crop name the farmer typed.
	CropGeneric Crop = "generic"
)

// cropSynonyms binds a catalog crop to its Bangla and English synonyms.
type cropSynonyms struct {
	crop     Crop
	synonyms []string
}

// cropCatalog is scanned linearly; the first synonym contained in the input
// wins. Ordering is part of the contract: rice storage must precede paddy
// because "চাল/ধান মজুদ" and "rice storage" contain the plain rice synonyms.
var cropCatalog = []cropSynonyms{
	{CropRiceStorage, []string{"চাল/ধান মজুদ", "ধান মজুদ", "rice storage", "storage"}},
	{CropPotato, []string{"আলু", "potato"}},
	{CropMaize, []string{"ভুট্টা", "maize", "corn"}},
	{CropPaddy, []string{"ধান", "paddy", "rice"}},
	{CropTomato, []string{"টমেটো", "tomato"}},
	{CropOnion, []string{"পেঁয়াজ", "onion"}},
	{CropWheat, []string{"গম", "wheat"}},
	{CropVegetable, []string{"শাকসবজি", "সবজি", "vegetable"}},
}

// ResolveCrop maps free-text crop input (Bangla or English) to a catalog crop
// by case-insensitive substring containment in fixed priority order.
// Unmatched text resolves to CropGeneric.
func ResolveCrop(text string) Crop {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return CropGeneric
	}
	for _, entry := range cropCatalog {
		for _, syn := range entry.synonyms {
			if strings.Contains(key, syn) {
				return entry.crop
			}
		}
	}
	return CropGeneric
}
