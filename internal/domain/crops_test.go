package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCrop(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Crop
	}{
		{"bangla potato", "আলু", CropPotato},
		{"english potato", "potato", CropPotato},
		{"substring match", "Potato Plant", CropPotato},
		{"case insensitive", "POTATO", CropPotato},
		{"bangla paddy", "ধান", CropPaddy},
		{"english rice", "rice", CropPaddy},
		{"bangla maize", "ভুট্টা", CropMaize},
		{"corn synonym", "sweet corn", CropMaize},
		{"tomato", "টমেটো", CropTomato},
		{"onion", "পেঁয়াজ", CropOnion},
		{"wheat", "গম", CropWheat},
		{"vegetable", "শাকসবজি", CropVegetable},
		{"short vegetable synonym", "সবজি", CropVegetable},
		{"unknown falls back", "Quinoa", CropGeneric},
		{"empty falls back", "", CropGeneric},
		{"whitespace falls back", "   ", CropGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveCrop(tt.input))
		})
	}
}

// Catalog order is part of the contract: storage synonyms contain the plain
// rice synonyms, so rice storage must win when both could match.
func TestResolveCropPriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Crop
	}{
		{"bangla rice storage before paddy", "চাল/ধান মজুদ", CropRiceStorage},
		{"bangla storage shorthand", "ধান মজুদ", CropRiceStorage},
		{"english rice storage before rice", "rice storage", CropRiceStorage},
		{"bare storage", "grain storage", CropRiceStorage},
		{"plain paddy still paddy", "ধান", CropPaddy},
		{"plain rice still paddy", "rice", CropPaddy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveCrop(tt.input))
		})
	}
}
