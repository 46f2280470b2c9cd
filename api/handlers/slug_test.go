package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Toyota Land Cruiser", "toyota-land-cruiser"},
		{"punctuation stripped", "Economy (Small)!", "economy-small"},
		{"repeated separators collapse", "4x4  --  Off Road", "4x4-off-road"},
		{"leading and trailing junk", "  ...Luxury SUV...  ", "luxury-suv"},
		{"numbers kept", "Model 3 2024", "model-3-2024"},
		{"already a slug", "city-car", "city-car"},
		{"empty", "", ""},
		{"only junk", "!!! ???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}
