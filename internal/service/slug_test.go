package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Vail Resort", "vail-resort"},
		{"trailing punctuation", "Crested Butte!!", "crested-butte"},
		{"leading and trailing spaces", "  Park City  ", "park-city"},
		{"digits preserved", "49 Degrees North", "49-degrees-north"},
		{"punctuation runs collapse", "Big Sky -- Montana", "big-sky-montana"},
		{"already a slug", "jackson-hole", "jackson-hole"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
