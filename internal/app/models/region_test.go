package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRegion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"BA", "BA"},
		{"ba", "BA"},
		{"BA - Bratislavský kraj", "BA"},
		{"ke kosicky", "KE"},
		{"  tt  ", "TT"},
		{"NR kraj", "NR"},
		{"Bratislava", UnknownRegion}, // prefix must be the code itself
		{"Košice", UnknownRegion},
		{"", UnknownRegion},
		{"Vychod", UnknownRegion},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRegion(tt.raw), "raw %q", tt.raw)
	}
}
