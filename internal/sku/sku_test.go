package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocatorSuffixesRepeats(t *testing.T) {
	a := NewAllocator()

	got := []string{a.Allocate("X"), a.Allocate("X"), a.Allocate("X")}
	assert.Equal(t, []string{"X", "X-1", "X-2"}, got)
	assert.Equal(t, 3, a.count("X"))
}

func TestAllocatorStableUnderInterleaving(t *testing.T) {
	a := NewAllocator()

	var xs []string
	for _, base := range []string{"X", "Y", "X", "Z", "Y", "X"} {
		got := a.Allocate(base)
		if base == "X" {
			xs = append(xs, got)
		}
	}
	assert.Equal(t, []string{"X", "X-1", "X-2"}, xs)
}

func TestAllocatorEmptyBaseNotTracked(t *testing.T) {
	a := NewAllocator()

	assert.Equal(t, "", a.Allocate("   "))
	assert.Equal(t, "", a.Allocate(""))
	assert.Equal(t, 0, a.count(""))
	assert.Equal(t, "A", a.Allocate(" A "), "base is trimmed before tracking")
	assert.Equal(t, "A-1", a.Allocate("A"))
}

func TestDeriveGroup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ABC-1", "ABC"},
		{"ABC-red", "ABC"},
		{"ABC", "ABC"},
		{"", ""},
		{"ABC-1-2", "ABC-1"},
		{"VAZO-kırmızı", "VAZO"},
		{"-1", ""},
		{"ABC-", "ABC-"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveGroup(tt.input))
		})
	}
}

func TestRoundTripGroupsUseOriginalCode(t *testing.T) {
	a := NewAllocator()
	codes := []string{"A-1", "A-1", "B"}

	var unique, groups []string
	for _, code := range codes {
		unique = append(unique, a.Allocate(code))
		groups = append(groups, DeriveGroup(code))
	}

	assert.Equal(t, []string{"A-1", "A-1-1", "B"}, unique)
	assert.Equal(t, []string{"A", "A", "B"}, groups)
}
