package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Dimensions
	}{
		{"18x20", Dimensions{Length: "18", Width: "20"}},
		{"10*15*5", Dimensions{Length: "10", Width: "15", Height: "5"}},
		{"20", Dimensions{Height: "20"}},
		{"", Dimensions{}},
		{"18,5x20cm", Dimensions{Length: "18.5", Width: "20"}},
		{"10 X 15 X 5 X 2", Dimensions{Length: "10", Width: "15", Height: "5"}},
		{"10x15x5xfoo", Dimensions{Length: "10", Width: "15", Height: "5"}},
		{"10x15xfoox5", Dimensions{}},
		{"12 cm", Dimensions{Height: "12"}},
		{"30×40", Dimensions{Length: "30", Width: "40"}},
		{"18x", Dimensions{Length: "18"}},
		{"Standart", Dimensions{}},
		{"1.2.3x4", Dimensions{}},
		{"   ", Dimensions{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}
