package sweref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumber(t *testing.T) {
	data := []struct {
		in  string
		out string
	}{
		{"500000", "500000"},
		{"-42", "-42"},
		{"+7,25", "+7.25"},
		{"123 456", "123456"},
		{"1 234 567", "1234567"},
		{"1 234,56", "1234.56"},
		{"1.234.567", "1234567"},
		{"1,234,567", "1234567"},
		{"1.234,56", "1234.56"},
		{"123.45", "123.45"},
		{"13,5", "13.5"},
		{"0.0004", "0"},
		{"-0,0009", "0"},
	}

	for _, d := range data {
		got, ok := NormalizeNumber(d.in)
		assert.True(t, ok, "input %q", d.in)
		assert.Equal(t, d.out, got, "input %q", d.in)
	}
}

func TestNormalizeNumberRejects(t *testing.T) {
	data := []string{
		"",
		"   ",
		"abc",
		"1...2",
		"1,,,2",
		".5",
		"5.",
		",5",
		"5,",
		"12-34",
		"12+34",
		"1234567890123456789",  // 19 raw digits
		"1234.56789012345678",  // 18 digits after normalization
		"123456789",            // above 1e8
		"200000000",            // above 1e8
		"12 34",                // bad space grouping
		"1234 56",              // bad space grouping
		"12 345 67",            // bad space grouping
	}

	for _, d := range data {
		_, ok := NormalizeNumber(d)
		assert.False(t, ok, "input %q", d)
	}
}
