package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"electronics", "Electronics"},
		{"men's clothing", "Men's clothing"},
		{"Already", "Already"},
		{"über", "Über"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in))
	}
}

func TestCapitalizeEachWord(t *testing.T) {
	assert.Equal(t, "Men's Clothing", CapitalizeEachWord("men's clothing"))
	assert.Equal(t, "Gold Ring", CapitalizeEachWord("GOLD RING"))
	assert.Equal(t, "", CapitalizeEachWord(""))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Electronics", "electronics"},
		{"men's clothing", "men's-clothing"},
		{"Electronics  Popular", "electronics-popular"},
		{"a\tb\nc", "a-b-c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in))
	}
}

func TestValidate(t *testing.T) {
	err := Validate(UpdateBrandInput{ID: "brand-1", Name: "Gadgets"})
	assert.NoError(t, err)

	err = Validate(UpdateBrandInput{ID: "brand-1", Name: "ab"})
	assert.True(t, errors.Is(err, ErrValidation))

	err = Validate(VisitEvent{PageType: "CHECKOUT"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestInvalidf(t *testing.T) {
	err := Invalidf("quantity %d must be positive", -1)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "quantity -1 must be positive")
}
