package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewIcon(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		svg     string
		want    Icon
		wantErr bool
	}{
		{name: "simple", slug: "kubernetes", want: SimpleIcon{Slug: "kubernetes"}},
		{name: "custom", svg: `<rect x="1"/>`, want: CustomIcon{Markup: `<rect x="1"/>`}},
		{name: "both", slug: "terraform", svg: "<path/>", wantErr: true},
		{name: "neither", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewIcon(tt.slug, tt.svg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIconVariant)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCertification_IconAccessors(t *testing.T) {
	simple := Certification{Icon: SimpleIcon{Slug: "terraform"}}
	assert.Equal(t, "terraform", simple.SimpleIconSlug())
	assert.Empty(t, simple.CustomIconMarkup())

	custom := Certification{Icon: CustomIcon{Markup: "<text>vmw</text>"}}
	assert.Empty(t, custom.SimpleIconSlug())
	assert.Equal(t, "<text>vmw</text>", string(custom.CustomIconMarkup()))
}

func TestCertification_Expired(t *testing.T) {
	today := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		validUntil *string
		want       bool
	}{
		{name: "lapsed", validUntil: strPtr("2020-01-01"), want: true},
		{name: "day before", validUntil: strPtr("2023-12-31"), want: true},
		{name: "expires today", validUntil: strPtr("2024-01-01"), want: false},
		{name: "future", validUntil: strPtr("2027-03-29"), want: false},
		{name: "never expires", validUntil: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Certification{ValidUntil: tt.validUntil}
			assert.Equal(t, tt.want, c.Expired(today))
		})
	}
}

func TestWorkEntry_Range(t *testing.T) {
	w := WorkEntry{
		Company: "Georgia United Credit Union",
		Positions: []Position{
			{Title: "Sr. System Engineer Team Lead", StartDate: "2025-03"},
			{Title: "System Engineer II", StartDate: "2023-03", EndDate: strPtr("2025-03")},
			{Title: "Network Administrator", StartDate: "2018-03", EndDate: strPtr("2020-03")},
		},
	}

	assert.Equal(t, "2018-03", w.Earliest())
	assert.Nil(t, w.Latest())
	assert.True(t, w.Current())
	assert.True(t, w.Positions[0].Current())
	assert.False(t, w.Positions[1].Current())
}
