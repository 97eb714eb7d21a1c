package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		shouldError bool
	}{
		{
			name:  "integer amount",
			input: "100",
			want:  "100",
		},
		{
			name:  "one decimal",
			input: "4,7",
			want:  "4.7",
		},
		{
			name:  "two decimals",
			input: "4,75",
			want:  "4.75",
		},
		{
			name:  "zero",
			input: "0",
			want:  "0",
		},
		{
			name:        "empty string",
			input:       "",
			shouldError: true,
		},
		{
			name:        "dot separator",
			input:       "4.75",
			shouldError: true,
		},
		{
			name:        "three decimals",
			input:       "4,753",
			shouldError: true,
		},
		{
			name:        "negative amount",
			input:       "-4,75",
			shouldError: true,
		},
		{
			name:        "non-numeric",
			input:       "abc",
			shouldError: true,
		},
		{
			name:        "trailing comma only",
			input:       "4,",
			shouldError: true,
		},
		{
			name:        "thousands separator",
			input:       "1 000,00",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)

			if tt.shouldError {
				assert.ErrorIs(t, err, ErrMalformedAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "integer renders with two decimals",
			input: "150",
			want:  "150,00",
		},
		{
			name:  "one decimal padded",
			input: "4.7",
			want:  "4,70",
		},
		{
			name:  "zero",
			input: "0",
			want:  "0,00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(d))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	d, err := Parse("100,01")
	require.NoError(t, err)
	assert.Equal(t, "100,01", Format(d))
}
