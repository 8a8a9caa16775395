package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAverageCost(t *testing.T) {
	cases := []struct {
		mean string
		want string
	}{
		{"10000", "10000"},
		{"10000.01", "10010"},
		{"8333.333333", "8340"},
		{"0", "0"},
		{"1", "10"},
	}

	for _, tc := range cases {
		got := AverageCost(decimal.NewNullDecimal(decimal.RequireFromString(tc.mean)))
		assert.True(t, got.Valid, tc.mean)
		assert.Equal(t, tc.want, got.Decimal.String(), tc.mean)
	}

	assert.False(t, AverageCost(decimal.NullDecimal{}).Valid)
}
