package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTierFor_Boundaries(t *testing.T) {
	cases := []struct {
		spend string
		want  VIPTier
	}{
		{"0", VIPTierNone},
		{"999.99", VIPTierNone},
		{"1000", VIPTierBronze},
		{"1999.99", VIPTierBronze},
		{"2000", VIPTierSilver},
		{"4999.99", VIPTierSilver},
		{"5000", VIPTierGold},
		{"9999.99", VIPTierGold},
		{"10000", VIPTierPlatinum},
		{"250000", VIPTierPlatinum},
	}
	for _, tc := range cases {
		got := TierFor(decimal.RequireFromString(tc.spend))
		assert.Equal(t, tc.want, got, "spend %s", tc.spend)
	}
}

func TestTierFor_Pure(t *testing.T) {
	spend := decimal.RequireFromString("5230.10")
	assert.Equal(t, TierFor(spend), TierFor(spend))
}

func TestSortSizes(t *testing.T) {
	sizes := []ProductSize{{Size: "XL"}, {Size: "ONE"}, {Size: "S"}, {Size: "XXL"}, {Size: "42"}, {Size: "XS"}, {Size: "M"}, {Size: "L"}}
	SortSizes(sizes)
	got := make([]string, 0, len(sizes))
	for _, s := range sizes {
		got = append(got, s.Size)
	}
	assert.Equal(t, []string{"XS", "S", "M", "L", "XL", "XXL", "42", "ONE"}, got)
}

func TestReminderFlags(t *testing.T) {
	var f ReminderFlags
	assert.False(t, f.Sent(1))
	f.Mark(1)
	f.Mark(3)
	assert.True(t, f.Sent(1))
	assert.False(t, f.Sent(2))
	assert.True(t, f.Sent(3))
	assert.False(t, f.Sent(4))
}
