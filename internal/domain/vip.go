package domain

import "github.com/shopspring/decimal"

type tierThreshold struct {
	min  decimal.Decimal
	tier VIPTier
}

// highest first
var tierThresholds = []tierThreshold{
	{decimal.NewFromInt(10000), VIPTierPlatinum},
	{decimal.NewFromInt(5000), VIPTierGold},
	{decimal.NewFromInt(2000), VIPTierSilver},
	{decimal.NewFromInt(1000), VIPTierBronze},
}

// TierFor derives the VIP tier from cumulative spend. The highest threshold
// reached wins; below the lowest one there is no tier.
func TierFor(totalSpent decimal.Decimal) VIPTier {
	for _, t := range tierThresholds {
		if totalSpent.GreaterThanOrEqual(t.min) {
			return t.tier
		}
	}
	return VIPTierNone
}
