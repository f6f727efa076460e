package domain

import "strings"

// UserTier is the tier of an end-user subscription plan.
type UserTier string

const (
	UserTierFree UserTier = "free"
	UserTierPlus UserTier = "plus"
	UserTierPro  UserTier = "pro"
)

// Elevated reports whether the tier may use ask-local.
func (t UserTier) Elevated() bool {
	return t == UserTierPlus || t == UserTierPro
}

// Identity is the verified caller behind a session credential.
type Identity struct {
	UserID string
	Email  string
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

var userTierRank = map[UserTier]int{
	UserTierFree: 1,
	UserTierPlus: 2,
	UserTierPro:  3,
}

// BestUserTier picks the highest known tier, or "" when none is known.
func BestUserTier(tiers []UserTier) UserTier {
	var best UserTier
	for _, tier := range tiers {
		if userTierRank[tier] > userTierRank[best] {
			best = tier
		}
	}
	return best
}
