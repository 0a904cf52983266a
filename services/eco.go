package services

const pointsPerItem = 10

// Reward tiers, highest first (both unlock once the higher one is reached).
const (
	rewardTierHigh = 500
	rewardTierLow  = 200
)

// ReportRecycling awards quantity * 10 points and accumulates them into the
// conversation. Quantity below 1 (unparsable input upstream) counts as 1.
func ReportRecycling(st *ConversationState, quantity int) (awarded, total int) {
	if quantity < 1 {
		quantity = 1
	}
	awarded = quantity * pointsPerItem
	st.EcoPoints += awarded
	return awarded, st.EcoPoints
}

// EcoRewards lists the reward labels unlocked by the given balance; empty
// below the first tier.
func EcoRewards(points int) []string {
	var rewards []string
	if points >= rewardTierHigh {
		rewards = append(rewards, "Voucher diskon 20%")
	}
	if points >= rewardTierLow {
		rewards = append(rewards, "Voucher gratis ongkir 50k")
	}
	return rewards
}
