package streak

// Reward is a one-time coin payout for reaching a streak length.
type Reward struct {
	ID    string `json:"id"`
	Days  int    `json:"days"`
	Coins int    `json:"coins"`
}

// Rewards are claimable at most once each.
var Rewards = []Reward{
	{ID: "streak-7", Days: 7, Coins: 50},
	{ID: "streak-14", Days: 14, Coins: 100},
	{ID: "streak-28", Days: 28, Coins: 200},
}

// FindReward looks a reward up by id.
func FindReward(id string) (Reward, bool) {
	for _, r := range Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// RewardStatus is a reward with its state for the current streak.
type RewardStatus struct {
	Reward
	Unlocked bool `json:"unlocked"`
	Claimed  bool `json:"claimed"`
}

// Statuses reports every reward against streak and the set of claimed ids.
func Statuses(streak int, claimed []string) []RewardStatus {
	seen := make(map[string]bool, len(claimed))
	for _, id := range claimed {
		seen[id] = true
	}
	out := make([]RewardStatus, len(Rewards))
	for i, r := range Rewards {
		out[i] = RewardStatus{Reward: r, Unlocked: streak >= r.Days, Claimed: seen[r.ID]}
	}
	return out
}
