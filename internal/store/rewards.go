package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/streak"
)

// ClaimedRewards returns the ids of claimed rewards.
func (s *Store) ClaimedRewards() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.claimed)
}

// Rewards reports every reward against the current month streak.
func (s *Store) Rewards() []streak.RewardStatus {
	st := s.Streak(streak.Month)
	return streak.Statuses(st.CurrentStreak, s.ClaimedRewards())
}

// ClaimReward pays out reward id once. It returns false with
// ErrRewardClaimed or ErrRewardLocked when the claim is refused; nothing
// changes in that case.
func (s *Store) ClaimReward(ctx context.Context, id string, coins int) (bool, error) {
	r, ok := streak.FindReward(id)
	if !ok {
		return false, notFound("reward", id)
	}
	if coins != r.Coins {
		return false, invalid(fmt.Sprintf("reward %s is worth %d coins", id, r.Coins))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.claimed, id) {
		return false, model.ErrRewardClaimed
	}
	st := streak.Compute(cloneHabits(s.habits), streak.Month, s.now())
	if st.CurrentStreak < r.Days {
		return false, fmt.Errorf("%w: %d of %d days", model.ErrRewardLocked, st.CurrentStreak, r.Days)
	}

	claimed := append(slices.Clone(s.claimed), id)
	profile := s.profile
	profile.Coins += r.Coins
	if err := s.persist(ctx,
		change{kv.KeyClaimedRewards, claimed, s.claimed},
		change{kv.KeyProfile, profile, s.profile},
	); err != nil {
		return false, err
	}
	s.claimed = claimed
	s.profile = profile
	logger.Info("Reward claimed", logger.F("reward", id), logger.F("coins", r.Coins))
	return true, nil
}
