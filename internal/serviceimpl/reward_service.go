package serviceimpl

import (
	"github.com/bazario/go-invite/response"
	"github.com/bazario/go-invite/service"
	"github.com/shopspring/decimal"
)

// Direct-invite reward tiers in USD: positions 1..5 climb 50..90, then the
// ladder plateaus at 90. Every 50th direct invite additionally grants a
// lump-sum milestone bonus.
var tierRewardsUsd = []int64{50, 60, 70, 80, 90}

const (
	milestoneInterval = 50
	milestoneBonusUsd = 2500
	level2RewardUsd   = 10
)

// rewardService is stateless apart from the injected exchange rate; every
// method is a pure function of its arguments.
type rewardService struct {
	exchangeRate decimal.Decimal
}

var _ service.RewardService = &rewardService{}

// NewRewardService builds a calculator converting USD to the local display
// currency at the given rate (local units per USD).
func NewRewardService(exchangeRate decimal.Decimal) service.RewardService {
	return &rewardService{exchangeRate: exchangeRate}
}

func (s *rewardService) RewardForPosition(n int64) decimal.Decimal {
	if n < 1 {
		return decimal.Zero
	}
	if n > int64(len(tierRewardsUsd)) {
		n = int64(len(tierRewardsUsd))
	}
	return decimal.NewFromInt(tierRewardsUsd[n-1])
}

func (s *rewardService) CumulativeLevel1Reward(count int64) decimal.Decimal {
	total := decimal.Zero
	for i := int64(1); i <= count; i++ {
		total = total.Add(s.RewardForPosition(i))
		if i%milestoneInterval == 0 {
			total = total.Add(decimal.NewFromInt(milestoneBonusUsd))
		}
	}
	return total
}

func (s *rewardService) Level2Reward(count int64) decimal.Decimal {
	if count < 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(count * level2RewardUsd)
}

// ProgressToNextMilestone reports accrual within the current 50-invite
// cycle. At an exact multiple of 50 the cycle reads as freshly started:
// CompletedInCycle 0, Remaining 50. That is deliberate; a just-completed
// milestone shows a full cycle ahead, matching the product's display rule.
func (s *rewardService) ProgressToNextMilestone(count int64) response.MilestoneProgress {
	if count < 0 {
		count = 0
	}
	completed := count % milestoneInterval
	return response.MilestoneProgress{
		CompletedInCycle: completed,
		Remaining:        milestoneInterval - completed,
		Percent:          float64(completed) / float64(milestoneInterval),
	}
}

func (s *rewardService) ComputeRewards(level1Count, level2Count int64) response.RewardBreakdown {
	if level1Count < 0 {
		level1Count = 0
	}
	if level2Count < 0 {
		level2Count = 0
	}

	level1Usd := s.CumulativeLevel1Reward(level1Count)
	level2Usd := s.Level2Reward(level2Count)
	totalUsd := level1Usd.Add(level2Usd)

	return response.RewardBreakdown{
		Level1Count: level1Count,
		Level2Count: level2Count,
		Level1Usd:   level1Usd,
		Level2Usd:   level2Usd,
		TotalUsd:    totalUsd,
		TotalLocal:  totalUsd.Mul(s.exchangeRate).Round(0),
		Progress:    s.ProgressToNextMilestone(level1Count),
	}
}
