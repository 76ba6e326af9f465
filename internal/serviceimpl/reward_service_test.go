package serviceimpl_test

import (
	"testing"

	"github.com/bazario/go-invite/internal/serviceimpl"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRewardForPositionTiers(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.NewFromInt(83))

	cases := []struct {
		position int64
		expected int64
	}{
		{1, 50},
		{2, 60},
		{3, 70},
		{4, 80},
		{5, 90},
		{6, 90},
		{100, 90},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, calc.RewardForPosition(tc.position).IntPart(),
			"position %d", tc.position)
	}

	assert.True(t, calc.RewardForPosition(0).IsZero())
	assert.True(t, calc.RewardForPosition(-3).IsZero())
}

func TestCumulativeLevel1Reward(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.NewFromInt(83))

	assert.True(t, calc.CumulativeLevel1Reward(0).IsZero())
	assert.Equal(t, int64(50), calc.CumulativeLevel1Reward(1).IntPart())

	// 50+60+70+80+90+90, no milestone yet
	assert.Equal(t, int64(440), calc.CumulativeLevel1Reward(6).IntPart())

	// (50+60+70+80+90) + 90*45 + 2500
	assert.Equal(t, int64(6900), calc.CumulativeLevel1Reward(50).IntPart())

	// second milestone at 100
	assert.Equal(t, int64(6900+90*50+2500), calc.CumulativeLevel1Reward(100).IntPart())
}

func TestCumulativeLevel1RewardMonotonic(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.NewFromInt(83))

	prev := decimal.Zero
	for n := int64(0); n <= 120; n++ {
		current := calc.CumulativeLevel1Reward(n)
		assert.True(t, current.GreaterThanOrEqual(prev), "count %d", n)
		prev = current
	}
}

func TestLevel2Reward(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.NewFromInt(83))

	assert.Equal(t, int64(100), calc.Level2Reward(10).IntPart())
	assert.True(t, calc.Level2Reward(0).IsZero())
	assert.True(t, calc.Level2Reward(-1).IsZero())
}

func TestProgressToNextMilestone(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.NewFromInt(83))

	p := calc.ProgressToNextMilestone(0)
	assert.Equal(t, int64(0), p.CompletedInCycle)
	assert.Equal(t, int64(50), p.Remaining)
	assert.Equal(t, 0.0, p.Percent)

	p = calc.ProgressToNextMilestone(49)
	assert.Equal(t, int64(49), p.CompletedInCycle)
	assert.Equal(t, int64(1), p.Remaining)

	// An exact multiple reads as a freshly started cycle.
	p = calc.ProgressToNextMilestone(50)
	assert.Equal(t, int64(0), p.CompletedInCycle)
	assert.Equal(t, int64(50), p.Remaining)
	assert.Equal(t, 0.0, p.Percent)

	p = calc.ProgressToNextMilestone(75)
	assert.Equal(t, int64(25), p.CompletedInCycle)
	assert.Equal(t, int64(25), p.Remaining)
	assert.Equal(t, 0.5, p.Percent)
}

func TestComputeRewardsBreakdown(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.RequireFromString("83.5"))

	breakdown := calc.ComputeRewards(6, 10)
	assert.Equal(t, int64(440), breakdown.Level1Usd.IntPart())
	assert.Equal(t, int64(100), breakdown.Level2Usd.IntPart())
	assert.Equal(t, int64(540), breakdown.TotalUsd.IntPart())

	// 540 * 83.5 = 45090; both raw USD and converted amounts are exposed.
	assert.Equal(t, "45090", breakdown.TotalLocal.String())
	assert.Equal(t, int64(6), breakdown.Level1Count)
	assert.Equal(t, int64(10), breakdown.Level2Count)
	assert.Equal(t, int64(6), breakdown.Progress.CompletedInCycle)
	assert.Equal(t, int64(44), breakdown.Progress.Remaining)
}

func TestComputeRewardsRoundsLocal(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.RequireFromString("83.333"))

	// 50 * 83.333 = 4166.65 -> rounds to 4167
	breakdown := calc.ComputeRewards(1, 0)
	assert.Equal(t, "4167", breakdown.TotalLocal.String())
	assert.Equal(t, int64(50), breakdown.TotalUsd.IntPart())
}

func TestComputeRewardsDeterministic(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.NewFromInt(83))

	first := calc.ComputeRewards(55, 7)
	_ = calc.ComputeRewards(3, 1)
	second := calc.ComputeRewards(55, 7)

	assert.True(t, first.TotalUsd.Equal(second.TotalUsd))
	assert.True(t, first.TotalLocal.Equal(second.TotalLocal))
	assert.Equal(t, first.Progress, second.Progress)
}

func TestComputeRewardsNegativeCountsClamped(t *testing.T) {
	calc := serviceimpl.NewRewardService(decimal.NewFromInt(83))

	breakdown := calc.ComputeRewards(-5, -2)
	assert.True(t, breakdown.TotalUsd.IsZero())
	assert.True(t, breakdown.TotalLocal.IsZero())
}
