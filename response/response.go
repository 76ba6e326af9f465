package response

import (
	"github.com/bazario/go-invite/models"
	"github.com/shopspring/decimal"
)

// ReferralResolution is the resolved two-level invite graph for one owner.
// Both levels hold approved members only, ordered by creation time.
type ReferralResolution struct {
	Owner  models.Member   `json:"owner"`
	Level1 []models.Member `json:"level1"`
	Level2 []models.Member `json:"level2"`
}

// MilestoneProgress reports accrual toward the next direct-invite
// milestone. When the count sits exactly on a milestone, Remaining is a
// full cycle: the bonus was just granted and nothing has accrued toward
// the next one.
type MilestoneProgress struct {
	CompletedInCycle int64   `json:"completedInCycle"`
	Remaining        int64   `json:"remaining"`
	Percent          float64 `json:"percent"`
}

type RewardBreakdown struct {
	Level1Count int64             `json:"level1Count"`
	Level2Count int64             `json:"level2Count"`
	Level1Usd   decimal.Decimal   `json:"level1Usd"`
	Level2Usd   decimal.Decimal   `json:"level2Usd"`
	TotalUsd    decimal.Decimal   `json:"totalUsd"`
	TotalLocal  decimal.Decimal   `json:"totalLocal"`
	Progress    MilestoneProgress `json:"progress"`
}

type BatchFailure struct {
	ID     uint   `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult reports a best-effort bulk operation. Partial completion is
// an accepted outcome, not an error.
type BatchResult struct {
	Succeeded []uint         `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}
