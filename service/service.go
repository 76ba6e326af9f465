package service

import (
	"context"

	"github.com/bazario/go-invite/internal/db"
	"github.com/bazario/go-invite/models"
	"github.com/bazario/go-invite/request"
	"github.com/bazario/go-invite/response"
	"github.com/shopspring/decimal"
)

// Directory is the member record store. Find applies every expression
// (AND) and orders results; a directory that cannot express a query
// returns ErrUnsupportedFilter so the caller can fall back to in-process
// evaluation of the same expression tree.
type Directory interface {
	Get(ctx context.Context, id uint) (*models.Member, error)
	Find(ctx context.Context, order db.Order, exprs ...db.Expr) ([]models.Member, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Member, error)
	Delete(ctx context.Context, id uint) error
}

// MemberService handles member registration and administration
type MemberService interface {
	CreateMember(req request.CreateMemberRequest) (*models.Member, error)
	GetMembers(req request.GetMembersRequest) ([]models.Member, int64, error)
	GetTotalMembers(req request.GetMembersRequest) (int64, error)
	UpdateMemberStatus(id uint, newStatus string) (*models.Member, error)
}

// ReferralService resolves the two-level invite graph for an owner
type ReferralService interface {
	ResolveReferrals(ctx context.Context, ownerID uint) (*response.ReferralResolution, error)
}

// RewardService computes tiered invite rewards. All methods are pure.
type RewardService interface {
	RewardForPosition(n int64) decimal.Decimal
	CumulativeLevel1Reward(count int64) decimal.Decimal
	Level2Reward(count int64) decimal.Decimal
	ProgressToNextMilestone(count int64) response.MilestoneProgress
	ComputeRewards(level1Count, level2Count int64) response.RewardBreakdown
}

// SelectionService coordinates optimistic multi-select state and
// best-effort bulk status changes.
type SelectionService interface {
	ToggleSelection(ctx context.Context, memberID uint, selected bool) error
	BatchAction(ctx context.Context, ids []uint, action string) (*response.BatchResult, error)
}
