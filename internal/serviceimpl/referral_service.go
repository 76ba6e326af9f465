package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bazario/go-invite/internal/db"
	"github.com/bazario/go-invite/models"
	"github.com/bazario/go-invite/response"
	"github.com/bazario/go-invite/service"
	"github.com/bazario/go-invite/utils"
)

// referralService resolves direct (level-1) and indirect (level-2)
// invitees. Two independent signals identify a direct invite: the
// structural referrer link and a free-text invite code matching the
// owner's personal code. The signals can disagree; the union of both,
// deduplicated, is the answer.
type referralService struct {
	dir service.Directory
}

var _ service.ReferralService = &referralService{}

func NewReferralService(dir service.Directory) service.ReferralService {
	return &referralService{dir: dir}
}

func (s *referralService) ResolveReferrals(ctx context.Context, ownerID uint) (*response.ReferralResolution, error) {
	owner, err := s.dir.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ownerCode := utils.NormalizeCode(owner.Code)
	if ownerCode == "" && owner.InviteCode != nil {
		ownerCode = utils.NormalizeCode(*owner.InviteCode)
	}

	level1, err := s.level1(ctx, owner, ownerCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve level 1 for member %d: %w", ownerID, err)
	}

	level2, err := s.level2(ctx, owner, level1)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve level 2 for member %d: %w", ownerID, err)
	}

	return &response.ReferralResolution{
		Owner:  *owner,
		Level1: level1,
		Level2: level2,
	}, nil
}

func (s *referralService) level1(ctx context.Context, owner *models.Member, ownerCode string) ([]models.Member, error) {
	structural, err := s.findApproved(ctx, db.Equals{
		Field: db.FieldReferredByMemberID,
		Value: owner.ID,
	})
	if err != nil {
		return nil, err
	}

	var codeMatched []models.Member
	if ownerCode != "" {
		codeMatched, err = s.findApproved(ctx, db.Or{Exprs: []db.Expr{
			db.ContainsFold{Field: db.FieldInviteCode, Value: ownerCode},
			db.ContainsFold{Field: db.FieldCode, Value: ownerCode},
		}})
		if err != nil {
			return nil, err
		}
	}

	return mergeByID([]uint{owner.ID}, structural, codeMatched), nil
}

func (s *referralService) level2(ctx context.Context, owner *models.Member, level1 []models.Member) ([]models.Member, error) {
	if len(level1) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(level1))
	codeExprs := make([]db.Expr, 0, len(level1))
	for i := range level1 {
		ids = append(ids, level1[i].ID)
		if code := utils.NormalizeCode(level1[i].Code); code != "" {
			codeExprs = append(codeExprs, db.ContainsFold{Field: db.FieldInviteCode, Value: code})
		}
	}

	structural, err := s.findApproved(ctx, db.In{
		Field:  db.FieldReferredByMemberID,
		Values: ids,
	})
	if err != nil {
		return nil, err
	}

	var codeMatched []models.Member
	if len(codeExprs) > 0 {
		codeMatched, err = s.findApproved(ctx, db.Or{Exprs: codeExprs})
		if err != nil {
			return nil, err
		}
	}

	// A member cannot be level 1 and level 2 of the same owner.
	exclude := append(ids, owner.ID)
	return mergeByID(exclude, structural, codeMatched), nil
}

// findApproved runs one approved-members query. When the directory cannot
// express the filter it falls back to loading all approved members and
// evaluating the same expression tree in process, which keeps the two
// paths behaviorally indistinguishable.
func (s *referralService) findApproved(ctx context.Context, expr db.Expr) ([]models.Member, error) {
	approved := db.Equals{Field: db.FieldStatus, Value: models.StatusApproved}
	order := db.OrderByCreatedAt()

	members, err := s.dir.Find(ctx, order, approved, expr)
	if err == nil {
		return members, nil
	}
	if !errors.Is(err, service.ErrUnsupportedFilter) {
		return nil, err
	}

	all, err := s.dir.Find(ctx, order, approved)
	if err != nil {
		return nil, err
	}

	var matched []models.Member
	for i := range all {
		ok, merr := expr.Matches(&all[i])
		if merr != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrValidation, merr)
		}
		if ok {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

// mergeByID unions the member lists, drops excluded ids, deduplicates by
// id and orders by creation time.
func mergeByID(exclude []uint, lists ...[]models.Member) []models.Member {
	skip := make(map[uint]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	var merged []models.Member
	seen := make(map[uint]struct{})
	for _, list := range lists {
		for i := range list {
			id := list[i].ID
			if _, drop := skip[id]; drop {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, list[i])
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].ID < merged[j].ID
		}
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})

	return merged
}
