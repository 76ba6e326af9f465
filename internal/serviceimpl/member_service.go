package serviceimpl

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/bazario/go-invite/models"
	"github.com/bazario/go-invite/request"
	"github.com/bazario/go-invite/service"
	"github.com/bazario/go-invite/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	codeLength      = 7
	maxCodeAttempts = 5
)

type memberService struct {
	DB *gorm.DB
}

var _ service.MemberService = &memberService{}

func NewMemberService(db *gorm.DB) service.MemberService {
	return &memberService{DB: db}
}

func (s *memberService) CreateMember(req request.CreateMemberRequest) (*models.Member, error) {
	if req.Email != nil {
		if *req.Email == "" {
			return nil, fmt.Errorf("email cannot be empty: %w", service.ErrValidation)
		}
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return nil, fmt.Errorf("invalid email format: %w", service.ErrValidation)
		}
	}

	referenceID := uuid.NewString()
	if req.ReferenceID != nil && *req.ReferenceID != "" {
		referenceID = *req.ReferenceID
	}

	// Resolve the inviter from the supplied code when possible. The free
	// text is stored either way; an unresolvable code just leaves the
	// structural link unset and the code-match signal takes over later.
	var inviteCode *string
	var referredByMemberID *uint
	if req.InviteCode != nil && utils.NormalizeCode(*req.InviteCode) != "" {
		normalized := utils.NormalizeCode(*req.InviteCode)
		inviteCode = req.InviteCode

		var inviter models.Member
		err := s.DB.Where("LOWER(code) = ?", normalized).First(&inviter).Error
		switch {
		case err == nil:
			referredByMemberID = &inviter.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// keep the text, no structural link
		default:
			return nil, fmt.Errorf("failed to resolve inviter code: %w", err)
		}
	}

	code, err := s.pickPersonalCode(req.PreferredCode)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		ReferenceID:        referenceID,
		Email:              req.Email,
		Code:               code,
		InviteCode:         inviteCode,
		Status:             models.StatusPending,
		ReferredByMemberID: referredByMemberID,
	}

	if err := s.DB.Create(member).Error; err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// pickPersonalCode returns the preferred code when it is free, otherwise
// generates codes with a bounded regenerate-on-collision retry.
func (s *memberService) pickPersonalCode(preferred *string) (string, error) {
	if preferred != nil && *preferred != "" {
		taken, err := s.codeTaken(*preferred)
		if err != nil {
			return "", err
		}
		if taken {
			return "", fmt.Errorf("preferred code %q already in use: %w", *preferred, service.ErrConflict)
		}
		return *preferred, nil
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := utils.CreateReferralCode(codeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate personal code: %w", err)
		}
		taken, err := s.codeTaken(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("gave up after %d attempts: %w", maxCodeAttempts, service.ErrRetriesExhausted)
}

func (s *memberService) codeTaken(code string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Member{}).
		Where("LOWER(code) = ?", utils.NormalizeCode(code)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check code uniqueness: %w", err)
	}
	return count > 0, nil
}

func (s *memberService) GetMembers(req request.GetMembersRequest) ([]models.Member, int64, error) {
	var members []models.Member
	var count int64

	query := s.DB.Model(&models.Member{})
	query = request.ApplyGetMembersRequest(req, query)

	countQuery := query
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	query = request.ApplyPaginationConditions(query, req.PaginationConditions)

	if err := query.Preload("ReferredByMember").Find(&members).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch members: %w", err)
	}

	return members, count, nil
}

func (s *memberService) GetTotalMembers(req request.GetMembersRequest) (int64, error) {
	var count int64

	query := s.DB.Model(&models.Member{})
	query = request.ApplyGetMembersRequest(req, query)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}

func (s *memberService) UpdateMemberStatus(id uint, newStatus string) (*models.Member, error) {
	switch newStatus {
	case models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusDeleted:
	default:
		return nil, fmt.Errorf("invalid status %q: %w", newStatus, service.ErrValidation)
	}

	var member models.Member

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member %d: %w", id, service.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch member %d: %w", id, err)
		}

		if !models.CanTransition(member.Status, newStatus) {
			return fmt.Errorf("transition %s -> %s not permitted: %w", member.Status, newStatus, service.ErrConflict)
		}

		member.Status = newStatus
		if err := tx.Save(&member).Error; err != nil {
			return fmt.Errorf("failed to update member status: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &member, nil
}
