package request

import (
	"net/http"

	"github.com/bazario/go-invite/lib/validate"
	"gorm.io/gorm"
)

type CreateMemberRequest struct {
	ReferenceID   *string `json:"referenceId"`
	InviteCode    *string `json:"inviteCode"`
	PreferredCode *string `json:"preferredCode"`
	Email         *string `json:"email" validate:"omitempty,email"`
}

func (r *CreateMemberRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}

type GetMembersRequest struct {
	IDs                  []uint               `form:"ids"`
	ReferenceID          *string              `form:"referenceId"`
	Code                 *string              `form:"code"`
	InviteCode           *string              `form:"inviteCode"`
	Statuses             []string             `form:"statuses"`
	IsReferred           *bool                `form:"isReferred"`
	ReferredByMemberID   *uint                `form:"referredByMemberId"`
	Selected             *bool                `form:"selected"`
	PaginationConditions PaginationConditions `form:"paginationConditions"`
}

func ApplyGetMembersRequest(req GetMembersRequest, query *gorm.DB) *gorm.DB {
	if len(req.IDs) > 0 {
		query = query.Where("invite_members.id IN (?)", req.IDs)
	}
	if req.ReferenceID != nil {
		query = query.Where("invite_members.reference_id = ?", *req.ReferenceID)
	}
	if req.Code != nil {
		query = query.Where("invite_members.code = ?", *req.Code)
	}
	if req.InviteCode != nil {
		query = query.Where("invite_members.invite_code = ?", *req.InviteCode)
	}
	if len(req.Statuses) > 0 {
		query = query.Where("invite_members.status IN (?)", req.Statuses)
	}
	if req.IsReferred != nil {
		if *req.IsReferred {
			query = query.Where("invite_members.referred_by_member_id IS NOT NULL")
		} else {
			query = query.Where("invite_members.referred_by_member_id IS NULL")
		}
	}
	if req.ReferredByMemberID != nil {
		query = query.Where("invite_members.referred_by_member_id = ?", *req.ReferredByMemberID)
	}
	if req.Selected != nil {
		query = query.Where("invite_members.selected = ?", *req.Selected)
	}
	return query
}
