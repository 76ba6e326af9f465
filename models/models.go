package models

import (
	"gorm.io/gorm"
	"time"
)

type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Member statuses. Only approved members count toward referral totals.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusDeleted  = "deleted"
)

// Batch actions accepted by the selection coordinator.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionDelete  = "delete"
)

type Member struct {
	BaseModel
	ReferenceID string  `gorm:"size:100;not null;uniqueIndex" json:"referenceId"`
	Email       *string `gorm:"size:100" json:"email"`

	// Code is the personal code generated for this member at creation,
	// handed out so others can register under them.
	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`

	// InviteCode is the free-text code the member typed at registration,
	// intended to equal some inviter's personal code. Stored as entered;
	// no referential integrity is guaranteed.
	InviteCode *string `gorm:"size:50;index" json:"inviteCode"`

	Status string `gorm:"size:50;default:'pending';index" json:"status"`

	ReferredByMemberID *uint   `gorm:"index" json:"referredByMemberId"`
	ReferredByMember   *Member `gorm:"foreignKey:ReferredByMemberID" json:"referredByMember,omitempty"`

	// Selected mirrors the admin UI multi-select checkbox for this row.
	Selected bool `gorm:"default:false;index" json:"selected"`
}

func (Member) TableName() string {
	return "invite_members"
}

// transitions is the status state machine. Rejection is reversible,
// deletion is terminal.
var transitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected, StatusDeleted},
	StatusApproved: {StatusRejected, StatusDeleted},
	StatusRejected: {StatusApproved, StatusDeleted},
	StatusDeleted:  {},
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StatusForAction maps a batch action to its target status.
func StatusForAction(action string) (string, bool) {
	switch action {
	case ActionApprove:
		return StatusApproved, true
	case ActionReject:
		return StatusRejected, true
	case ActionDelete:
		return StatusDeleted, true
	}
	return "", false
}
