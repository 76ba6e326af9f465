package request

import (
	"fmt"
	"net/http"

	"github.com/bazario/go-invite/lib/validate"
	"gorm.io/gorm"
)

type PaginationConditions struct {
	Limit         *int    `json:"limit"`
	Offset        *int    `json:"offset"`
	SortBy        *string `json:"sort_by"`
	Order         *string `json:"order"` // ASC or DESC
	GreaterThanID *uint   `json:"greater_than_id"`
	LessThanID    *uint   `json:"less_than_id"`
}

func ApplyPaginationConditions(query *gorm.DB, conditions PaginationConditions) *gorm.DB {
	if conditions.Offset != nil && *conditions.Offset > 0 {
		query = query.Offset(*conditions.Offset)
	}

	if conditions.GreaterThanID != nil {
		query = query.Where("id > ?", *conditions.GreaterThanID)
	}
	if conditions.LessThanID != nil {
		query = query.Where("id < ?", *conditions.LessThanID)
	}

	sortBy := "id"
	if conditions.SortBy != nil {
		sortBy = *conditions.SortBy
	}
	order := "DESC"
	if conditions.Order != nil {
		order = *conditions.Order
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, order))

	if conditions.Limit != nil && *conditions.Limit > 0 {
		query = query.Limit(*conditions.Limit)
	}

	return query
}

// ToggleSelectionRequest carries the desired checkbox state for one member.
type ToggleSelectionRequest struct {
	Selected *bool `json:"selected" validate:"required"`
}

func (r *ToggleSelectionRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}

// BatchActionRequest applies one action to many members, best effort.
type BatchActionRequest struct {
	IDs    []uint `json:"ids" validate:"required,min=1"`
	Action string `json:"action" validate:"required,oneof=approve reject delete"`
}

func (r *BatchActionRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}

// UpdateStatusRequest moves a member through the status state machine.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected deleted"`
}

func (r *UpdateStatusRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}

// ComputeRewardsRequest asks for a reward breakdown from raw counts.
type ComputeRewardsRequest struct {
	Level1Count int64 `json:"level1Count" validate:"min=0"`
	Level2Count int64 `json:"level2Count" validate:"min=0"`
}

func (r *ComputeRewardsRequest) Bind(_ *http.Request) error {
	return validate.Struct(r)
}
