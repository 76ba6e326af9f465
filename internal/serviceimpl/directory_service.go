package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/bazario/go-invite/internal/db"
	"github.com/bazario/go-invite/models"
	"github.com/bazario/go-invite/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// directoryService adapts gorm to the Directory port. caseInsensitive
// mirrors the query engine's capability; when false, any expression that
// needs case folding is refused with ErrUnsupportedFilter so the caller
// runs the in-process fallback instead.
type directoryService struct {
	DB              *gorm.DB
	caseInsensitive bool
}

var _ service.Directory = &directoryService{}

func NewDirectoryService(dbConn *gorm.DB, caseInsensitive bool) service.Directory {
	return &directoryService{DB: dbConn, caseInsensitive: caseInsensitive}
}

func (s *directoryService) Get(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := s.DB.WithContext(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch member %d: %w", id, err)
	}
	return &member, nil
}

func (s *directoryService) Find(ctx context.Context, order db.Order, exprs ...db.Expr) ([]models.Member, error) {
	query := s.DB.WithContext(ctx).Model(&models.Member{})

	for _, expr := range exprs {
		if !s.caseInsensitive && db.NeedsCaseFold(expr) {
			return nil, fmt.Errorf("case-insensitive match: %w", service.ErrUnsupportedFilter)
		}
		sql, args, err := expr.Where()
		if err != nil {
			if errors.Is(err, db.ErrUnknownField) {
				return nil, fmt.Errorf("%w: %v", service.ErrValidation, err)
			}
			return nil, err
		}
		query = query.Where(sql, args...)
	}

	var members []models.Member
	if err := query.Order(order.Clause()).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	return members, nil
}

func (s *directoryService) Update(ctx context.Context, id uint, fields map[string]any) (*models.Member, error) {
	var member models.Member

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member %d: %w", id, service.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch member %d: %w", id, err)
		}

		if err := tx.Model(&member).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update member %d: %w", id, err)
		}

		return tx.First(&member, id).Error
	})

	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Delete marks the member deleted. The record stays in the directory; a
// deleted member is terminal and excluded from every future resolution.
func (s *directoryService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("member %d: %w", id, service.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch member %d: %w", id, err)
		}

		if !models.CanTransition(member.Status, models.StatusDeleted) {
			return fmt.Errorf("cannot delete member %d in status %s: %w", id, member.Status, service.ErrConflict)
		}

		return tx.Model(&member).Update("status", models.StatusDeleted).Error
	})
}
