package go_invite

import (
	db2 "github.com/bazario/go-invite/internal/db"
	"github.com/bazario/go-invite/internal/serviceimpl"
	"github.com/bazario/go-invite/service"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InviteService struct {
	Members   service.MemberService
	Referrals service.ReferralService
	Rewards   service.RewardService
	Selection service.SelectionService
	Directory service.Directory

	// SelectionStore backs Selection; exposed so callers can read the
	// current multi-select state for rendering.
	SelectionStore *service.SelectionStore
}

// NewInviteService wires all services over one database handle. The
// exchange rate (local units per USD) comes from configuration; it is
// never hardcoded here.
func NewInviteService(db *gorm.DB, exchangeRate decimal.Decimal) *InviteService {
	db2.Migrate(db)

	dir := serviceimpl.NewDirectoryService(db, true)
	store := service.NewSelectionStore()

	return &InviteService{
		Members:        serviceimpl.NewMemberService(db),
		Referrals:      serviceimpl.NewReferralService(dir),
		Rewards:        serviceimpl.NewRewardService(exchangeRate),
		Selection:      serviceimpl.NewSelectionService(dir, store),
		Directory:      dir,
		SelectionStore: store,
	}
}
