package migration

import (
	"github.com/bazario/go-invite/models"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

var Initialise = &gormigrate.Migration{
	ID: "202608251120-iv-209117",
	Migrate: func(db *gorm.DB) error {
		return db.AutoMigrate(&models.Member{})
	},
	Rollback: func(db *gorm.DB) error {
		return db.Migrator().DropTable(&models.Member{})
	},
}
