package database

import (
	"fmt"

	"gorm.io/gorm"

	"hvacops/internal/domain"
)

// Migrate brings the schema up to date for every domain model. gorm orders
// the tables by foreign key dependency.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
