package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/org-management-api/internal/models"
	"gorm.io/gorm"
)

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Department{},
		&models.Role{},
		&models.Group{},
		&models.Member{},
		&models.RoleAssignment{},
		&models.Permission{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(DB); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// AddIndexes creates the indexes AutoMigrate cannot express in struct tags.
// The partial unique index turns "at most one active assignment per role"
// from a business rule into a storage-level constraint, so the invariant
// holds even against concurrent writers. mysql has no partial indexes; those
// deployments rely on the transactional close-then-create path alone.
func AddIndexes(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres", "sqlite":
		return db.Exec(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_role_assignments_one_active " +
				"ON role_assignments (role_id) WHERE finish_date IS NULL",
		).Error
	default:
		return nil
	}
}
