package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGormMemberRepository_FindByEmailScopesByOrganization(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	rows := sqlmock.NewRows([]string{"id", "organization_id", "email", "name", "status"}).
		AddRow(7, 3, "alice@acme.test", `{"en":"Alice"}`, "active")

	mock.ExpectQuery(`SELECT \* FROM "members" WHERE organization_id = \$1 AND email = \$2`).
		WithArgs(3, "alice@acme.test", 1).
		WillReturnRows(rows)

	member, err := repo.FindByEmail(3, "alice@acme.test")
	require.NoError(t, err)
	require.Equal(t, uint64(7), member.ID)
	require.Equal(t, uint64(3), member.OrganizationID)
	require.Equal(t, "Alice", member.Name.Get("en", "en"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMemberRepository_FindByEmailNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "members" WHERE organization_id = \$1 AND email = \$2`).
		WithArgs(3, "nobody@acme.test", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(3, "nobody@acme.test")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
