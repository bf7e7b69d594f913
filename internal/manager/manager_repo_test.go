package manager_test

import (
	"context"
	"regexp"
	"testing"

	"go-leave/internal/manager"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (manager.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	return manager.NewRepository(gormDB), mock
}

func TestManagerRepository_FindByUsername(t *testing.T) {
	repo, mock := setupRepoTest(t)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "name", "role", "phone_number"}).
		AddRow(4, "carol", "hash", "Carol", "MANAGER", "5551112222")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "managers" WHERE username = $1`)).
		WillReturnRows(rows)

	m, err := repo.FindByUsername(context.Background(), "carol")

	assert.NoError(t, err)
	assert.Equal(t, uint(4), m.ID)
	assert.Equal(t, manager.RoleManager, m.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "managers" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	m, err := repo.FindByID(context.Background(), 99)

	assert.Nil(t, m)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerRepository_ListPhoneNumbers(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "phone_number" FROM "managers" WHERE phone_number <> ''`)).
		WillReturnRows(sqlmock.NewRows([]string{"phone_number"}).AddRow("5551112222").AddRow("5553334444"))

	phones, err := repo.ListPhoneNumbers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"5551112222", "5553334444"}, phones)
	assert.NoError(t, mock.ExpectationsWereMet())
}
