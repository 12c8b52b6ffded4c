package employee_test

import (
	"context"
	"testing"
	"time"

	"go-settlement/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_ListActiveRegular(t *testing.T) {
	db, mock := newMockDB(t)
	repo := employee.NewRepository(db)

	companyID := uuid.NewString()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	id := uuid.New()

	mock.ExpectQuery(`SELECT e.id AS employee_id, e.full_name, s.base_salary FROM employees e JOIN LATERAL`).
		WithArgs(end, companyID, employee.EmploymentTypeRegular, employee.EmploymentStatusActive, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "full_name", "base_salary"}).
			AddRow(id.String(), "Ani", int64(5_000_000)))

	rows, err := repo.ListActiveRegular(context.Background(), companyID, start, end)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].EmployeeID)
	assert.Equal(t, int64(5_000_000), rows[0].BaseSalary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := employee.NewRepository(db)

	mock.ExpectExec(`UPDATE "employees" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.NewString(), uuid.NewString())

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
