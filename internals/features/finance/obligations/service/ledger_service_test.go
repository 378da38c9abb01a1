// file: internals/features/finance/obligations/service/ledger_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func TestApplyPaid(t *testing.T) {
	id := uuid.New()

	t.Run("guard menerima alokasi dalam batas", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE obligations").
			WithArgs(50000, id.String(), 50000).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := ApplyPaid(context.Background(), db, id, 50000)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guard menolak alokasi yang melewati amount_due", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE obligations").
			WithArgs(999999, id.String(), 999999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := ApplyPaid(context.Background(), db, id, 999999)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount_due")
	})

	t.Run("delta non-positif ditolak tanpa menyentuh DB", func(t *testing.T) {
		db, mock := newMockDB(t)
		require.Error(t, ApplyPaid(context.Background(), db, id, 0))
		require.Error(t, ApplyPaid(context.Background(), db, id, -100))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
