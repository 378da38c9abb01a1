// file: internals/features/finance/payments/service/reconcile_db_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "sekolahku_backend/internals/features/finance/payments/model"
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

func sessionRows(id, studentID uuid.UUID, status, externalID string, totalIDR int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"charge_session_id", "charge_session_student_id", "charge_session_total_idr",
		"charge_session_currency", "charge_session_status", "charge_session_external_id",
		"charge_session_expires_at",
	}).AddRow(id, studentID, totalIDR, "IDR", status, externalID, time.Now().Add(time.Hour))
}

func emptyItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"charge_session_item_id", "charge_session_item_session_id",
		"charge_session_item_obligation_id", "charge_session_item_position",
		"charge_session_item_amount_idr", "charge_session_item_allocated_idr",
	})
}

func TestApplySettlementDuplicateEvent(t *testing.T) {
	sessID := uuid.New()
	studentID := uuid.New()

	t.Run("notifikasi kembar tidak menyentuh ledger dan commit tetap bersih", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
			WillReturnRows(sessionRows(sessID, studentID, "pending", "CHG-20240501-120000-ABCD1234", 150000))
		mock.ExpectQuery(`SELECT \* FROM "charge_session_items"`).
			WillReturnRows(emptyItemRows().
				AddRow(uuid.New(), sessID, uuid.New(), 0, 150000, 0))
		// ON CONFLICT DO NOTHING: duplikat = nol baris kembali, tx tidak batal
		mock.ExpectQuery(`INSERT INTO "gateway_events"`).
			WillReturnRows(sqlmock.NewRows([]string{"gateway_event_id"}))
		mock.ExpectCommit()

		r := NewReconciler(db)
		err := r.ApplySettlement(context.Background(), NotificationInput{
			ExternalID: "CHG-20240501-120000-ABCD1234",
			Outcome:    OutcomeSettled,
			GrossIDR:   150000,
			Provider:   "midtrans",
		})
		require.NoError(t, err)
		// tidak ada UPDATE obligations / payments / charge_sessions yang diharapkan
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplySettlementLateArrival(t *testing.T) {
	sessID := uuid.New()
	studentID := uuid.New()

	t.Run("sesi sudah expired: payment berflag review, saldo tidak disentuh", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
			WillReturnRows(sessionRows(sessID, studentID, "expired", "CHG-20240501-120000-TELAT001", 150000))
		mock.ExpectQuery(`SELECT \* FROM "charge_session_items"`).
			WillReturnRows(emptyItemRows())
		mock.ExpectQuery(`INSERT INTO "gateway_events"`).
			WillReturnRows(sqlmock.NewRows([]string{"gateway_event_id"}).AddRow(uuid.New()))
		// kolom payment_late_settlement hanya muncul saat flag-nya true
		mock.ExpectQuery(`INSERT INTO "payments" .*"payment_late_settlement"`).
			WillReturnRows(sqlmock.NewRows([]string{"payment_id"}).AddRow(uuid.New()))
		mock.ExpectCommit()

		r := NewReconciler(db)
		err := r.ApplySettlement(context.Background(), NotificationInput{
			ExternalID: "CHG-20240501-120000-TELAT001",
			Outcome:    OutcomeSettled,
			GrossIDR:   150000,
			Provider:   "midtrans",
		})
		require.NoError(t, err)
		// tidak ada UPDATE obligations dan status sesi tetap expired
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOpenSessionConflict(t *testing.T) {
	studentID := uuid.New()
	obligationID := uuid.New()

	quote := &Quote{
		StudentID: studentID,
		Lines: []QuoteLine{
			{ObligationID: obligationID, Category: "spp", AmountIDR: 150000},
		},
		TotalIDR: 150000,
	}

	t.Run("pre-check: kewajiban sudah tercakup sesi pending lain", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
			WillReturnRows(sqlmock.NewRows([]string{"charge_session_id"}))
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()
		mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
			WillReturnRows(sqlmock.NewRows([]string{"charge_session_id"}))

		sm := NewSessionManager(db, nil, time.Hour)
		session, err := sm.OpenSession(context.Background(), quote, "key-precheck", CustomerInput{})
		require.ErrorIs(t, err, ErrSessionConflict)
		assert.Nil(t, session)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("race: partial unique index hash pending menolak insert", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
			WillReturnRows(sqlmock.NewRows([]string{"charge_session_id"}))
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO "charge_sessions"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uniq_charge_session_pending_hash"})
		mock.ExpectRollback()
		mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
			WillReturnRows(sqlmock.NewRows([]string{"charge_session_id"}))

		sm := NewSessionManager(db, nil, time.Hour)
		session, err := sm.OpenSession(context.Background(), quote, "key-race", CustomerInput{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSessionConflict))
		assert.Nil(t, session)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("race kembar idempoten: sesi milik request pemenang dikembalikan", func(t *testing.T) {
		db, mock := newMockDB(t)
		winnerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
			WillReturnRows(sqlmock.NewRows([]string{"charge_session_id"}))
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO "charge_sessions"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uniq_charge_session_live_idem_key"})
		mock.ExpectRollback()
		// re-lookup: request kembar sudah bikin sesi pending dengan key yang sama
		mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
			WillReturnRows(sessionRows(winnerID, studentID, "pending", "CHG-20240501-120000-KEMBAR01", 150000))
		mock.ExpectQuery(`SELECT \* FROM "charge_session_items"`).
			WillReturnRows(emptyItemRows().
				AddRow(uuid.New(), winnerID, obligationID, 0, 150000, 0))

		sm := NewSessionManager(db, nil, time.Hour)
		session, err := sm.OpenSession(context.Background(), quote, "key-kembar", CustomerInput{})
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, winnerID, session.ChargeSessionID)
		assert.Equal(t, model.ChargeSessionStatusPending, session.ChargeSessionStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReapExpiredSessions(t *testing.T) {
	t.Run("pending lewat TTL ditandai expired", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE charge_sessions`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := ReapExpiredSessions(db)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
