// file: internals/features/finance/payments/controller/charge_controller_test.go
package controller

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	service "sekolahku_backend/internals/features/finance/payments/service"
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

type fakeGateway struct {
	calls int
}

func (g *fakeGateway) CreateSession(req service.GatewayRequest) (service.CheckoutSession, error) {
	g.calls++
	return service.CheckoutSession{
		Token:       "tok-test",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v4/redirection/tok-test",
	}, nil
}

func newChargeApp(db *gorm.DB, gw service.Gateway, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	ctrl := NewChargeController(db, gw)
	app.Post("/charges", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return ctrl.CreateCharge(c)
	})
	return app
}

// Tagihan bulan berjalan harus bisa dibayar langsung: baris kewajiban
// dimaterialisasi di jalur charge sendiri, tanpa siswa harus membuka
// statement lebih dulu.
func TestCreateChargeMaterializesCurrentMonth(t *testing.T) {
	db, mock := newMockDB(t)

	userID := uuid.New()
	studentID := uuid.New()
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	// resolve siswa dari token
	mock.ExpectQuery(`SELECT \* FROM "students"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"student_id", "student_user_id", "student_full_name",
			"student_enrolled_at", "student_status",
		}).AddRow(studentID, userID, "Budi Santoso", monthStart, "registered"))

	// materialisasi: jadwal tarif + snapshot kewajiban yang masih kosong
	mock.ExpectQuery(`SELECT \* FROM "bill_kinds"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"bill_kind_id", "bill_kind_category", "bill_kind_amount_idr", "bill_kind_effective_from",
		}).
			AddRow(uuid.New(), "infaq", 25000, monthStart).
			AddRow(uuid.New(), "kas", 10000, monthStart).
			AddRow(uuid.New(), "spp", 150000, monthStart))
	mock.ExpectQuery(`SELECT \* FROM "obligations"`).
		WillReturnRows(sqlmock.NewRows([]string{"obligation_id"}))

	infaqID := uuid.New()
	kasID := uuid.New()
	sppID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "obligations"`).
		WillReturnRows(sqlmock.NewRows([]string{"obligation_id"}).
			AddRow(infaqID).AddRow(kasID).AddRow(sppID))
	mock.ExpectCommit()

	// snapshot untuk quote: baris bulan berjalan sudah ada
	mock.ExpectQuery(`SELECT \* FROM "obligations"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"obligation_id", "obligation_student_id", "obligation_category",
			"obligation_period", "obligation_amount_due_idr", "obligation_amount_paid_idr",
		}).
			AddRow(infaqID, studentID, "infaq", monthStart, 25000, 0).
			AddRow(kasID, studentID, "kas", monthStart, 10000, 0).
			AddRow(sppID, studentID, "spp", monthStart, 150000, 0))

	// OpenSession: replay-check, pre-check, insert sesi + item, gateway, checkout_url
	mock.ExpectQuery(`SELECT \* FROM "charge_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"charge_session_id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "charge_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"charge_session_id"}).AddRow(uuid.New()))
	mock.ExpectQuery(`INSERT INTO "charge_session_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"charge_session_item_id"}).AddRow(uuid.New()))
	mock.ExpectExec(`UPDATE "charge_sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gw := &fakeGateway{}
	app := newChargeApp(db, gw, userID)

	body := `{"selectors":[{"category":"spp","period":"` + now.Format("2006-01") + `"}]}`
	req := httptest.NewRequest("POST", "/charges", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", "idem-charge-1")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, gw.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
