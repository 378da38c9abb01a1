// file: internals/features/finance/obligations/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
	catalog "sekolahku_backend/internals/features/finance/catalog/service"
	model "sekolahku_backend/internals/features/finance/obligations/model"
)

/* =========================================================
   Materialisasi periode + mutasi saldo terjaga.

   Hanya jalur settlement yang menaikkan amount_paid; komponen lain
   membaca snapshot. Serialisasi per baris via SELECT ... FOR UPDATE
   di transaksi pemanggil.
========================================================= */

var recurringCategories = []catalogModel.BillCategory{
	catalogModel.BillCategoryInfaq,
	catalogModel.BillCategoryKas,
	catalogModel.BillCategorySPP,
}

// RecurringCategories mengembalikan kategori bulanan, urutan tetap.
func RecurringCategories() []catalogModel.BillCategory {
	out := make([]catalogModel.BillCategory, len(recurringCategories))
	copy(out, recurringCategories)
	return out
}

// EnsureObligations membuat baris kewajiban bulanan yang belum ada untuk
// satu siswa, dari bulan pendaftaran sampai asOf. Tarif dikunci di sini:
// sekali baris tercipta, perubahan katalog tidak menyentuhnya lagi.
// Aman dipanggil berulang (idempotent lewat unique index + ON CONFLICT skip).
func EnsureObligations(ctx context.Context, db *gorm.DB, studentID uuid.UUID, enrolledAt, asOf time.Time) error {
	kinds, err := catalog.LoadSchedule(ctx, db)
	if err != nil {
		return err
	}

	var existing []model.Obligation
	if err := db.WithContext(ctx).
		Where("obligation_student_id = ? AND obligation_period IS NOT NULL", studentID).
		Find(&existing).Error; err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		have[periodKey(o.ObligationCategory, *o.ObligationPeriod)] = struct{}{}
	}

	var missing []model.Obligation
	for _, cat := range recurringCategories {
		for _, period := range catalog.PeriodsFor(cat, enrolledAt, asOf) {
			if _, ok := have[periodKey(cat, period)]; ok {
				continue
			}
			amount, err := catalog.AmountFor(kinds, cat, period)
			if err != nil {
				return err
			}
			p := period
			missing = append(missing, model.Obligation{
				ObligationStudentID:    studentID,
				ObligationCategory:     cat,
				ObligationPeriod:       &p,
				ObligationAmountDueIDR: amount,
			})
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if err := db.WithContext(ctx).Create(&missing).Error; err != nil {
		// race dengan request lain yang materialize duluan → baris sudah ada, bukan error
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return err
	}
	return nil
}

func periodKey(cat catalogModel.BillCategory, period time.Time) string {
	return string(cat) + "|" + period.Format("2006-01")
}

// CreateOneOffObligation membuat kewajiban hutang sekali (mis. pesanan seragam).
func CreateOneOffObligation(ctx context.Context, tx *gorm.DB, studentID, orderID uuid.UUID, amountIDR int) (*model.Obligation, error) {
	o := model.Obligation{
		ObligationStudentID:    studentID,
		ObligationCategory:     catalogModel.BillCategoryUniform,
		ObligationOrderID:      &orderID,
		ObligationAmountDueIDR: amountIDR,
	}
	if err := tx.WithContext(ctx).Create(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ApplyPaid menaikkan amount_paid dengan guard monotonic di SQL:
// update hanya terjadi bila hasil akhir tetap <= amount_due.
// Mengembalikan error bila guard menolak (alokasi salah / race).
func ApplyPaid(ctx context.Context, tx *gorm.DB, obligationID uuid.UUID, deltaIDR int) error {
	if deltaIDR <= 0 {
		return fmt.Errorf("alokasi tidak valid: %d", deltaIDR)
	}
	res := tx.WithContext(ctx).Exec(`
		UPDATE obligations
		   SET obligation_amount_paid_idr = obligation_amount_paid_idr + ?,
		       obligation_updated_at      = NOW()
		 WHERE obligation_id = ?
		   AND obligation_amount_paid_idr + ? <= obligation_amount_due_idr
	`, deltaIDR, obligationID, deltaIDR)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("saldo kewajiban %s akan melewati amount_due (delta=%d)", obligationID, deltaIDR)
	}
	return nil
}

// LockObligations mengambil baris kewajiban FOR UPDATE (serialisasi per entitas).
func LockObligations(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]model.Obligation, error) {
	var rows []model.Obligation
	if err := tx.WithContext(ctx).
		Raw(`SELECT * FROM obligations WHERE obligation_id IN ? ORDER BY obligation_id FOR UPDATE`, ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
