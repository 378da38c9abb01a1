// file: internals/features/finance/obligations/service/status_service.go
package service

import (
	"time"

	catalog "sekolahku_backend/internals/features/finance/catalog/service"
	model "sekolahku_backend/internals/features/finance/obligations/model"
)

/* =========================================================
   Status kewajiban — fungsi murni atas snapshot ledger.
   Tidak ada side effect; aman dipanggil concurrent.
========================================================= */

type ObligationStatus string

const (
	StatusPaid    ObligationStatus = "paid"    // lunas
	StatusDue     ObligationStatus = "due"     // jatuh tempo bulan berjalan / hutang belum lunas
	StatusArrears ObligationStatus = "arrears" // tunggakan: periode lewat, belum lunas
)

// Derive menghitung status satu kewajiban terhadap waktu sekarang.
func Derive(o model.Obligation, now time.Time) ObligationStatus {
	if o.IsFullyPaid() {
		return StatusPaid
	}
	if o.IsOneOff() {
		return StatusDue
	}
	if catalog.MonthStart(*o.ObligationPeriod).Before(catalog.MonthStart(now)) {
		return StatusArrears
	}
	return StatusDue
}

/* =========================================================
   Laporan tunggakan (agregat per siswa)
========================================================= */

type StudentArrears struct {
	StudentID       string         `json:"student_id"`
	StudentFullName string         `json:"student_full_name"`
	MonthsUnpaid    map[string]int `json:"months_unpaid"` // per kategori
	TotalArrearsIDR int            `json:"total_arrears_idr"`
}

// BuildArrearsRow merangkum tunggakan satu siswa dari snapshot kewajibannya.
// Deterministik: hasil hanya bergantung pada snapshot + now, tidak pada
// urutan pemanggilan antar siswa.
func BuildArrearsRow(studentID, fullName string, obligations []model.Obligation, now time.Time) StudentArrears {
	row := StudentArrears{
		StudentID:       studentID,
		StudentFullName: fullName,
		MonthsUnpaid:    map[string]int{},
	}
	for _, o := range obligations {
		if Derive(o, now) != StatusArrears {
			continue
		}
		row.MonthsUnpaid[string(o.ObligationCategory)]++
		row.TotalArrearsIDR += o.RemainingIDR()
	}
	return row
}

/* =========================================================
   Rincian bulanan (tampilan per periode, per kategori)
========================================================= */

type MonthlyItem struct {
	Month     string           `json:"month"` // yyyy-mm
	Status    ObligationStatus `json:"status"`
	AmountIDR int              `json:"amount_idr"`
	PaidIDR   int              `json:"paid_idr"`
}

// BuildMonthlyItems menyusun rincian satu kategori, urut kronologis.
// obligations diasumsikan sudah milik satu siswa + satu kategori.
func BuildMonthlyItems(obligations []model.Obligation, now time.Time) []MonthlyItem {
	items := make([]MonthlyItem, 0, len(obligations))
	for _, o := range obligations {
		if o.ObligationPeriod == nil {
			continue
		}
		items = append(items, MonthlyItem{
			Month:     o.ObligationPeriod.Format("2006-01"),
			Status:    Derive(o, now),
			AmountIDR: o.ObligationAmountDueIDR,
			PaidIDR:   o.ObligationAmountPaidIDR,
		})
	}
	return items
}
