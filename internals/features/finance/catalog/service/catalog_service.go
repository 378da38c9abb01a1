// file: internals/features/finance/catalog/service/catalog_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/catalog/model"
)

/* =========================================================
   ConfigurationError — tarif belum dikonfigurasi.
   Fatal: tidak boleh default ke nol diam-diam.
========================================================= */

type ConfigurationError struct {
	Category model.BillCategory
	Month    time.Time
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tarif %s belum dikonfigurasi untuk periode %s",
		e.Category, e.Month.Format("2006-01"))
}

/* =========================================================
   Fungsi murni — generate periode & pilih tarif berlaku
========================================================= */

// MonthStart menormalkan waktu ke tanggal 1 bulan tsb (UTC).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodsFor menghasilkan satu periode per bulan kalender dari bulan
// pendaftaran siswa sampai asOf (inklusif), urut kronologis.
// Kosong untuk kategori non-bulanan.
func PeriodsFor(category model.BillCategory, enrolledAt, asOf time.Time) []time.Time {
	if !category.IsRecurring() {
		return nil
	}
	start := MonthStart(enrolledAt)
	end := MonthStart(asOf)
	if end.Before(start) {
		return nil
	}

	var periods []time.Time
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		periods = append(periods, m)
	}
	return periods
}

// AmountFor memilih tarif yang berlaku saat bulan periode dimulai:
// baris dengan effective_from terbesar yang <= awal bulan.
// kinds tidak harus terurut. Error bila tidak ada tarif yang berlaku.
func AmountFor(kinds []model.BillKind, category model.BillCategory, period time.Time) (int, error) {
	month := MonthStart(period)

	found := false
	var best model.BillKind
	for _, k := range kinds {
		if k.BillKindCategory != category {
			continue
		}
		eff := MonthStart(k.BillKindEffectiveFrom)
		if eff.After(month) {
			continue
		}
		if !found || eff.After(MonthStart(best.BillKindEffectiveFrom)) {
			best = k
			found = true
		}
	}
	if !found {
		return 0, &ConfigurationError{Category: category, Month: month}
	}
	return best.BillKindAmountIDR, nil
}

/* =========================================================
   Akses store
========================================================= */

// LoadSchedule mengambil semua baris tarif (read-mostly, aman di-cache
// per request; jangan cache lintas request tanpa invalidasi).
func LoadSchedule(ctx context.Context, db *gorm.DB) ([]model.BillKind, error) {
	var kinds []model.BillKind
	if err := db.WithContext(ctx).
		Order("bill_kind_category ASC, bill_kind_effective_from ASC").
		Find(&kinds).Error; err != nil {
		return nil, err
	}
	return kinds, nil
}

// CurrentAmountFor = AmountFor terhadap schedule dari DB.
func CurrentAmountFor(ctx context.Context, db *gorm.DB, category model.BillCategory, period time.Time) (int, error) {
	var k model.BillKind
	err := db.WithContext(ctx).
		Where("bill_kind_category = ? AND bill_kind_effective_from <= ?", category, MonthStart(period)).
		Order("bill_kind_effective_from DESC").
		First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, &ConfigurationError{Category: category, Month: MonthStart(period)}
	}
	if err != nil {
		return 0, err
	}
	return k.BillKindAmountIDR, nil
}
