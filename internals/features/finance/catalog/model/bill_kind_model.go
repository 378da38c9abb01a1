// file: internals/features/finance/catalog/model/bill_kind_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — kategori tagihan (closed set, jangan tambah sembarangan)
========================================================= */

type BillCategory string

const (
	BillCategoryInfaq   BillCategory = "infaq"   // iuran bulanan
	BillCategoryKas     BillCategory = "kas"     // kas kelas bulanan
	BillCategorySPP     BillCategory = "spp"     // SPP bulanan
	BillCategoryUniform BillCategory = "uniform" // hutang sekali (pesanan seragam)
)

// IsRecurring true untuk kategori yang punya periode bulanan.
func (c BillCategory) IsRecurring() bool {
	switch c {
	case BillCategoryInfaq, BillCategoryKas, BillCategorySPP:
		return true
	case BillCategoryUniform:
		return false
	}
	return false
}

// Valid memastikan kategori dikenal (hindari fallthrough diam-diam).
func (c BillCategory) Valid() bool {
	switch c {
	case BillCategoryInfaq, BillCategoryKas, BillCategorySPP, BillCategoryUniform:
		return true
	}
	return false
}

/* =========================================================
   MODEL — bill_kinds = jadwal tarif per kategori
   Satu kategori bisa punya banyak baris (tarif berubah dari waktu
   ke waktu); tarif yang berlaku untuk satu periode = baris dengan
   effective_from terbesar yang <= awal bulan periode tsb.
========================================================= */

type BillKind struct {
	BillKindID uuid.UUID `gorm:"column:bill_kind_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"bill_kind_id"`

	BillKindCategory  BillCategory `gorm:"column:bill_kind_category;type:varchar(20);not null;uniqueIndex:uniq_kind_category_effective,priority:1" json:"bill_kind_category"`
	BillKindAmountIDR int          `gorm:"column:bill_kind_amount_idr;not null;check:bill_kind_amount_idr>0" json:"bill_kind_amount_idr"`

	// Dinormalkan ke tanggal 1 bulan berlaku
	BillKindEffectiveFrom time.Time `gorm:"column:bill_kind_effective_from;type:date;not null;uniqueIndex:uniq_kind_category_effective,priority:2" json:"bill_kind_effective_from"`

	BillKindNote *string `gorm:"column:bill_kind_note" json:"bill_kind_note,omitempty"`

	BillKindCreatedAt time.Time      `gorm:"column:bill_kind_created_at;not null;default:now()" json:"bill_kind_created_at"`
	BillKindUpdatedAt time.Time      `gorm:"column:bill_kind_updated_at;not null;default:now()" json:"bill_kind_updated_at"`
	BillKindDeletedAt gorm.DeletedAt `gorm:"column:bill_kind_deleted_at;index" json:"-"`
}

func (BillKind) TableName() string { return "bill_kinds" }

func (m *BillKind) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.BillKindCreatedAt.IsZero() {
		m.BillKindCreatedAt = now
	}
	m.BillKindUpdatedAt = now
	// normalisasi ke awal bulan
	m.BillKindEffectiveFrom = time.Date(
		m.BillKindEffectiveFrom.Year(), m.BillKindEffectiveFrom.Month(), 1,
		0, 0, 0, 0, time.UTC,
	)
	return nil
}

func (m *BillKind) BeforeUpdate(tx *gorm.DB) error {
	m.BillKindUpdatedAt = time.Now()
	return nil
}
