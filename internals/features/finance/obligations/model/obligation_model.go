// file: internals/features/finance/obligations/model/obligation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
)

/* =========================================================
   MODEL — obligations = buku besar kewajiban per siswa.

   Satu baris per (siswa, kategori, periode-bulan) untuk kategori
   bulanan; satu baris per pesanan untuk hutang sekali (seragam).
   amount_due dikunci saat baris dibuat dan tidak pernah berubah
   walau tarif katalog berubah. amount_paid hanya naik, lewat
   settlement yang commit. Baris tidak pernah dihapus.
========================================================= */

type Obligation struct {
	ObligationID uuid.UUID `gorm:"column:obligation_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"obligation_id"`

	ObligationStudentID uuid.UUID                 `gorm:"column:obligation_student_id;type:uuid;not null;uniqueIndex:uniq_obligation_period,priority:1;index" json:"obligation_student_id"`
	ObligationCategory  catalogModel.BillCategory `gorm:"column:obligation_category;type:varchar(20);not null;uniqueIndex:uniq_obligation_period,priority:2" json:"obligation_category"`

	// Tanggal 1 bulan periode. NULL untuk hutang sekali.
	ObligationPeriod *time.Time `gorm:"column:obligation_period;type:date;uniqueIndex:uniq_obligation_period,priority:3" json:"obligation_period,omitempty"`

	// Terisi hanya untuk kewajiban pesanan seragam
	ObligationOrderID *uuid.UUID `gorm:"column:obligation_order_id;type:uuid;index" json:"obligation_order_id,omitempty"`

	ObligationAmountDueIDR  int `gorm:"column:obligation_amount_due_idr;not null;check:obligation_amount_due_idr>=0" json:"obligation_amount_due_idr"`
	ObligationAmountPaidIDR int `gorm:"column:obligation_amount_paid_idr;not null;default:0;check:obligation_amount_paid_idr>=0 AND obligation_amount_paid_idr<=obligation_amount_due_idr" json:"obligation_amount_paid_idr"`

	ObligationCreatedAt time.Time `gorm:"column:obligation_created_at;not null;default:now()" json:"obligation_created_at"`
	ObligationUpdatedAt time.Time `gorm:"column:obligation_updated_at;not null;default:now()" json:"obligation_updated_at"`
}

func (Obligation) TableName() string { return "obligations" }

func (m *Obligation) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.ObligationCreatedAt.IsZero() {
		m.ObligationCreatedAt = now
	}
	m.ObligationUpdatedAt = now
	return nil
}

func (m *Obligation) BeforeUpdate(tx *gorm.DB) error {
	m.ObligationUpdatedAt = time.Now()
	return nil
}

// RemainingIDR sisa tagihan.
func (m *Obligation) RemainingIDR() int {
	return m.ObligationAmountDueIDR - m.ObligationAmountPaidIDR
}

// IsFullyPaid true bila lunas.
func (m *Obligation) IsFullyPaid() bool {
	return m.ObligationAmountPaidIDR == m.ObligationAmountDueIDR
}

// IsOneOff true untuk hutang sekali (tanpa periode bulan).
func (m *Obligation) IsOneOff() bool {
	return m.ObligationPeriod == nil
}
