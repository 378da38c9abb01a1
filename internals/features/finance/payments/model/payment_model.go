// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ===================== Enums (string) ===================== */

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSettled PaymentStatus = "settled"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusExpired PaymentStatus = "expired"
)

/* =========================================================
   MODEL — payments = catatan pembayaran, append-only.
   Satu payment per settlement sesi; tidak pernah di-update
   kecuali transisi status + settled_at oleh reconciler.
   Payment pending TIDAK mengubah saldo kewajiban apa pun.
========================================================= */

type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`

	PaymentSessionID uuid.UUID `gorm:"column:payment_session_id;type:uuid;not null;index" json:"payment_session_id"`
	PaymentStudentID uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index" json:"payment_student_id"`

	PaymentAmountIDR int    `gorm:"column:payment_amount_idr;not null;check:payment_amount_idr>0" json:"payment_amount_idr"`
	PaymentCurrency  string `gorm:"column:payment_currency;type:varchar(8);not null;default:IDR" json:"payment_currency"`

	PaymentStatus PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;index" json:"payment_status"`

	// referensi transaksi di gateway
	PaymentExternalRef *string `gorm:"column:payment_external_ref" json:"payment_external_ref,omitempty"`

	// settlement datang setelah sesi expired/failed → butuh review manual
	PaymentLateSettlement bool `gorm:"column:payment_late_settlement;not null;default:false" json:"payment_late_settlement"`

	PaymentMeta datatypes.JSON `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	PaymentCreatedAt time.Time  `gorm:"column:payment_created_at;not null;default:now()" json:"payment_created_at"`
	PaymentSettledAt *time.Time `gorm:"column:payment_settled_at" json:"payment_settled_at,omitempty"`
}

func (Payment) TableName() string { return "payments" }
