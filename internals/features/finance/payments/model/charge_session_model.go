// file: internals/features/finance/payments/model/charge_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== Enums (string) ===================== */

type ChargeSessionStatus string

const (
	ChargeSessionStatusPending ChargeSessionStatus = "pending"
	ChargeSessionStatusSettled ChargeSessionStatus = "settled"
	ChargeSessionStatusFailed  ChargeSessionStatus = "failed"
	ChargeSessionStatusExpired ChargeSessionStatus = "expired"
)

/* =========================================================
   MODEL — charge_sessions = sesi tagihan gateway.
   Satu sesi membekukan subset kewajiban + nominalnya sampai
   terminal (settled / failed / expired).

   Catatan index: obligation_hash dijaga partial unique
   (WHERE charge_session_status = 'pending') — lihat migrations.
========================================================= */

type ChargeSession struct {
	ChargeSessionID uuid.UUID `gorm:"column:charge_session_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"charge_session_id"`

	ChargeSessionStudentID uuid.UUID `gorm:"column:charge_session_student_id;type:uuid;not null;index" json:"charge_session_student_id"`

	ChargeSessionTotalIDR int    `gorm:"column:charge_session_total_idr;not null;check:charge_session_total_idr>0" json:"charge_session_total_idr"`
	ChargeSessionCurrency string `gorm:"column:charge_session_currency;type:varchar(8);not null;default:IDR" json:"charge_session_currency"`

	ChargeSessionStatus ChargeSessionStatus `gorm:"column:charge_session_status;type:varchar(20);not null;default:pending;index" json:"charge_session_status"`

	// order_id yang dikirim ke gateway; kunci pencarian saat webhook masuk
	ChargeSessionExternalID  string  `gorm:"column:charge_session_external_id;type:varchar(64);uniqueIndex;not null" json:"charge_session_external_id"`
	ChargeSessionCheckoutURL *string `gorm:"column:charge_session_checkout_url" json:"charge_session_checkout_url,omitempty"`

	// unik hanya untuk sesi pending/settled — key bekas sesi failed/expired
	// boleh dipakai ulang untuk retry (lihat migrations)
	ChargeSessionIdempotencyKey string `gorm:"column:charge_session_idempotency_key;type:varchar(128);not null;index" json:"charge_session_idempotency_key"`

	// digest himpunan kewajiban; partial unique selama pending
	ChargeSessionObligationHash string `gorm:"column:charge_session_obligation_hash;type:char(64);not null;index" json:"-"`

	ChargeSessionExpiresAt time.Time  `gorm:"column:charge_session_expires_at;not null;index" json:"charge_session_expires_at"`
	ChargeSessionSettledAt *time.Time `gorm:"column:charge_session_settled_at" json:"charge_session_settled_at,omitempty"`

	ChargeSessionCreatedAt time.Time `gorm:"column:charge_session_created_at;not null;default:now()" json:"charge_session_created_at"`
	ChargeSessionUpdatedAt time.Time `gorm:"column:charge_session_updated_at;not null;default:now()" json:"charge_session_updated_at"`

	Items []ChargeSessionItem `gorm:"foreignKey:ChargeSessionItemSessionID;references:ChargeSessionID" json:"items,omitempty"`
}

func (ChargeSession) TableName() string { return "charge_sessions" }

// IsTerminal: sesi terminal tidak pernah balik ke pending.
func (s *ChargeSession) IsTerminal() bool {
	return s.ChargeSessionStatus != ChargeSessionStatusPending
}

/* =========================================================
   MODEL — charge_session_items = baris kewajiban dalam sesi.
   Position = urutan alokasi waterfall (tertua duluan).
========================================================= */

type ChargeSessionItem struct {
	ChargeSessionItemID uuid.UUID `gorm:"column:charge_session_item_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"charge_session_item_id"`

	ChargeSessionItemSessionID    uuid.UUID `gorm:"column:charge_session_item_session_id;type:uuid;not null;index" json:"charge_session_item_session_id"`
	ChargeSessionItemObligationID uuid.UUID `gorm:"column:charge_session_item_obligation_id;type:uuid;not null;index" json:"charge_session_item_obligation_id"`

	ChargeSessionItemPosition  int `gorm:"column:charge_session_item_position;not null" json:"charge_session_item_position"`
	ChargeSessionItemAmountIDR int `gorm:"column:charge_session_item_amount_idr;not null;check:charge_session_item_amount_idr>0" json:"charge_session_item_amount_idr"`

	// berapa yang benar-benar dialokasikan saat settlement
	ChargeSessionItemAllocatedIDR int `gorm:"column:charge_session_item_allocated_idr;not null;default:0" json:"charge_session_item_allocated_idr"`

	ChargeSessionItemCreatedAt time.Time `gorm:"column:charge_session_item_created_at;not null;default:now()" json:"charge_session_item_created_at"`
}

func (ChargeSessionItem) TableName() string { return "charge_session_items" }
