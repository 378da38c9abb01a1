// file: internals/features/finance/payments/service/reconcile_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ledger "sekolahku_backend/internals/features/finance/obligations/service"
	model "sekolahku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Reconciler — menerapkan hasil webhook gateway ke ledger.

   Exactly-once: insert gateway_events (unique external_id+outcome)
   duluan; kalau kena 23505 berarti notifikasi kembar → no-op sukses.
   Alokasi waterfall: urut position item (kewajiban tertua dulu).
========================================================= */

// AllocationLine = satu baris target alokasi.
type AllocationLine struct {
	ObligationID uuid.UUID
	AmountIDR    int
}

// Allocation = hasil waterfall per kewajiban.
type Allocation struct {
	ObligationID uuid.UUID
	AppliedIDR   int
}

// Allocate membagi amount ke lines secara berurutan (waterfall).
// Baris pertama dipenuhi dulu sampai penuh, sisanya turun ke bawah.
// Sisa dana setelah semua baris penuh dikembalikan sebagai leftover.
func Allocate(amountIDR int, lines []AllocationLine) ([]Allocation, int) {
	out := make([]Allocation, 0, len(lines))
	remaining := amountIDR
	for _, line := range lines {
		applied := line.AmountIDR
		if applied > remaining {
			applied = remaining
		}
		if applied < 0 {
			applied = 0
		}
		out = append(out, Allocation{ObligationID: line.ObligationID, AppliedIDR: applied})
		remaining -= applied
	}
	return out, remaining
}

type Reconciler struct {
	DB *gorm.DB
}

func NewReconciler(db *gorm.DB) *Reconciler { return &Reconciler{DB: db} }

// NotificationInput = hasil parse webhook yang sudah diverifikasi signature-nya.
type NotificationInput struct {
	ExternalID string // order_id sesi
	Outcome    string // settled | failed | expired
	GrossIDR   int
	Provider   string
	Signature  *string
	Headers    datatypes.JSON
	Payload    datatypes.JSON
}

// ApplySettlement menerapkan settlement ke sesi + ledger.
func (r *Reconciler) ApplySettlement(ctx context.Context, in NotificationInput) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := findSessionByExternalID(ctx, tx, in.ExternalID)
		if err != nil {
			return err
		}

		duplicate, err := recordEvent(ctx, tx, session, in)
		if err != nil {
			return err
		}
		if duplicate {
			log.Printf("[WEBHOOK] notifikasi kembar order %s outcome %s, dilewati", in.ExternalID, in.Outcome)
			return nil
		}

		switch session.ChargeSessionStatus {
		case model.ChargeSessionStatusSettled:
			// outcome baru untuk sesi yang sudah settled → cuma tercatat di log event
			return nil

		case model.ChargeSessionStatusExpired, model.ChargeSessionStatusFailed:
			// settlement telat: dana masuk tapi sesi sudah terminal.
			// Saldo kewajiban TIDAK disentuh; catat payment berflag review.
			return r.recordLateSettlement(ctx, tx, session, in)

		case model.ChargeSessionStatusPending:
			return r.settlePending(ctx, tx, session, in)

		default:
			return ErrUnknownSession
		}
	})
}

// ApplyFailure menandai sesi failed/expired dari notifikasi gateway.
func (r *Reconciler) ApplyFailure(ctx context.Context, in NotificationInput) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := findSessionByExternalID(ctx, tx, in.ExternalID)
		if err != nil {
			return err
		}

		duplicate, err := recordEvent(ctx, tx, session, in)
		if err != nil {
			return err
		}
		if duplicate || session.IsTerminal() {
			return nil
		}

		next := model.ChargeSessionStatusFailed
		if in.Outcome == "expired" {
			next = model.ChargeSessionStatusExpired
		}
		return tx.Model(&model.ChargeSession{}).
			Where("charge_session_id = ? AND charge_session_status = 'pending'", session.ChargeSessionID).
			Updates(map[string]interface{}{
				"charge_session_status":     next,
				"charge_session_updated_at": time.Now(),
			}).Error
	})
}

/* ===================== Inti settlement ===================== */

func (r *Reconciler) settlePending(ctx context.Context, tx *gorm.DB, session *model.ChargeSession, in NotificationInput) error {
	// lock sesi dulu, lalu kewajiban (urutan id) — cegah deadlock antar webhook
	if err := tx.Raw(`
		SELECT charge_session_id FROM charge_sessions
		 WHERE charge_session_id = ? FOR UPDATE
	`, session.ChargeSessionID).Scan(&session.ChargeSessionID).Error; err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(session.Items))
	lines := make([]AllocationLine, 0, len(session.Items))
	for _, it := range session.Items {
		ids = append(ids, it.ChargeSessionItemObligationID)
		lines = append(lines, AllocationLine{
			ObligationID: it.ChargeSessionItemObligationID,
			AmountIDR:    it.ChargeSessionItemAmountIDR,
		})
	}
	if _, err := ledger.LockObligations(ctx, tx, ids); err != nil {
		return err
	}

	gross := in.GrossIDR
	if gross <= 0 {
		gross = session.ChargeSessionTotalIDR
	}
	allocations, leftover := Allocate(gross, lines)
	if leftover > 0 {
		log.Printf("[WEBHOOK] order %s kelebihan bayar %d IDR, tidak dialokasikan", in.ExternalID, leftover)
	}

	for i, alloc := range allocations {
		if alloc.AppliedIDR == 0 {
			continue
		}
		if err := ledger.ApplyPaid(ctx, tx, alloc.ObligationID, alloc.AppliedIDR); err != nil {
			return err
		}
		item := session.Items[i]
		if err := tx.Model(&model.ChargeSessionItem{}).
			Where("charge_session_item_id = ?", item.ChargeSessionItemID).
			Update("charge_session_item_allocated_idr", alloc.AppliedIDR).Error; err != nil {
			return err
		}
	}

	now := time.Now()
	payment := model.Payment{
		PaymentSessionID:   session.ChargeSessionID,
		PaymentStudentID:   session.ChargeSessionStudentID,
		PaymentAmountIDR:   gross,
		PaymentCurrency:    session.ChargeSessionCurrency,
		PaymentStatus:      model.PaymentStatusSettled,
		PaymentExternalRef: &in.ExternalID,
		PaymentMeta:        in.Payload,
		PaymentSettledAt:   &now,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return err
	}

	return tx.Model(&model.ChargeSession{}).
		Where("charge_session_id = ?", session.ChargeSessionID).
		Updates(map[string]interface{}{
			"charge_session_status":     model.ChargeSessionStatusSettled,
			"charge_session_settled_at": now,
			"charge_session_updated_at": now,
		}).Error
}

func (r *Reconciler) recordLateSettlement(ctx context.Context, tx *gorm.DB, session *model.ChargeSession, in NotificationInput) error {
	log.Printf("[WEBHOOK] late settlement order %s: sesi sudah %s, dana perlu review manual",
		in.ExternalID, session.ChargeSessionStatus)

	gross := in.GrossIDR
	if gross <= 0 {
		gross = session.ChargeSessionTotalIDR
	}
	now := time.Now()
	payment := model.Payment{
		PaymentSessionID:      session.ChargeSessionID,
		PaymentStudentID:      session.ChargeSessionStudentID,
		PaymentAmountIDR:      gross,
		PaymentCurrency:       session.ChargeSessionCurrency,
		PaymentStatus:         model.PaymentStatusSettled,
		PaymentExternalRef:    &in.ExternalID,
		PaymentLateSettlement: true,
		PaymentMeta:           in.Payload,
		PaymentSettledAt:      &now,
	}
	return tx.Create(&payment).Error
}

/* ===================== Helpers ===================== */

func findSessionByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*model.ChargeSession, error) {
	var s model.ChargeSession
	err := tx.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("charge_session_item_position ASC")
		}).
		Where("charge_session_external_id = ?", externalID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownSession
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// recordEvent mencatat notifikasi; true kalau (external_id, outcome) sudah pernah.
// Pakai ON CONFLICT DO NOTHING, bukan tangkap 23505: error unique membatalkan
// transaksi Postgres yang sedang berjalan, jadi duplikat dideteksi dari RowsAffected.
func recordEvent(ctx context.Context, tx *gorm.DB, session *model.ChargeSession, in NotificationInput) (bool, error) {
	now := time.Now()
	event := model.GatewayEvent{
		GatewayEventSessionID:   &session.ChargeSessionID,
		GatewayEventProvider:    in.Provider,
		GatewayEventExternalID:  in.ExternalID,
		GatewayEventOutcome:     in.Outcome,
		GatewayEventHeaders:     in.Headers,
		GatewayEventPayload:     in.Payload,
		GatewayEventSignature:   in.Signature,
		GatewayEventStatus:      model.GatewayEventStatusProcessed,
		GatewayEventProcessedAt: &now,
	}
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 0, nil
}
