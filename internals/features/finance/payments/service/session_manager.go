// file: internals/features/finance/payments/service/session_manager.go
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Payment Session Manager.

   - Idempoten: key yang sama → sesi pending/settled yang sudah ada
     dikembalikan apa adanya, tidak bikin duplikat.
   - Konflik: kewajiban yang sudah tercakup sesi pending lain → tolak.
     Dijaga dua lapis: pre-check + partial unique index obligation_hash.
   - Gateway dipanggil DI DALAM transaksi; kalau gagal, record pending
     ikut rollback — tidak ada sesi pending menggantung.
========================================================= */

type SessionManager struct {
	DB         *gorm.DB
	Gateway    Gateway
	SessionTTL time.Duration
}

func NewSessionManager(db *gorm.DB, gw Gateway, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{DB: db, Gateway: gw, SessionTTL: ttl}
}

// OpenSession membuka satu sesi gateway untuk quote.
func (sm *SessionManager) OpenSession(ctx context.Context, quote *Quote, idempotencyKey string, cust CustomerInput) (*model.ChargeSession, error) {
	if strings.TrimSpace(idempotencyKey) == "" {
		return nil, fmt.Errorf("%w: idempotency key wajib", ErrInvalidAmount)
	}

	// replay idempoten (di luar tx; unique index tetap jadi penentu akhir)
	if existing, err := sm.findByIdempotencyKey(ctx, idempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	hash := ObligationSetHash(quote.ObligationIDs())
	now := time.Now()

	var session model.ChargeSession
	err := sm.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// pre-check konflik: ada sesi pending lain yang menyentuh kewajiban yang sama?
		var count int64
		if err := tx.Raw(`
			SELECT COUNT(*)
			  FROM charge_session_items i
			  JOIN charge_sessions s ON s.charge_session_id = i.charge_session_item_session_id
			 WHERE s.charge_session_status = 'pending'
			   AND s.charge_session_student_id = ?
			   AND i.charge_session_item_obligation_id IN ?
		`, quote.StudentID, quote.ObligationIDs()).Scan(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSessionConflict
		}

		session = model.ChargeSession{
			ChargeSessionStudentID:      quote.StudentID,
			ChargeSessionTotalIDR:       quote.TotalIDR,
			ChargeSessionCurrency:       "IDR",
			ChargeSessionStatus:         model.ChargeSessionStatusPending,
			ChargeSessionExternalID:     GenOrderID("CHG"),
			ChargeSessionIdempotencyKey: idempotencyKey,
			ChargeSessionObligationHash: hash,
			ChargeSessionExpiresAt:      now.Add(sm.SessionTTL),
		}
		if err := tx.Create(&session).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				// race: hash pending atau idempotency key keburu dipakai
				return ErrSessionConflict
			}
			return err
		}

		for i, line := range quote.Lines {
			item := model.ChargeSessionItem{
				ChargeSessionItemSessionID:    session.ChargeSessionID,
				ChargeSessionItemObligationID: line.ObligationID,
				ChargeSessionItemPosition:     i,
				ChargeSessionItemAmountIDR:    line.AmountIDR,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			session.Items = append(session.Items, item)
		}

		// panggil gateway di dalam tx: gagal → seluruh record pending rollback
		checkout, err := sm.Gateway.CreateSession(GatewayRequest{
			OrderID:     session.ChargeSessionExternalID,
			GrossIDR:    session.ChargeSessionTotalIDR,
			Description: describeQuote(quote),
			ExpiresIn:   sm.SessionTTL,
			Customer:    cust,
		})
		if err != nil {
			log.Printf("[CHARGE] gateway gagal untuk order %s: %v", session.ChargeSessionExternalID, err)
			return err
		}

		session.ChargeSessionCheckoutURL = &checkout.RedirectURL
		return tx.Model(&model.ChargeSession{}).
			Where("charge_session_id = ?", session.ChargeSessionID).
			Update("charge_session_checkout_url", checkout.RedirectURL).Error
	})
	if err != nil {
		// race idempotency: request kembar menang duluan → kembalikan miliknya
		if errors.Is(err, ErrSessionConflict) {
			if existing, ferr := sm.findByIdempotencyKey(ctx, idempotencyKey); ferr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return &session, nil
}

func (sm *SessionManager) findByIdempotencyKey(ctx context.Context, key string) (*model.ChargeSession, error) {
	var s model.ChargeSession
	err := sm.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("charge_session_item_position ASC")
		}).
		Where("charge_session_idempotency_key = ?", key).
		Where("charge_session_status IN ?", []model.ChargeSessionStatus{
			model.ChargeSessionStatusPending, model.ChargeSessionStatusSettled,
		}).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

/* ===================== Helpers ===================== */

// ObligationSetHash merangkum himpunan kewajiban jadi satu digest stabil
// (urutan input tidak berpengaruh) untuk unique index anti-double-session.
func ObligationSetHash(ids []uuid.UUID) string {
	ss := make([]string, 0, len(ids))
	for _, id := range ids {
		ss = append(ss, id.String())
	}
	sort.Strings(ss)
	sum := sha256.Sum256([]byte(strings.Join(ss, ",")))
	return hex.EncodeToString(sum[:])
}

// GenOrderID membuat order_id dengan prefix tertentu (dipakai di Midtrans).
func GenOrderID(prefix string) string {
	now := time.Now().In(time.Local).Format("20060102-150405")
	u := uuid.New().String()
	if len(u) > 8 {
		u = u[:8]
	}
	return prefix + "-" + now + "-" + strings.ToUpper(u)
}

func describeQuote(q *Quote) string {
	counts := map[string]int{}
	for _, l := range q.Lines {
		counts[string(l.Category)]++
	}
	parts := make([]string, 0, len(counts))
	for _, cat := range []string{"infaq", "kas", "spp", "uniform"} {
		if n := counts[cat]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", cat, n))
		}
	}
	return "Pembayaran: " + strings.Join(parts, ", ")
}
