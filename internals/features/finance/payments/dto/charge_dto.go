// file: internals/features/finance/payments/dto/charge_dto.go
package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
	model "sekolahku_backend/internals/features/finance/payments/model"
	service "sekolahku_backend/internals/features/finance/payments/service"
)

/* =========================================================
   CHARGES — DTO
========================================================= */

// Satu selector = satu tagihan yang mau dibayar.
// Kategori bulanan pakai period ("2025-08"); hutang sekali pakai
// obligation_id, boleh ditambah amount_idr untuk cicilan.
type ChargeSelectorDTO struct {
	Category     string  `json:"category" validate:"required,oneof=infaq kas spp uniform"`
	Period       *string `json:"period,omitempty" validate:"omitempty,len=7"` // yyyy-mm
	ObligationID *string `json:"obligation_id,omitempty" validate:"omitempty,uuid"`
	AmountIDR    *int    `json:"amount_idr,omitempty" validate:"omitempty,min=1"`
}

type CreateChargeDTO struct {
	Selectors      []ChargeSelectorDTO `json:"selectors" validate:"required,min=1,dive"`
	IdempotencyKey string              `json:"idempotency_key,omitempty" validate:"omitempty,max=128"`
}

// ToSelectors menerjemahkan DTO ke selector engine.
func (d *CreateChargeDTO) ToSelectors() ([]service.Selector, error) {
	out := make([]service.Selector, 0, len(d.Selectors))
	for i, s := range d.Selectors {
		sel := service.Selector{Category: catalogModel.BillCategory(s.Category)}
		if s.Period != nil {
			t, err := time.Parse("2006-01", *s.Period)
			if err != nil {
				return nil, fmt.Errorf("selector[%d]: period %q tidak valid (format yyyy-mm)", i, *s.Period)
			}
			sel.Period = &t
		}
		if s.ObligationID != nil {
			id, err := uuid.Parse(*s.ObligationID)
			if err != nil {
				return nil, fmt.Errorf("selector[%d]: obligation_id tidak valid", i)
			}
			sel.ObligationID = &id
		}
		sel.AmountIDR = s.AmountIDR
		out = append(out, sel)
	}
	return out, nil
}

/* ===================== Responses ===================== */

type ChargeSessionItemResponse struct {
	ObligationID uuid.UUID `json:"obligation_id"`
	AmountIDR    int       `json:"amount_idr"`
}

type ChargeSessionResponse struct {
	ChargeSessionID uuid.UUID                   `json:"charge_session_id"`
	ExternalID      string                      `json:"external_id"`
	Status          string                      `json:"status"`
	TotalIDR        int                         `json:"total_idr"`
	Currency        string                      `json:"currency"`
	CheckoutURL     *string                     `json:"checkout_url,omitempty"`
	ExpiresAt       time.Time                   `json:"expires_at"`
	Items           []ChargeSessionItemResponse `json:"items"`
	CreatedAt       time.Time                   `json:"created_at"`
}

func FromSessionModel(m *model.ChargeSession) ChargeSessionResponse {
	items := make([]ChargeSessionItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, ChargeSessionItemResponse{
			ObligationID: it.ChargeSessionItemObligationID,
			AmountIDR:    it.ChargeSessionItemAmountIDR,
		})
	}
	return ChargeSessionResponse{
		ChargeSessionID: m.ChargeSessionID,
		ExternalID:      m.ChargeSessionExternalID,
		Status:          string(m.ChargeSessionStatus),
		TotalIDR:        m.ChargeSessionTotalIDR,
		Currency:        m.ChargeSessionCurrency,
		CheckoutURL:     m.ChargeSessionCheckoutURL,
		ExpiresAt:       m.ChargeSessionExpiresAt,
		Items:           items,
		CreatedAt:       m.ChargeSessionCreatedAt,
	}
}

type PaymentResponse struct {
	PaymentID      uuid.UUID  `json:"payment_id"`
	SessionID      uuid.UUID  `json:"session_id"`
	AmountIDR      int        `json:"amount_idr"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	ExternalRef    *string    `json:"external_ref,omitempty"`
	LateSettlement bool       `json:"late_settlement"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromPaymentModel(m *model.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      m.PaymentID,
		SessionID:      m.PaymentSessionID,
		AmountIDR:      m.PaymentAmountIDR,
		Currency:       m.PaymentCurrency,
		Status:         string(m.PaymentStatus),
		ExternalRef:    m.PaymentExternalRef,
		LateSettlement: m.PaymentLateSettlement,
		SettledAt:      m.PaymentSettledAt,
		CreatedAt:      m.PaymentCreatedAt,
	}
}

func FromPaymentModels(ms []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromPaymentModel(&ms[i]))
	}
	return out
}
