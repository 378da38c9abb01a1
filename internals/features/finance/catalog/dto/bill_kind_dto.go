// file: internals/features/finance/catalog/dto/bill_kind_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/finance/catalog/model"
)

/* =========================================================
   BILL KINDS — DTO
========================================================= */

// Create — tarif baru selalu baris baru dengan effective_from;
// tarif lama tidak pernah diubah (amount lock-in di obligations).
type BillKindCreateDTO struct {
	BillKindCategory      string    `json:"bill_kind_category" validate:"required,oneof=infaq kas spp uniform"`
	BillKindAmountIDR     int       `json:"bill_kind_amount_idr" validate:"required,min=1"`
	BillKindEffectiveFrom time.Time `json:"bill_kind_effective_from" validate:"required"`
	BillKindNote          *string   `json:"bill_kind_note,omitempty" validate:"omitempty,max=200"`
}

func (d *BillKindCreateDTO) ToModel() *model.BillKind {
	return &model.BillKind{
		BillKindCategory:      model.BillCategory(d.BillKindCategory),
		BillKindAmountIDR:     d.BillKindAmountIDR,
		BillKindEffectiveFrom: d.BillKindEffectiveFrom,
		BillKindNote:          d.BillKindNote,
	}
}

// Response
type BillKindResponse struct {
	BillKindID            uuid.UUID `json:"bill_kind_id"`
	BillKindCategory      string    `json:"bill_kind_category"`
	BillKindAmountIDR     int       `json:"bill_kind_amount_idr"`
	BillKindEffectiveFrom string    `json:"bill_kind_effective_from"` // yyyy-mm
	BillKindNote          *string   `json:"bill_kind_note,omitempty"`
	BillKindCreatedAt     time.Time `json:"bill_kind_created_at"`
}

func FromBillKindModel(m *model.BillKind) BillKindResponse {
	return BillKindResponse{
		BillKindID:            m.BillKindID,
		BillKindCategory:      string(m.BillKindCategory),
		BillKindAmountIDR:     m.BillKindAmountIDR,
		BillKindEffectiveFrom: m.BillKindEffectiveFrom.Format("2006-01"),
		BillKindNote:          m.BillKindNote,
		BillKindCreatedAt:     m.BillKindCreatedAt,
	}
}

func FromBillKindModels(ms []model.BillKind) []BillKindResponse {
	out := make([]BillKindResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromBillKindModel(&ms[i]))
	}
	return out
}
