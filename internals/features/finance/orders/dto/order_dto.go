// file: internals/features/finance/orders/dto/order_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/finance/orders/model"
)

/* ===================== Requests ===================== */

type CreateOrderItemDTO struct {
	UniformID uuid.UUID `json:"uniform_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderDTO struct {
	Items []CreateOrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

/* ===================== Responses ===================== */

type UniformResponse struct {
	UniformID       uuid.UUID `json:"uniform_id"`
	UniformName     string    `json:"uniform_name"`
	UniformSize     string    `json:"uniform_size"`
	UniformPriceIDR int       `json:"uniform_price_idr"`
	UniformStock    int       `json:"uniform_stock"`
}

func FromUniformModels(ms []model.Uniform) []UniformResponse {
	out := make([]UniformResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, UniformResponse{
			UniformID:       m.UniformID,
			UniformName:     m.UniformName,
			UniformSize:     m.UniformSize,
			UniformPriceIDR: m.UniformPriceIDR,
			UniformStock:    m.UniformStock,
		})
	}
	return out
}

type OrderItemResponse struct {
	UniformID   uuid.UUID `json:"uniform_id"`
	Quantity    int       `json:"quantity"`
	PriceIDR    int       `json:"price_idr"`
	SubtotalIDR int       `json:"subtotal_idr"`
}

type OrderResponse struct {
	UniformOrderID uuid.UUID           `json:"uniform_order_id"`
	TotalIDR       int                 `json:"total_idr"`
	PaidIDR        int                 `json:"paid_idr"`
	Status         string              `json:"status"`
	OrderedAt      time.Time           `json:"ordered_at"`
	Items          []OrderItemResponse `json:"items"`
}

func FromOrderModel(m *model.UniformOrder, paidIDR int, status string) OrderResponse {
	resp := OrderResponse{
		UniformOrderID: m.UniformOrderID,
		TotalIDR:       m.UniformOrderTotalIDR,
		PaidIDR:        paidIDR,
		Status:         status,
		OrderedAt:      m.UniformOrderOrderedAt,
	}
	for _, it := range m.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			UniformID:   it.UniformOrderItemUniformID,
			Quantity:    it.UniformOrderItemQuantity,
			PriceIDR:    it.UniformOrderItemPriceIDR,
			SubtotalIDR: it.UniformOrderItemSubtotalIDR,
		})
	}
	return resp
}
