// file: internals/features/finance/orders/service/order_service.go
package service

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	obligationService "sekolahku_backend/internals/features/finance/obligations/service"
	model "sekolahku_backend/internals/features/finance/orders/model"
)

type OrderItemInput struct {
	UniformID uuid.UUID
	Quantity  int
}

// CreateOrder membuat pesanan seragam dalam satu transaksi:
// cek + kurangi stok (guard di SQL), kunci harga saat pesan,
// lalu terbitkan satu kewajiban hutang sekali sebesar total.
func CreateOrder(ctx context.Context, db *gorm.DB, studentID uuid.UUID, items []OrderItemInput) (*model.UniformOrder, error) {
	if len(items) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "pesanan tidak boleh kosong")
	}

	var order model.UniformOrder
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = model.UniformOrder{UniformOrderStudentID: studentID}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := 0
		for _, in := range items {
			if in.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "jumlah pesanan harus > 0")
			}

			var u model.Uniform
			if err := tx.First(&u, "uniform_id = ?", in.UniformID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound,
					fmt.Sprintf("Seragam tidak ditemukan: %s", in.UniformID))
			}

			// decrement dengan guard stok di SQL (hindari race antar pesanan)
			res := tx.Exec(`
				UPDATE uniforms
				   SET uniform_stock = uniform_stock - ?,
				       uniform_updated_at = NOW()
				 WHERE uniform_id = ? AND uniform_stock >= ?
			`, in.Quantity, in.UniformID, in.Quantity)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Stok tidak cukup untuk: %s (tersedia: %d)", u.UniformName, u.UniformStock))
			}

			subtotal := u.UniformPriceIDR * in.Quantity
			total += subtotal

			item := model.UniformOrderItem{
				UniformOrderItemOrderID:     order.UniformOrderID,
				UniformOrderItemUniformID:   u.UniformID,
				UniformOrderItemQuantity:    in.Quantity,
				UniformOrderItemPriceIDR:    u.UniformPriceIDR,
				UniformOrderItemSubtotalIDR: subtotal,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}

		if total <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "total pesanan harus > 0")
		}

		order.UniformOrderTotalIDR = total
		if err := tx.Model(&model.UniformOrder{}).
			Where("uniform_order_id = ?", order.UniformOrderID).
			Update("uniform_order_total_idr", total).Error; err != nil {
			return err
		}

		// hutang sekali masuk ledger; pembayaran (boleh dicicil) lewat charge session
		if _, err := obligationService.CreateOneOffObligation(ctx, tx, studentID, order.UniformOrderID, total); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
