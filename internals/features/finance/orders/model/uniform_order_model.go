// file: internals/features/finance/orders/model/uniform_order_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL — pesanan seragam = sumber hutang sekali.
   Total pesanan jadi satu baris obligation kategori uniform;
   status lunas/belum dibaca dari ledger, bukan dari sini.
========================================================= */

type UniformOrder struct {
	UniformOrderID uuid.UUID `gorm:"column:uniform_order_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"uniform_order_id"`

	UniformOrderStudentID uuid.UUID `gorm:"column:uniform_order_student_id;type:uuid;not null;index" json:"uniform_order_student_id"`

	UniformOrderTotalIDR int `gorm:"column:uniform_order_total_idr;not null;check:uniform_order_total_idr>=0" json:"uniform_order_total_idr"`

	UniformOrderOrderedAt time.Time `gorm:"column:uniform_order_ordered_at;not null;default:now()" json:"uniform_order_ordered_at"`

	UniformOrderCreatedAt time.Time      `gorm:"column:uniform_order_created_at;not null;default:now()" json:"uniform_order_created_at"`
	UniformOrderUpdatedAt time.Time      `gorm:"column:uniform_order_updated_at;not null;default:now()" json:"uniform_order_updated_at"`
	UniformOrderDeletedAt gorm.DeletedAt `gorm:"column:uniform_order_deleted_at;index" json:"-"`

	Items []UniformOrderItem `gorm:"foreignKey:UniformOrderItemOrderID;references:UniformOrderID" json:"items,omitempty"`
}

func (UniformOrder) TableName() string { return "uniform_orders" }

func (m *UniformOrder) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.UniformOrderOrderedAt.IsZero() {
		m.UniformOrderOrderedAt = now
	}
	if m.UniformOrderCreatedAt.IsZero() {
		m.UniformOrderCreatedAt = now
	}
	m.UniformOrderUpdatedAt = now
	return nil
}

func (m *UniformOrder) BeforeUpdate(tx *gorm.DB) error {
	m.UniformOrderUpdatedAt = time.Now()
	return nil
}

type UniformOrderItem struct {
	UniformOrderItemID uuid.UUID `gorm:"column:uniform_order_item_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"uniform_order_item_id"`

	UniformOrderItemOrderID   uuid.UUID `gorm:"column:uniform_order_item_order_id;type:uuid;not null;index" json:"uniform_order_item_order_id"`
	UniformOrderItemUniformID uuid.UUID `gorm:"column:uniform_order_item_uniform_id;type:uuid;not null" json:"uniform_order_item_uniform_id"`

	UniformOrderItemQuantity int `gorm:"column:uniform_order_item_quantity;not null;check:uniform_order_item_quantity>0" json:"uniform_order_item_quantity"`

	// Harga saat pesan — dikunci, tidak ikut berubah bila harga katalog berubah
	UniformOrderItemPriceIDR    int `gorm:"column:uniform_order_item_price_idr;not null" json:"uniform_order_item_price_idr"`
	UniformOrderItemSubtotalIDR int `gorm:"column:uniform_order_item_subtotal_idr;not null" json:"uniform_order_item_subtotal_idr"`

	UniformOrderItemCreatedAt time.Time `gorm:"column:uniform_order_item_created_at;not null;default:now()" json:"uniform_order_item_created_at"`
}

func (UniformOrderItem) TableName() string { return "uniform_order_items" }
