// file: internals/features/finance/orders/model/uniform_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Uniform struct {
	UniformID uuid.UUID `gorm:"column:uniform_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"uniform_id"`

	UniformName     string `gorm:"column:uniform_name;type:varchar(80);not null" json:"uniform_name"`
	UniformSize     string `gorm:"column:uniform_size;type:varchar(10);not null" json:"uniform_size"`
	UniformPriceIDR int    `gorm:"column:uniform_price_idr;not null;check:uniform_price_idr>=0" json:"uniform_price_idr"`
	UniformStock    int    `gorm:"column:uniform_stock;not null;default:0;check:uniform_stock>=0" json:"uniform_stock"`

	UniformCreatedAt time.Time      `gorm:"column:uniform_created_at;not null;default:now()" json:"uniform_created_at"`
	UniformUpdatedAt time.Time      `gorm:"column:uniform_updated_at;not null;default:now()" json:"uniform_updated_at"`
	UniformDeletedAt gorm.DeletedAt `gorm:"column:uniform_deleted_at;index" json:"-"`
}

func (Uniform) TableName() string { return "uniforms" }

func (m *Uniform) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.UniformCreatedAt.IsZero() {
		m.UniformCreatedAt = now
	}
	m.UniformUpdatedAt = now
	return nil
}

func (m *Uniform) BeforeUpdate(tx *gorm.DB) error {
	m.UniformUpdatedAt = time.Now()
	return nil
}
