// file: internals/features/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — status registrasi siswa
========================================================= */

type StudentStatus string

const (
	StudentStatusPending    StudentStatus = "pending"    // menunggu pembayaran pendaftaran
	StudentStatusRegistered StudentStatus = "registered" // sudah terdaftar aktif
)

/* =========================================================
   MODEL
========================================================= */

type Student struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`

	// Linkage ke identitas (akun orang tua/wali) — diisi oleh layanan auth
	StudentUserID uuid.UUID `gorm:"column:student_user_id;type:uuid;not null;index" json:"student_user_id"`

	StudentFullName string `gorm:"column:student_full_name;type:varchar(120);not null" json:"student_full_name"`

	// Jangkar pembangkitan periode bulanan. Immutable setelah dibuat.
	StudentEnrolledAt time.Time `gorm:"column:student_enrolled_at;type:date;not null" json:"student_enrolled_at"`

	StudentStatus StudentStatus `gorm:"column:student_status;type:varchar(20);not null;default:'pending'" json:"student_status"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;default:now()" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;default:now()" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (Student) TableName() string { return "students" }

func (m *Student) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.StudentCreatedAt.IsZero() {
		m.StudentCreatedAt = now
	}
	m.StudentUpdatedAt = now
	return nil
}

func (m *Student) BeforeUpdate(tx *gorm.DB) error {
	m.StudentUpdatedAt = time.Now()
	return nil
}
