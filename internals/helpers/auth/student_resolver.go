package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "sekolahku_backend/internals/features/students/model"
)

// GetUserIDFromToken mengambil user_id yang sudah ditaruh AuthMiddleware di locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan pada token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id pada token tidak valid")
	}
	return id, nil
}

// GetStudentFromToken me-resolve siswa milik akun yang sedang login.
// Engine mempercayai identitas dari boundary auth (tidak memverifikasi ulang).
func GetStudentFromToken(c *fiber.Ctx, db *gorm.DB) (*studentModel.Student, error) {
	if db == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "DB context tidak tersedia")
	}

	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var s studentModel.Student
	if err := db.WithContext(c.Context()).
		First(&s, "student_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Data siswa tidak ditemukan untuk akun ini")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &s, nil
}
