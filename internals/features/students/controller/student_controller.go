// file: internals/features/students/controller/student_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/students/dto"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validator: validator.New()}
}

// POST /students — admin mendaftarkan siswa baru.
// enrolled_at jadi jangkar periode dan tidak pernah diubah.
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.StudentCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "payload tidak valid: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "student_user_id tidak valid")
	}

	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return helper.Error(c, fiber.StatusConflict, "siswa sudah terdaftar")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Siswa terdaftar", dto.FromStudentModel(m))
}

// GET /students/me — profil siswa milik token yang login.
func (h *StudentController) Me(c *fiber.Ctx) error {
	student, err := helperAuth.GetStudentFromToken(c, h.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	return helper.Success(c, "OK", dto.FromStudentModel(student))
}
