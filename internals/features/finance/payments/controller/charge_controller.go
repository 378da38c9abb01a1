// file: internals/features/finance/payments/controller/charge_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	catalogService "sekolahku_backend/internals/features/finance/catalog/service"
	obligationService "sekolahku_backend/internals/features/finance/obligations/service"
	dto "sekolahku_backend/internals/features/finance/payments/dto"
	model "sekolahku_backend/internals/features/finance/payments/model"
	service "sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =======================================================================
   Controller — sesi pembayaran
======================================================================= */

type ChargeController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Sessions  *service.SessionManager
}

func NewChargeController(db *gorm.DB, gw service.Gateway) *ChargeController {
	return &ChargeController{
		DB:        db,
		Validator: validator.New(),
		Sessions:  service.NewSessionManager(db, gw, configs.ChargeSessionTTL),
	}
}

// POST /charges
// Idempotency key dibaca dari header X-Idempotency-Key, fallback ke body.
func (h *ChargeController) CreateCharge(c *fiber.Ctx) error {
	student, err := helperAuth.GetStudentFromToken(c, h.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateChargeDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "payload tidak valid: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	key := strings.TrimSpace(c.Get("X-Idempotency-Key"))
	if key == "" {
		key = strings.TrimSpace(req.IdempotencyKey)
	}
	if key == "" {
		return helper.Error(c, fiber.StatusBadRequest, "X-Idempotency-Key wajib diisi")
	}

	selectors, err := req.ToSelectors()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	now := time.Now()

	// Tagihan bulanan harus sudah termaterialisasi sampai bulan berjalan
	// sebelum quote dibangun, tanpa bergantung pada pembacaan statement.
	if err := obligationService.EnsureObligations(c.Context(), h.DB, student.StudentID, student.StudentEnrolledAt, now); err != nil {
		return mapChargeError(c, err)
	}

	quote, err := service.LoadQuote(c.Context(), h.DB, student.StudentID, selectors, now)
	if err != nil {
		return mapChargeError(c, err)
	}

	session, err := h.Sessions.OpenSession(c.Context(), quote, key, service.CustomerInput{
		FirstName: student.StudentFullName,
	})
	if err != nil {
		return mapChargeError(c, err)
	}

	resp := dto.FromSessionModel(session)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Sesi pembayaran dibuat", resp)
}

// GET /charges/:id
func (h *ChargeController) GetCharge(c *fiber.Ctx) error {
	student, err := helperAuth.GetStudentFromToken(c, h.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var session model.ChargeSession
	if err := h.DB.WithContext(c.Context()).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("charge_session_item_position ASC")
		}).
		First(&session, "charge_session_id = ? AND charge_session_student_id = ?", id, student.StudentID).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "sesi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.FromSessionModel(&session))
}

// GET /payments — riwayat pembayaran siswa yang login (paginated)
func (h *ChargeController) MyPayments(c *fiber.Ctx) error {
	student, err := helperAuth.GetStudentFromToken(c, h.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	orderClause, err := p.SafeOrderClause(map[string]string{
		"created_at": "payment_created_at",
		"settled_at": "payment_settled_at",
		"amount":     "payment_amount_idr",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	base := h.DB.WithContext(c.Context()).
		Model(&model.Payment{}).
		Where("payment_student_id = ?", student.StudentID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var payments []model.Payment
	if err := base.
		Order(strings.TrimPrefix(orderClause, "ORDER BY ")).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"payments": dto.FromPaymentModels(payments),
		"meta":     helper.BuildMeta(total, p),
	})
}

/* ===================== Error mapping ===================== */

func mapChargeError(c *fiber.Ctx, err error) error {
	var cfgErr *catalogService.ConfigurationError
	switch {
	case errors.Is(err, service.ErrFullyPaid):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotYetDue):
		return helper.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidAmount):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionConflict):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrObligationNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &cfgErr):
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	default:
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
}
