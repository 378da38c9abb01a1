// file: internals/features/finance/catalog/controller/bill_kind_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/catalog/dto"
	model "sekolahku_backend/internals/features/finance/catalog/model"
	"sekolahku_backend/internals/helpers"
)

type BillKindController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBillKindController(db *gorm.DB) *BillKindController {
	return &BillKindController{DB: db, Validator: validator.New()}
}

// POST /bill-kinds — tambah baris tarif baru (effective_from)
func (h *BillKindController) Create(c *fiber.Ctx) error {
	var req dto.BillKindCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return helper.Error(c, fiber.StatusConflict,
				"tarif kategori ini untuk bulan tsb sudah ada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "create bill kind failed: "+err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tarif berhasil ditambahkan", dto.FromBillKindModel(m))
}

// GET /bill-kinds — seluruh jadwal tarif (opsional filter ?category=)
func (h *BillKindController) List(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.Context()).Model(&model.BillKind{})

	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		if !model.BillCategory(cat).Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "kategori tidak dikenal: "+cat)
		}
		q = q.Where("bill_kind_category = ?", cat)
	}

	var kinds []model.BillKind
	if err := q.Order("bill_kind_category ASC, bill_kind_effective_from DESC").
		Find(&kinds).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.FromBillKindModels(kinds))
}
