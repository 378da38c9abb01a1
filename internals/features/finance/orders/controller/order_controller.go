// file: internals/features/finance/orders/controller/order_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	obligationModel "sekolahku_backend/internals/features/finance/obligations/model"
	obligationService "sekolahku_backend/internals/features/finance/obligations/service"
	dto "sekolahku_backend/internals/features/finance/orders/dto"
	model "sekolahku_backend/internals/features/finance/orders/model"
	service "sekolahku_backend/internals/features/finance/orders/service"
	helper "sekolahku_backend/internals/helpers"
	authHelper "sekolahku_backend/internals/helpers/auth"
)

type OrderController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Validator: validator.New()}
}

// GET /uniforms — seragam yang masih ada stok
func (h *OrderController) ListAvailableUniforms(c *fiber.Ctx) error {
	var uniforms []model.Uniform
	if err := h.DB.WithContext(c.Context()).
		Where("uniform_stock > 0").
		Order("uniform_name ASC, uniform_size ASC").
		Find(&uniforms).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.FromUniformModels(uniforms))
}

// POST /orders — buat pesanan seragam (hutang sekali, bisa dicicil)
func (h *OrderController) CreateOrder(c *fiber.Ctx) error {
	student, err := authHelper.GetStudentFromToken(c, h.DB)
	if err != nil {
		return err
	}

	var req dto.CreateOrderDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.OrderItemInput{UniformID: it.UniformID, Quantity: it.Quantity})
	}

	order, err := service.CreateOrder(c.Context(), h.DB, student.StudentID, items)
	if err != nil {
		return err // fiber.Error dari service sudah membawa status code
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pesanan berhasil dibuat",
		dto.FromOrderModel(order, 0, string(obligationService.StatusDue)))
}

// GET /orders — pesanan milik siswa login, dengan status dari ledger
func (h *OrderController) MyOrders(c *fiber.Ctx) error {
	student, err := authHelper.GetStudentFromToken(c, h.DB)
	if err != nil {
		return err
	}

	var orders []model.UniformOrder
	if err := h.DB.WithContext(c.Context()).
		Preload("Items").
		Where("uniform_order_student_id = ?", student.StudentID).
		Order("uniform_order_ordered_at DESC").
		Find(&orders).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		var o obligationModel.Obligation
		paid, status := 0, string(obligationService.StatusDue)
		if err := h.DB.WithContext(c.Context()).
			First(&o, "obligation_order_id = ?", orders[i].UniformOrderID).Error; err == nil {
			paid = o.ObligationAmountPaidIDR
			status = string(obligationService.Derive(o, now))
		}
		out = append(out, dto.FromOrderModel(&orders[i], paid, status))
	}

	return helper.Success(c, "OK", out)
}
