// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	paymentController "sekolahku_backend/internals/features/finance/payments/controller"
	service "sekolahku_backend/internals/features/finance/payments/service"
)

// Base path di caller: /api/v1/finance
func PaymentRoutes(r fiber.Router, db *gorm.DB) {
	gw := service.NewSnapGateway(configs.MidtransServerKey, configs.MidtransUseProd)
	h := paymentController.NewChargeController(db, gw)

	charges := r.Group("/charges")
	{
		charges.Post("/", h.CreateCharge) // POST /api/v1/finance/charges (X-Idempotency-Key)
		charges.Get("/:id", h.GetCharge)  // GET  /api/v1/finance/charges/:id
	}

	payments := r.Group("/payments")
	{
		payments.Get("/", h.MyPayments) // GET /api/v1/finance/payments
	}
}

// Webhook tanpa JWT; keaslian dijaga verifikasi signature Midtrans.
func WebhookRoutes(r fiber.Router, db *gorm.DB) {
	h := paymentController.NewWebhookController(db, configs.MidtransServerKey)

	r.Post("/payments/notification", h.MidtransNotification) // POST /api/v1/finance/payments/notification
}
