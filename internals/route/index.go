// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalogRoute "sekolahku_backend/internals/features/finance/catalog/route"
	obligationRoute "sekolahku_backend/internals/features/finance/obligations/route"
	orderRoute "sekolahku_backend/internals/features/finance/orders/route"
	paymentRoute "sekolahku_backend/internals/features/finance/payments/route"
	studentRoute "sekolahku_backend/internals/features/students/route"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api/v1", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Setting up StudentRoutes...")
	studentRoute.StudentRoutes(api, db)

	log.Println("[INFO] Setting up FinanceRoutes...")
	finance := api.Group("/finance")
	catalogRoute.BillKindRoutes(finance, db)
	obligationRoute.ObligationRoutes(finance, db)
	orderRoute.OrderRoutes(finance, db)
	paymentRoute.PaymentRoutes(finance, db)

	// webhook gateway: tanpa JWT (di-skip oleh AuthMiddleware), verifikasi signature
	paymentRoute.WebhookRoutes(finance, db)
}
