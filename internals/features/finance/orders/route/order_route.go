// file: internals/features/finance/orders/route/order_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orderController "sekolahku_backend/internals/features/finance/orders/controller"
)

// Base path di caller: /api/v1/finance
func OrderRoutes(r fiber.Router, db *gorm.DB) {
	h := orderController.NewOrderController(db)

	uniforms := r.Group("/uniforms")
	{
		uniforms.Get("/", h.ListAvailableUniforms) // GET /api/v1/finance/uniforms
	}

	orders := r.Group("/orders")
	{
		orders.Post("/", h.CreateOrder) // POST /api/v1/finance/orders
		orders.Get("/", h.MyOrders)     // GET  /api/v1/finance/orders
	}
}
