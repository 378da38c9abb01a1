// file: internals/features/finance/catalog/route/bill_kind_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	catalogController "sekolahku_backend/internals/features/finance/catalog/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// Base path di caller: /api/v1/finance
func BillKindRoutes(r fiber.Router, db *gorm.DB) {
	h := catalogController.NewBillKindController(db)

	kinds := r.Group("/bill-kinds")
	{
		kinds.Get("/", h.List) // GET /api/v1/finance/bill-kinds

		// tarif baru = baris baru; tarif lama tidak pernah diubah
		kinds.Post("/", authMiddleware.OnlyRoles(constants.RoleAdmin), h.Create)
	}
}
