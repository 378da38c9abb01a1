// file: internals/features/finance/obligations/route/obligation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	obligationController "sekolahku_backend/internals/features/finance/obligations/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// Base path di caller: /api/v1/finance
func ObligationRoutes(r fiber.Router, db *gorm.DB) {
	h := obligationController.NewObligationController(db)

	obligations := r.Group("/obligations")
	{
		obligations.Get("/monthly", h.MonthlyStatement) // GET /api/v1/finance/obligations/monthly
		obligations.Get("/summary", h.MonthlySummary)   // GET /api/v1/finance/obligations/summary

		// rekap tunggakan seluruh siswa — admin only
		obligations.Get("/arrears-report", authMiddleware.OnlyRoles(constants.RoleAdmin), h.ArrearsReport)
	}
}
