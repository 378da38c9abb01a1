// file: internals/features/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	studentController "sekolahku_backend/internals/features/students/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// Base path di caller: /api/v1
func StudentRoutes(r fiber.Router, db *gorm.DB) {
	h := studentController.NewStudentController(db)

	students := r.Group("/students")
	{
		students.Get("/me", h.Me) // GET /api/v1/students/me

		students.Post("/", authMiddleware.OnlyRoles(constants.RoleAdmin), h.Create)
	}
}
