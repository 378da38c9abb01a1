// file: internals/features/finance/obligations/controller/obligation_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalogService "sekolahku_backend/internals/features/finance/catalog/service"
	dto "sekolahku_backend/internals/features/finance/obligations/dto"
	model "sekolahku_backend/internals/features/finance/obligations/model"
	service "sekolahku_backend/internals/features/finance/obligations/service"
	studentModel "sekolahku_backend/internals/features/students/model"
	helper "sekolahku_backend/internals/helpers"
	authHelper "sekolahku_backend/internals/helpers/auth"
)

type ObligationController struct {
	DB *gorm.DB
}

func NewObligationController(db *gorm.DB) *ObligationController {
	return &ObligationController{DB: db}
}

// GET /obligations/monthly — rincian per bulan per kategori untuk siswa login
func (h *ObligationController) MonthlyStatement(c *fiber.Ctx) error {
	student, err := authHelper.GetStudentFromToken(c, h.DB)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := service.EnsureObligations(c.Context(), h.DB, student.StudentID, student.StudentEnrolledAt, now); err != nil {
		return mapLedgerError(c, err)
	}

	var obligations []model.Obligation
	if err := h.DB.WithContext(c.Context()).
		Where("obligation_student_id = ? AND obligation_period IS NOT NULL", student.StudentID).
		Order("obligation_period ASC").
		Find(&obligations).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.MonthlyStatementResponse{}
	byCat := splitByCategory(obligations)
	resp.InfaqItems = service.BuildMonthlyItems(byCat["infaq"], now)
	resp.KasItems = service.BuildMonthlyItems(byCat["kas"], now)
	resp.SppItems = service.BuildMonthlyItems(byCat["spp"], now)

	return helper.Success(c, "OK", resp)
}

// GET /obligations/summary — ringkasan bulanan (pengganti getSppInfo/getMonthlyStatus lama)
func (h *ObligationController) MonthlySummary(c *fiber.Ctx) error {
	student, err := authHelper.GetStudentFromToken(c, h.DB)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := service.EnsureObligations(c.Context(), h.DB, student.StudentID, student.StudentEnrolledAt, now); err != nil {
		return mapLedgerError(c, err)
	}

	var obligations []model.Obligation
	if err := h.DB.WithContext(c.Context()).
		Where("obligation_student_id = ? AND obligation_period IS NOT NULL", student.StudentID).
		Order("obligation_period ASC").
		Find(&obligations).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.MonthlySummaryResponse{
		TotalMonthsActive: len(catalogService.PeriodsFor("infaq", student.StudentEnrolledAt, now)),
	}
	for cat, obs := range splitByCategory(obligations) {
		summary := dto.CategorySummary{Category: cat}
		for _, o := range obs {
			switch service.Derive(o, now) {
			case service.StatusPaid:
				summary.MonthsPaid++
			case service.StatusArrears:
				summary.MonthsUnpaid++
				summary.TotalArrearsIDR += o.RemainingIDR()
			}
		}
		summary.IsDue = summary.MonthsPaid < len(obs)
		summary.IsCritical = summary.MonthsUnpaid >= 3
		resp.Categories = append(resp.Categories, summary)
	}
	// urutan kategori stabil untuk response
	sortCategorySummaries(resp.Categories)

	return helper.Success(c, "OK", resp)
}

// GET /obligations/arrears-report — laporan tunggakan seluruh siswa (admin)
func (h *ObligationController) ArrearsReport(c *fiber.Ctx) error {
	now := time.Now()

	var students []studentModel.Student
	if err := h.DB.WithContext(c.Context()).
		Where("student_status = ?", studentModel.StudentStatusRegistered).
		Order("student_full_name ASC, student_id ASC").
		Find(&students).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.ArrearsReportResponse{AsOf: now.Format("2006-01")}
	for _, s := range students {
		if err := service.EnsureObligations(c.Context(), h.DB, s.StudentID, s.StudentEnrolledAt, now); err != nil {
			return mapLedgerError(c, err)
		}
		var obligations []model.Obligation
		if err := h.DB.WithContext(c.Context()).
			Where("obligation_student_id = ?", s.StudentID).
			Order("obligation_period ASC NULLS LAST").
			Find(&obligations).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
		row := service.BuildArrearsRow(s.StudentID.String(), s.StudentFullName, obligations, now)
		if row.TotalArrearsIDR > 0 {
			resp.Students = append(resp.Students, row)
		}
	}

	return helper.Success(c, "OK", resp)
}

/* ===================== Helpers ===================== */

func splitByCategory(obligations []model.Obligation) map[string][]model.Obligation {
	out := map[string][]model.Obligation{}
	for _, o := range obligations {
		out[string(o.ObligationCategory)] = append(out[string(o.ObligationCategory)], o)
	}
	return out
}

func sortCategorySummaries(cats []dto.CategorySummary) {
	order := map[string]int{"infaq": 0, "kas": 1, "spp": 2, "uniform": 3}
	for i := 1; i < len(cats); i++ {
		for j := i; j > 0 && order[cats[j].Category] < order[cats[j-1].Category]; j-- {
			cats[j], cats[j-1] = cats[j-1], cats[j]
		}
	}
}

func mapLedgerError(c *fiber.Ctx, err error) error {
	var confErr *catalogService.ConfigurationError
	if errors.As(err, &confErr) {
		return helper.Error(c, fiber.StatusInternalServerError, confErr.Error())
	}
	return helper.Error(c, fiber.StatusInternalServerError, err.Error())
}
