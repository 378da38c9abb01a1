// file: internals/features/finance/obligations/dto/obligation_dto.go
package dto

import (
	service "sekolahku_backend/internals/features/finance/obligations/service"
)

/* =========================================================
   Responses — rincian bulanan & ringkasan
========================================================= */

type MonthlyStatementResponse struct {
	InfaqItems []service.MonthlyItem `json:"infaq_items"`
	KasItems   []service.MonthlyItem `json:"kas_items"`
	SppItems   []service.MonthlyItem `json:"spp_items"`
}

type CategorySummary struct {
	Category        string `json:"category"`
	MonthsPaid      int    `json:"months_paid"`
	MonthsUnpaid    int    `json:"months_unpaid"`
	TotalArrearsIDR int    `json:"total_arrears_idr"`
	IsDue           bool   `json:"is_due"`
	IsCritical      bool   `json:"is_critical"` // >= 3 bulan menunggak
}

type MonthlySummaryResponse struct {
	TotalMonthsActive int               `json:"total_months_active"`
	Categories        []CategorySummary `json:"categories"`
}

type ArrearsReportResponse struct {
	AsOf     string                   `json:"as_of"` // yyyy-mm
	Students []service.StudentArrears `json:"students"`
}
