// file: internals/features/finance/obligations/service/status_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
	model "sekolahku_backend/internals/features/finance/obligations/model"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func monthly(cat catalogModel.BillCategory, period time.Time, due, paid int) model.Obligation {
	p := period
	return model.Obligation{
		ObligationID:            uuid.New(),
		ObligationStudentID:     uuid.New(),
		ObligationCategory:      cat,
		ObligationPeriod:        &p,
		ObligationAmountDueIDR:  due,
		ObligationAmountPaidIDR: paid,
	}
}

func oneOff(due, paid int) model.Obligation {
	orderID := uuid.New()
	return model.Obligation{
		ObligationID:            uuid.New(),
		ObligationStudentID:     uuid.New(),
		ObligationCategory:      catalogModel.BillCategoryUniform,
		ObligationOrderID:       &orderID,
		ObligationAmountDueIDR:  due,
		ObligationAmountPaidIDR: paid,
	}
}

// Siswa terdaftar Januari 2024, sekarang pertengahan Maret 2024.
func TestDerive(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		o    model.Obligation
		want ObligationStatus
	}{
		{"bulan lalu lunas", monthly(catalogModel.BillCategorySPP, month(2024, time.January), 150000, 150000), StatusPaid},
		{"bulan lalu belum lunas", monthly(catalogModel.BillCategorySPP, month(2024, time.February), 150000, 0), StatusArrears},
		{"bulan lalu dibayar sebagian tetap tunggakan", monthly(catalogModel.BillCategoryKas, month(2024, time.February), 10000, 5000), StatusArrears},
		{"bulan berjalan belum dibayar", monthly(catalogModel.BillCategorySPP, month(2024, time.March), 150000, 0), StatusDue},
		{"bulan berjalan lunas", monthly(catalogModel.BillCategoryInfaq, month(2024, time.March), 25000, 25000), StatusPaid},
		{"hutang sekali belum lunas selalu due", oneOff(200000, 0), StatusDue},
		{"hutang sekali dicicil sebagian tetap due", oneOff(200000, 150000), StatusDue},
		{"hutang sekali lunas", oneOff(200000, 200000), StatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.o, now))
		})
	}
}

func TestBuildArrearsRow(t *testing.T) {
	now := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	obligations := []model.Obligation{
		monthly(catalogModel.BillCategorySPP, month(2024, time.March), 150000, 0),
		monthly(catalogModel.BillCategorySPP, month(2024, time.April), 150000, 50000),
		monthly(catalogModel.BillCategorySPP, month(2024, time.May), 150000, 150000), // lunas
		monthly(catalogModel.BillCategoryKas, month(2024, time.May), 10000, 0),
		monthly(catalogModel.BillCategorySPP, month(2024, time.June), 150000, 0), // bulan berjalan, bukan tunggakan
		oneOff(200000, 0), // due, bukan tunggakan
	}

	row := BuildArrearsRow("sid", "Budi", obligations, now)

	assert.Equal(t, 2, row.MonthsUnpaid["spp"])
	assert.Equal(t, 1, row.MonthsUnpaid["kas"])
	// 150000 + (150000-50000) + 10000
	assert.Equal(t, 260000, row.TotalArrearsIDR)

	// deterministik: snapshot sama → hasil sama
	again := BuildArrearsRow("sid", "Budi", obligations, now)
	assert.Equal(t, row, again)
}

func TestBuildMonthlyItems(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	obligations := []model.Obligation{
		monthly(catalogModel.BillCategorySPP, month(2024, time.January), 150000, 150000),
		monthly(catalogModel.BillCategorySPP, month(2024, time.February), 150000, 0),
		monthly(catalogModel.BillCategorySPP, month(2024, time.March), 175000, 0),
		oneOff(200000, 0), // tanpa periode, tidak ikut rincian bulanan
	}

	items := BuildMonthlyItems(obligations, now)
	require.Len(t, items, 3)

	assert.Equal(t, "2024-01", items[0].Month)
	assert.Equal(t, StatusPaid, items[0].Status)
	assert.Equal(t, "2024-02", items[1].Month)
	assert.Equal(t, StatusArrears, items[1].Status)
	assert.Equal(t, "2024-03", items[2].Month)
	assert.Equal(t, StatusDue, items[2].Status)
	assert.Equal(t, 175000, items[2].AmountIDR)
}
