// file: internals/features/finance/catalog/service/catalog_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "sekolahku_backend/internals/features/finance/catalog/model"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestPeriodsFor(t *testing.T) {
	enrolled := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

	t.Run("dari bulan pendaftaran sampai asOf inklusif", func(t *testing.T) {
		periods := PeriodsFor(model.BillCategorySPP, enrolled, time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC))
		require.Len(t, periods, 4)
		assert.Equal(t, month(2024, time.January), periods[0])
		assert.Equal(t, month(2024, time.April), periods[3])
	})

	t.Run("bulan pendaftaran sendiri bila asOf di bulan yang sama", func(t *testing.T) {
		periods := PeriodsFor(model.BillCategoryInfaq, enrolled, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))
		require.Len(t, periods, 1)
		assert.Equal(t, month(2024, time.January), periods[0])
	})

	t.Run("asOf sebelum pendaftaran", func(t *testing.T) {
		assert.Empty(t, PeriodsFor(model.BillCategoryKas, enrolled, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("kategori non-bulanan tidak punya periode", func(t *testing.T) {
		assert.Nil(t, PeriodsFor(model.BillCategoryUniform, enrolled, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestAmountFor(t *testing.T) {
	kinds := []model.BillKind{
		{BillKindCategory: model.BillCategorySPP, BillKindAmountIDR: 150000, BillKindEffectiveFrom: month(2024, time.January)},
		{BillKindCategory: model.BillCategorySPP, BillKindAmountIDR: 175000, BillKindEffectiveFrom: month(2024, time.July)},
		{BillKindCategory: model.BillCategoryInfaq, BillKindAmountIDR: 25000, BillKindEffectiveFrom: month(2024, time.January)},
	}

	t.Run("tarif berlaku = effective_from terbesar <= bulan", func(t *testing.T) {
		got, err := AmountFor(kinds, model.BillCategorySPP, month(2024, time.March))
		require.NoError(t, err)
		assert.Equal(t, 150000, got)

		got, err = AmountFor(kinds, model.BillCategorySPP, month(2024, time.July))
		require.NoError(t, err)
		assert.Equal(t, 175000, got)

		got, err = AmountFor(kinds, model.BillCategorySPP, month(2025, time.February))
		require.NoError(t, err)
		assert.Equal(t, 175000, got)
	})

	t.Run("tarif baru tidak mengubah bulan sebelum effective_from", func(t *testing.T) {
		got, err := AmountFor(kinds, model.BillCategorySPP, month(2024, time.June))
		require.NoError(t, err)
		assert.Equal(t, 150000, got)
	})

	t.Run("tarif belum dikonfigurasi", func(t *testing.T) {
		_, err := AmountFor(kinds, model.BillCategoryKas, month(2024, time.March))
		require.Error(t, err)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, model.BillCategoryKas, cfgErr.Category)
		assert.Equal(t, month(2024, time.March), cfgErr.Month)
	})

	t.Run("periode sebelum tarif pertama", func(t *testing.T) {
		_, err := AmountFor(kinds, model.BillCategorySPP, month(2023, time.December))
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2024, time.August, 23, 17, 45, 12, 0, time.FixedZone("WIB", 7*3600))
	assert.Equal(t, month(2024, time.August), MonthStart(in))
}
