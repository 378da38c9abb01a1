// file: internals/features/finance/payments/service/reconcile_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	t.Run("waterfall: baris pertama penuh dulu, sisanya turun", func(t *testing.T) {
		// 70000 atas dua baris 50000 → baris pertama lunas, kedua 20000
		allocs, leftover := Allocate(70000, []AllocationLine{
			{ObligationID: a, AmountIDR: 50000},
			{ObligationID: b, AmountIDR: 50000},
		})
		require.Len(t, allocs, 2)
		assert.Equal(t, 50000, allocs[0].AppliedIDR)
		assert.Equal(t, 20000, allocs[1].AppliedIDR)
		assert.Equal(t, 0, leftover)
	})

	t.Run("jumlah pas", func(t *testing.T) {
		allocs, leftover := Allocate(75000, []AllocationLine{
			{ObligationID: a, AmountIDR: 25000},
			{ObligationID: b, AmountIDR: 50000},
		})
		assert.Equal(t, 25000, allocs[0].AppliedIDR)
		assert.Equal(t, 50000, allocs[1].AppliedIDR)
		assert.Equal(t, 0, leftover)
	})

	t.Run("dana kurang: baris belakang nol", func(t *testing.T) {
		allocs, leftover := Allocate(30000, []AllocationLine{
			{ObligationID: a, AmountIDR: 25000},
			{ObligationID: b, AmountIDR: 50000},
			{ObligationID: c, AmountIDR: 10000},
		})
		assert.Equal(t, 25000, allocs[0].AppliedIDR)
		assert.Equal(t, 5000, allocs[1].AppliedIDR)
		assert.Equal(t, 0, allocs[2].AppliedIDR)
		assert.Equal(t, 0, leftover)
	})

	t.Run("kelebihan bayar jadi leftover", func(t *testing.T) {
		allocs, leftover := Allocate(120000, []AllocationLine{
			{ObligationID: a, AmountIDR: 50000},
			{ObligationID: b, AmountIDR: 50000},
		})
		assert.Equal(t, 50000, allocs[0].AppliedIDR)
		assert.Equal(t, 50000, allocs[1].AppliedIDR)
		assert.Equal(t, 20000, leftover)
	})

	t.Run("tanpa baris", func(t *testing.T) {
		allocs, leftover := Allocate(50000, nil)
		assert.Empty(t, allocs)
		assert.Equal(t, 50000, leftover)
	})

	t.Run("total alokasi tidak pernah melebihi dana", func(t *testing.T) {
		lines := []AllocationLine{
			{ObligationID: a, AmountIDR: 33333},
			{ObligationID: b, AmountIDR: 44444},
			{ObligationID: c, AmountIDR: 55555},
		}
		for _, amount := range []int{1, 33333, 77777, 133332, 200000} {
			allocs, leftover := Allocate(amount, lines)
			sum := 0
			for _, al := range allocs {
				sum += al.AppliedIDR
			}
			assert.Equal(t, amount, sum+leftover)
			assert.LessOrEqual(t, sum, amount)
		}
	})
}
