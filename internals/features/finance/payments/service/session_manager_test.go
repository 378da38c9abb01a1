// file: internals/features/finance/payments/service/session_manager_test.go
package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObligationSetHash(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	t.Run("tidak tergantung urutan", func(t *testing.T) {
		h1 := ObligationSetHash([]uuid.UUID{a, b, c})
		h2 := ObligationSetHash([]uuid.UUID{c, a, b})
		assert.Equal(t, h1, h2)
	})

	t.Run("himpunan beda hash beda", func(t *testing.T) {
		h1 := ObligationSetHash([]uuid.UUID{a, b})
		h2 := ObligationSetHash([]uuid.UUID{a, c})
		assert.NotEqual(t, h1, h2)
	})

	t.Run("hex sha256 64 karakter", func(t *testing.T) {
		h := ObligationSetHash([]uuid.UUID{a})
		assert.Len(t, h, 64)
	})
}

func TestGenOrderID(t *testing.T) {
	id1 := GenOrderID("CHG")
	id2 := GenOrderID("CHG")

	require.True(t, strings.HasPrefix(id1, "CHG-"))
	assert.NotEqual(t, id1, id2)
	// muat di kolom varchar(64) external_id
	assert.LessOrEqual(t, len(id1), 64)
}
