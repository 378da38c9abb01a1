// file: internals/features/finance/payments/service/errors.go
package service

import "errors"

/* =========================================================
   Taksonomi error engine pembayaran.
   Validasi tidak pernah menyentuh ledger; error mutasi selalu
   rollback di transaksi yang sama.
========================================================= */

var (
	// ErrFullyPaid — selector menunjuk kewajiban yang sudah lunas.
	ErrFullyPaid = errors.New("kewajiban sudah lunas")

	// ErrNotYetDue — periode yang diminta masih di masa depan.
	ErrNotYetDue = errors.New("periode belum jatuh tempo")

	// ErrInvalidAmount — cicilan di luar rentang (harus > 0 dan <= sisa).
	ErrInvalidAmount = errors.New("nominal cicilan tidak valid")

	// ErrSessionConflict — kewajiban sudah tercakup sesi pending lain.
	ErrSessionConflict = errors.New("sudah ada sesi pembayaran pending untuk tagihan ini")

	// ErrUnknownSession — webhook menunjuk external reference yang tidak dikenal.
	// Jangan retry otomatis; log untuk review keamanan.
	ErrUnknownSession = errors.New("sesi pembayaran tidak dikenal")

	// ErrObligationNotFound — selector tidak resolve ke baris ledger.
	ErrObligationNotFound = errors.New("kewajiban tidak ditemukan")
)
