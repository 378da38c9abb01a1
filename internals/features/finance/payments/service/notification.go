// file: internals/features/finance/payments/service/notification.go
package service

import "strings"

/* =========================================================
   Mapping transaction_status Midtrans → outcome internal.
   Dipisah dari controller biar gampang diuji.
========================================================= */

const (
	OutcomeSettled = "settled"
	OutcomeFailed  = "failed"
	OutcomeExpired = "expired"
	OutcomePending = "pending"
	OutcomeIgnored = "ignored"
)

// MapMidtransStatus memetakan transaction_status (+fraud_status untuk cc)
// ke outcome internal. ok=false berarti status tidak dikenal → abaikan.
func MapMidtransStatus(transactionStatus, fraudStatus string) (string, bool) {
	ts := strings.ToLower(transactionStatus)
	fraud := strings.ToLower(fraudStatus)
	switch ts {
	case "capture":
		// cc: capture + fraud=accept → settled; challenge → tunggu notifikasi berikutnya
		if fraud == "accept" {
			return OutcomeSettled, true
		}
		if fraud == "challenge" {
			return OutcomePending, true
		}
		return OutcomeFailed, true

	case "settlement":
		return OutcomeSettled, true

	case "pending":
		return OutcomePending, true

	case "deny", "cancel", "failure":
		return OutcomeFailed, true

	case "expire":
		return OutcomeExpired, true

	case "refund", "partial_refund":
		// refund ditangani manual; cuma tercatat di gateway_events
		return OutcomeIgnored, true
	}
	return OutcomeIgnored, false
}
