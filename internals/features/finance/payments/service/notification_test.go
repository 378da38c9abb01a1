// file: internals/features/finance/payments/service/notification_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		ts, fraud string
		want      string
		known     bool
	}{
		{"settlement", "", OutcomeSettled, true},
		{"capture", "accept", OutcomeSettled, true},
		{"capture", "challenge", OutcomePending, true},
		{"capture", "deny", OutcomeFailed, true},
		{"pending", "", OutcomePending, true},
		{"deny", "", OutcomeFailed, true},
		{"cancel", "", OutcomeFailed, true},
		{"failure", "", OutcomeFailed, true},
		{"expire", "", OutcomeExpired, true},
		{"refund", "", OutcomeIgnored, true},
		{"partial_refund", "", OutcomeIgnored, true},
		{"SETTLEMENT", "", OutcomeSettled, true}, // case-insensitive
		{"whatever", "", OutcomeIgnored, false},
	}
	for _, tc := range cases {
		got, known := MapMidtransStatus(tc.ts, tc.fraud)
		assert.Equal(t, tc.want, got, "status=%s fraud=%s", tc.ts, tc.fraud)
		assert.Equal(t, tc.known, known, "status=%s", tc.ts)
	}
}
