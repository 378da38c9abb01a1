// file: internals/features/finance/payments/controller/webhook_controller.go
package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	service "sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
)

/* =======================================================================
   Webhook Midtrans → reconciler
======================================================================= */

type WebhookController struct {
	DB                *gorm.DB
	Reconciler        *service.Reconciler
	MidtransServerKey string
}

func NewWebhookController(db *gorm.DB, serverKey string) *WebhookController {
	return &WebhookController{
		DB:                db,
		Reconciler:        service.NewReconciler(db),
		MidtransServerKey: serverKey,
	}
}

type midtransNotif struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, refund, partial_refund, failure
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"` // string dari Midtrans
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
	// field lain aman diabaikan
}

// POST /payments/notification
func (h *WebhookController) MidtransNotification(c *fiber.Ctx) error {
	// 1) Parse payload
	var notif midtransNotif
	if err := c.BodyParser(&notif); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "payload tidak valid: "+err.Error())
	}

	// 2) Verify signature — SHA512(order_id + status_code + gross_amount + ServerKey)
	want := strings.ToLower(notif.SignatureKey)
	raw := notif.OrderID + notif.StatusCode + notif.GrossAmount + h.MidtransServerKey
	if want == "" || sha512sum(raw) != want {
		return helper.Error(c, fiber.StatusUnauthorized, "signature tidak valid")
	}

	// 3) Map status → outcome internal
	outcome, known := service.MapMidtransStatus(notif.TransactionStatus, notif.FraudStatus)
	if !known || outcome == service.OutcomePending || outcome == service.OutcomeIgnored {
		// pending/challenge/refund: tidak ada aksi ledger, balas 200 supaya tidak retry
		return c.JSON(fiber.Map{"status": "ignored", "transaction_status": notif.TransactionStatus})
	}

	in := service.NotificationInput{
		ExternalID: notif.OrderID,
		Outcome:    outcome,
		GrossIDR:   parseGross(notif.GrossAmount),
		Provider:   "midtrans",
		Signature:  &notif.SignatureKey,
		Headers:    headersJSON(c),
		Payload:    payloadJSON(notif),
	}

	var err error
	if outcome == service.OutcomeSettled {
		err = h.Reconciler.ApplySettlement(c.Context(), in)
	} else {
		err = h.Reconciler.ApplyFailure(c.Context(), in)
	}
	if err != nil {
		if errors.Is(err, service.ErrUnknownSession) {
			// order_id tidak dikenal: log untuk review, balas 200 agar Midtrans berhenti retry
			log.Printf("[WEBHOOK] order_id tidak dikenal: %s", notif.OrderID)
			return c.JSON(fiber.Map{"status": "ignored", "reason": "unknown order_id"})
		}
		return helper.Error(c, fiber.StatusInternalServerError, "proses notifikasi gagal: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"status":             "ok",
		"order_id":           notif.OrderID,
		"transaction_status": notif.TransactionStatus,
		"outcome":            outcome,
	})
}

/* ===================== Helpers ===================== */

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

// Midtrans mengirim gross "150000.00"
func parseGross(s string) int {
	amt, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(amt + 0.5)
}

func headersJSON(c *fiber.Ctx) datatypes.JSON {
	headers := map[string]string{}
	for k, v := range c.GetReqHeaders() { // v: []string
		headers[k] = strings.Join(v, ",")
	}
	b, _ := json.Marshal(headers)
	return datatypes.JSON(b)
}

func payloadJSON(n midtransNotif) datatypes.JSON {
	b, _ := json.Marshal(n)
	return datatypes.JSON(b)
}
