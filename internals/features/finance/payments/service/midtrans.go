// file: internals/features/finance/payments/service/midtrans.go
package service

import (
	"errors"
	"fmt"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Gateway — kontrak keluar ke penyedia checkout.
   Engine cuma butuh "buat sesi" → {redirect URL, token}.
========================================================= */

type CheckoutSession struct {
	Token       string
	RedirectURL string
}

type GatewayRequest struct {
	OrderID     string
	GrossIDR    int
	Description string
	ExpiresIn   time.Duration
	Customer    CustomerInput
}

type Gateway interface {
	CreateSession(req GatewayRequest) (CheckoutSession, error)
}

type CustomerInput struct {
	FirstName string
	Email     string
	Phone     string
}

/* =========================================================
   Midtrans Snap client
========================================================= */

type SnapGateway struct {
	client snap.Client
}

// NewSnapGateway dipanggil sekali saat bootstrap.
// useProduction=true untuk Production, false untuk Sandbox.
func NewSnapGateway(serverKey string, useProduction bool) *SnapGateway {
	g := &SnapGateway{}
	if useProduction {
		g.client.New(serverKey, midtrans.Production)
	} else {
		g.client.New(serverKey, midtrans.Sandbox)
	}
	return g
}

func (g *SnapGateway) CreateSession(req GatewayRequest) (CheckoutSession, error) {
	if req.GrossIDR <= 0 {
		return CheckoutSession{}, errors.New("invalid gross amount")
	}
	if req.OrderID == "" {
		return CheckoutSession{}, errors.New("order_id is required")
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: int64(req.GrossIDR),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Customer.FirstName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.OrderID,
				Price: int64(req.GrossIDR),
				Qty:   1,
				Name:  truncate(defaultString(req.Description, "Pembayaran Tagihan"), 50),
			},
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}
	if req.ExpiresIn > 0 {
		snapReq.Expiry = &snap.ExpiryDetails{
			Unit:     "minute",
			Duration: minutesOf(req.ExpiresIn),
		}
	}

	resp, err := g.client.CreateTransaction(snapReq)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("midtrans: %w", err)
	}
	return CheckoutSession{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

/* ===================== Utils ===================== */

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

func defaultString(s string, def string) string {
	if s == "" {
		return def
	}
	return s
}

func minutesOf(d time.Duration) int64 {
	m := int64(d / time.Minute)
	if m < 1 {
		return 1
	}
	return m
}
