// file: internals/features/finance/payments/service/charge_builder.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
	catalog "sekolahku_backend/internals/features/finance/catalog/service"
	obligationModel "sekolahku_backend/internals/features/finance/obligations/model"
)

/* =========================================================
   Charge Builder — validasi read-only atas pilihan tagihan.
   Tidak ada mutasi ledger di sini; aman di-retry.
========================================================= */

// Selector menunjuk satu kewajiban: (kategori, periode) untuk bulanan,
// atau obligation_id untuk hutang sekali (dengan nominal cicilan opsional).
type Selector struct {
	Category     catalogModel.BillCategory
	Period       *time.Time // wajib untuk kategori bulanan
	ObligationID *uuid.UUID // wajib untuk hutang sekali
	AmountIDR    *int       // cicilan, hanya untuk hutang sekali
}

type QuoteLine struct {
	ObligationID uuid.UUID
	Category     catalogModel.BillCategory
	Period       *time.Time
	AmountIDR    int
}

// Quote = hasil Charge Builder: belum dipersist, belum menyentuh gateway.
type Quote struct {
	StudentID uuid.UUID
	Lines     []QuoteLine
	TotalIDR  int
}

// ObligationIDs mengembalikan id kewajiban sesuai urutan line.
func (q *Quote) ObligationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(q.Lines))
	for _, l := range q.Lines {
		ids = append(ids, l.ObligationID)
	}
	return ids
}

// BuildQuote memvalidasi selectors terhadap snapshot kewajiban dan
// menyusun quote. Urutan validasi: resolve & belum lunas → periode tidak
// di masa depan → rentang cicilan → total > 0. Urutan line (= urutan
// waterfall): periode bulanan paling tua dulu, lalu hutang sekali sesuai
// urutan permintaan.
func BuildQuote(studentID uuid.UUID, obligations []obligationModel.Obligation, selectors []Selector, now time.Time) (*Quote, error) {
	if len(selectors) == 0 {
		return nil, fmt.Errorf("%w: tidak ada tagihan dipilih", ErrInvalidAmount)
	}

	byPeriod := map[string]*obligationModel.Obligation{}
	byID := map[uuid.UUID]*obligationModel.Obligation{}
	for i := range obligations {
		o := &obligations[i]
		if o.ObligationPeriod != nil {
			byPeriod[periodKey(o.ObligationCategory, *o.ObligationPeriod)] = o
		}
		byID[o.ObligationID] = o
	}

	var recurring, oneOff []QuoteLine
	seen := map[uuid.UUID]struct{}{}
	for _, sel := range selectors {
		o, amount, err := resolveSelector(sel, byPeriod, byID, now)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[o.ObligationID]; dup {
			return nil, fmt.Errorf("%w: kewajiban %s dipilih dua kali", ErrInvalidAmount, o.ObligationID)
		}
		seen[o.ObligationID] = struct{}{}

		line := QuoteLine{
			ObligationID: o.ObligationID,
			Category:     o.ObligationCategory,
			Period:       o.ObligationPeriod,
			AmountIDR:    amount,
		}
		if o.IsOneOff() {
			oneOff = append(oneOff, line)
		} else {
			recurring = append(recurring, line)
		}
	}

	// waterfall order: periode paling tua dulu; tie-break nama kategori
	sort.SliceStable(recurring, func(i, j int) bool {
		if !recurring[i].Period.Equal(*recurring[j].Period) {
			return recurring[i].Period.Before(*recurring[j].Period)
		}
		return recurring[i].Category < recurring[j].Category
	})

	q := &Quote{StudentID: studentID, Lines: append(recurring, oneOff...)}
	for _, l := range q.Lines {
		q.TotalIDR += l.AmountIDR
	}
	if q.TotalIDR <= 0 {
		return nil, fmt.Errorf("%w: total harus > 0", ErrInvalidAmount)
	}
	return q, nil
}

func resolveSelector(
	sel Selector,
	byPeriod map[string]*obligationModel.Obligation,
	byID map[uuid.UUID]*obligationModel.Obligation,
	now time.Time,
) (*obligationModel.Obligation, int, error) {
	var o *obligationModel.Obligation

	switch {
	case sel.ObligationID != nil:
		o = byID[*sel.ObligationID]
	case sel.Category.IsRecurring() && sel.Period != nil:
		o = byPeriod[periodKey(sel.Category, *sel.Period)]
	default:
		return nil, 0, fmt.Errorf("%w: selector tidak lengkap", ErrObligationNotFound)
	}
	if o == nil {
		return nil, 0, ErrObligationNotFound
	}

	// 1. belum lunas
	if o.IsFullyPaid() {
		return nil, 0, fmt.Errorf("%w: %s", ErrFullyPaid, o.ObligationID)
	}

	// 2. periode bulanan tidak boleh di masa depan
	if !o.IsOneOff() && catalog.MonthStart(*o.ObligationPeriod).After(catalog.MonthStart(now)) {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotYetDue, o.ObligationPeriod.Format("2006-01"))
	}

	// 3. nominal: bulanan selalu sisa penuh; hutang sekali boleh dicicil
	amount := o.RemainingIDR()
	if sel.AmountIDR != nil {
		if !o.IsOneOff() {
			return nil, 0, fmt.Errorf("%w: cicilan hanya untuk hutang sekali", ErrInvalidAmount)
		}
		if *sel.AmountIDR <= 0 || *sel.AmountIDR > o.RemainingIDR() {
			return nil, 0, fmt.Errorf("%w: harus > 0 dan <= sisa %d", ErrInvalidAmount, o.RemainingIDR())
		}
		amount = *sel.AmountIDR
	}
	return o, amount, nil
}

func periodKey(cat catalogModel.BillCategory, period time.Time) string {
	return string(cat) + "|" + catalog.MonthStart(period).Format("2006-01")
}

// LoadQuote = BuildQuote terhadap snapshot dari DB untuk satu siswa.
func LoadQuote(ctx context.Context, db *gorm.DB, studentID uuid.UUID, selectors []Selector, now time.Time) (*Quote, error) {
	var obligations []obligationModel.Obligation
	if err := db.WithContext(ctx).
		Where("obligation_student_id = ?", studentID).
		Find(&obligations).Error; err != nil {
		return nil, err
	}
	return BuildQuote(studentID, obligations, selectors, now)
}
