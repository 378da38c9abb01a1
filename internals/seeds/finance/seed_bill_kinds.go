// file: internals/seeds/finance/seed_bill_kinds.go
package finance

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/catalog/model"
)

type BillKindSeed struct {
	Category      string `json:"category"`
	AmountIDR     int    `json:"amount_idr"`
	EffectiveFrom string `json:"effective_from"` // yyyy-mm
	Note          string `json:"note"`
}

// SeedBillKindsFromJSON mengisi tarif awal. Skip baris yang sudah ada
// (kombinasi kategori + effective_from) supaya aman dijalankan berulang.
func SeedBillKindsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var seeds []BillKindSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	inserted := 0
	for _, s := range seeds {
		eff, err := time.Parse("2006-01", s.EffectiveFrom)
		if err != nil {
			log.Printf("❌ effective_from %q tidak valid, dilewati", s.EffectiveFrom)
			continue
		}

		var count int64
		db.Model(&model.BillKind{}).
			Where("bill_kind_category = ? AND bill_kind_effective_from = ?", s.Category, eff).
			Count(&count)
		if count > 0 {
			continue
		}

		note := s.Note
		row := model.BillKind{
			BillKindCategory:      model.BillCategory(s.Category),
			BillKindAmountIDR:     s.AmountIDR,
			BillKindEffectiveFrom: eff,
		}
		if note != "" {
			row.BillKindNote = &note
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Gagal insert tarif %s %s: %v", s.Category, s.EffectiveFrom, err)
			continue
		}
		inserted++
	}
	log.Printf("✅ Seed bill_kinds selesai: %d baris baru", inserted)
}
