// file: internals/seeds/finance/seed_uniforms.go
package finance

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/orders/model"
)

type UniformSeed struct {
	Name     string `json:"name"`
	Size     string `json:"size"`
	PriceIDR int    `json:"price_idr"`
	Stock    int    `json:"stock"`
}

// SeedUniformsFromJSON mengisi katalog seragam awal. Skip kombinasi
// (nama, ukuran) yang sudah ada.
func SeedUniformsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var seeds []UniformSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	inserted := 0
	for _, s := range seeds {
		var count int64
		db.Model(&model.Uniform{}).
			Where("uniform_name = ? AND uniform_size = ?", s.Name, s.Size).
			Count(&count)
		if count > 0 {
			continue
		}

		row := model.Uniform{
			UniformName:     s.Name,
			UniformSize:     s.Size,
			UniformPriceIDR: s.PriceIDR,
			UniformStock:    s.Stock,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Gagal insert seragam %s %s: %v", s.Name, s.Size, err)
			continue
		}
		inserted++
	}
	log.Printf("✅ Seed uniforms selesai: %d baris baru", inserted)
}
