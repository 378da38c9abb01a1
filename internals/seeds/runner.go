package seeds

import (
	"gorm.io/gorm"

	finance "sekolahku_backend/internals/seeds/finance"
)

func RunAllSeeds(db *gorm.DB) {
	//* Finance
	finance.SeedBillKindsFromJSON(db, "internals/seeds/finance/data_bill_kinds.json")
	finance.SeedUniformsFromJSON(db, "internals/seeds/finance/data_uniforms.json")
}
