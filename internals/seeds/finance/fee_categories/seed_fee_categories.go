package fee_categories

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/features/finance/fee_categories/model"
)

type FeeCategorySeed struct {
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
}

func SeedFeeCategoriesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kategori biaya:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []FeeCategorySeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	if n := SeedFeeCategories(db, inputs); n > 0 {
		log.Printf("✅ %d kategori biaya ditambahkan.", n)
	}
}

// SeedFeeCategories insert per kode; kode yang sudah ada dilewati (tidak menimpa harga yang sudah diubah admin).
func SeedFeeCategories(db *gorm.DB, inputs []FeeCategorySeed) int64 {
	var created int64
	for _, data := range inputs {
		code := strings.ToUpper(strings.TrimSpace(data.Code))
		if code == "" || strings.TrimSpace(data.Name) == "" {
			log.Printf("⚠️ Seed kategori tanpa kode/nama dilewati: %+v", data)
			continue
		}

		row := model.FeeCategory{
			FeeCategoryName:          strings.TrimSpace(data.Name),
			FeeCategoryCode:          code,
			FeeCategoryDefaultAmount: data.DefaultAmount,
		}
		if d := strings.TrimSpace(data.Description); d != "" {
			row.FeeCategoryDescription = &d
		}

		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fee_category_code"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			log.Printf("❌ Gagal seed kategori '%s': %v", code, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			log.Printf("ℹ️ Kategori '%s' sudah ada, dilewati.", code)
		}
		created += res.RowsAffected
	}
	return created
}
