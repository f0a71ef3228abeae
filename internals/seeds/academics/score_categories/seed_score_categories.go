package score_categories

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/features/academics/grades/model"
)

type ScoreCategorySeed struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

func SeedScoreCategoriesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kategori nilai:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []ScoreCategorySeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	if n := SeedScoreCategories(db, inputs); n > 0 {
		log.Printf("✅ %d kategori nilai ditambahkan.", n)
	}
}

// SeedScoreCategories insert per nama; bobot yang sudah diubah admin tidak ditimpa.
func SeedScoreCategories(db *gorm.DB, inputs []ScoreCategorySeed) int64 {
	var created int64
	for _, data := range inputs {
		name := strings.TrimSpace(data.Name)
		if name == "" || data.Weight < 0 || data.Weight > 100 {
			log.Printf("⚠️ Seed kategori nilai tidak valid dilewati: %+v", data)
			continue
		}

		row := model.ScoreCategory{ScoreCategoryName: name, ScoreCategoryWeight: data.Weight}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "score_category_name"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			log.Printf("❌ Gagal seed kategori nilai '%s': %v", name, res.Error)
			continue
		}
		created += res.RowsAffected
	}
	return created
}
