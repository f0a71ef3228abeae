package levels

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/features/academics/levels/model"
)

type LevelSeed struct {
	Name string `json:"name"`
	Type string `json:"type"` // class_teacher | subject_teacher
}

func SeedLevelsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file jenjang:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []LevelSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	if n := SeedLevels(db, inputs); n > 0 {
		log.Printf("✅ %d jenjang ditambahkan.", n)
	}
}

func SeedLevels(db *gorm.DB, inputs []LevelSeed) int64 {
	var created int64
	for _, data := range inputs {
		name := strings.TrimSpace(data.Name)
		typ := model.LevelType(strings.TrimSpace(data.Type))
		if typ == "" {
			typ = model.LevelTypeClassTeacher
		}
		if name == "" || !typ.Valid() {
			log.Printf("⚠️ Seed jenjang tidak valid dilewati: %+v", data)
			continue
		}

		row := model.Level{LevelName: name, LevelType: typ}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "level_name"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			log.Printf("❌ Gagal seed jenjang '%s': %v", name, res.Error)
			continue
		}
		created += res.RowsAffected
	}
	return created
}
