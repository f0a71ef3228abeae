package subjects

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	levelModel "pkbm_backend/internals/features/academics/levels/model"
	"pkbm_backend/internals/features/academics/subjects/model"
)

type SubjectSeed struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Level string `json:"level,omitempty"` // nama jenjang; kosong = lintas jenjang
}

func SeedSubjectsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file mapel:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []SubjectSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	if n := SeedSubjects(db, inputs); n > 0 {
		log.Printf("✅ %d mapel ditambahkan.", n)
	}
}

// SeedSubjects insert per kode. Jenjang dicari per nama dan harus sudah di-seed.
func SeedSubjects(db *gorm.DB, inputs []SubjectSeed) int64 {
	var created int64
	for _, data := range inputs {
		code := strings.ToUpper(strings.TrimSpace(data.Code))
		name := strings.TrimSpace(data.Name)
		if code == "" || name == "" {
			log.Printf("⚠️ Seed mapel tanpa kode/nama dilewati: %+v", data)
			continue
		}

		row := model.Subject{SubjectName: name, SubjectCode: code}
		if lv := strings.TrimSpace(data.Level); lv != "" {
			var level levelModel.Level
			if err := db.Where("level_name = ?", lv).Take(&level).Error; err != nil {
				log.Printf("⚠️ Jenjang '%s' untuk mapel '%s' tidak ditemukan, dilewati.", lv, code)
				continue
			}
			row.SubjectLevelID = &level.LevelID
		}

		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_code"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			log.Printf("❌ Gagal seed mapel '%s': %v", code, res.Error)
			continue
		}
		created += res.RowsAffected
	}
	return created
}
