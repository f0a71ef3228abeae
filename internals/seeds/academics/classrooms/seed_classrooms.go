package classrooms

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	yearModel "pkbm_backend/internals/features/academics/academic_years/model"
	"pkbm_backend/internals/features/academics/classrooms/model"
	levelModel "pkbm_backend/internals/features/academics/levels/model"
)

type ClassroomSeed struct {
	Name         string `json:"name"`
	AcademicYear string `json:"academic_year"` // nama tahun ajaran, mis. "2025/2026"
	Level        string `json:"level"`         // nama jenjang
}

func SeedClassroomsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kelas:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []ClassroomSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	if n := SeedClassrooms(db, inputs); n > 0 {
		log.Printf("✅ %d kelas ditambahkan.", n)
	}
}

// SeedClassrooms insert per (tahun ajaran, nama). Tahun & jenjang harus sudah di-seed.
func SeedClassrooms(db *gorm.DB, inputs []ClassroomSeed) int64 {
	var created int64
	for _, data := range inputs {
		name := strings.TrimSpace(data.Name)
		if name == "" {
			log.Printf("⚠️ Seed kelas tanpa nama dilewati: %+v", data)
			continue
		}

		var year yearModel.AcademicYear
		if err := db.Where("academic_year_name = ?", strings.TrimSpace(data.AcademicYear)).Take(&year).Error; err != nil {
			log.Printf("⚠️ Tahun ajaran '%s' untuk kelas '%s' tidak ditemukan, dilewati.", data.AcademicYear, name)
			continue
		}
		var level levelModel.Level
		if err := db.Where("level_name = ?", strings.TrimSpace(data.Level)).Take(&level).Error; err != nil {
			log.Printf("⚠️ Jenjang '%s' untuk kelas '%s' tidak ditemukan, dilewati.", data.Level, name)
			continue
		}

		row := model.Classroom{
			ClassroomAcademicYearID: year.AcademicYearID,
			ClassroomName:           name,
			ClassroomLevelID:        &level.LevelID,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "classroom_academic_year_id"}, {Name: "classroom_name"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			log.Printf("❌ Gagal seed kelas '%s': %v", name, res.Error)
			continue
		}
		created += res.RowsAffected
	}
	return created
}
