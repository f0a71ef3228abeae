package academic_years

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/features/academics/academic_years/model"
	"pkbm_backend/internals/helpers/dbtime"
)

type AcademicYearSeed struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
}

func SeedAcademicYearsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file tahun ajaran:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []AcademicYearSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	if n := SeedAcademicYears(db, inputs); n > 0 {
		log.Printf("✅ %d tahun ajaran ditambahkan.", n)
	}
}

// SeedAcademicYears insert per nama. Flag aktif hanya dipakai kalau belum ada tahun aktif sama sekali.
func SeedAcademicYears(db *gorm.DB, inputs []AcademicYearSeed) int64 {
	var activeCount int64
	if err := db.Model(&model.AcademicYear{}).
		Where("academic_year_is_active = ?", true).
		Count(&activeCount).Error; err != nil {
		log.Printf("❌ Gagal cek tahun aktif: %v", err)
		return 0
	}

	var created int64
	for _, data := range inputs {
		name := strings.TrimSpace(data.Name)
		start, errS := dbtime.ParseDate(data.StartDate)
		end, errE := dbtime.ParseDate(data.EndDate)
		if name == "" || errS != nil || errE != nil || end.Before(start) {
			log.Printf("⚠️ Seed tahun ajaran tidak valid dilewati: %+v", data)
			continue
		}

		row := model.AcademicYear{
			AcademicYearName:      name,
			AcademicYearStartDate: start,
			AcademicYearEndDate:   end,
			AcademicYearIsActive:  data.IsActive && activeCount == 0,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "academic_year_name"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			log.Printf("❌ Gagal seed tahun ajaran '%s': %v", name, res.Error)
			continue
		}
		if res.RowsAffected > 0 && row.AcademicYearIsActive {
			activeCount++
		}
		created += res.RowsAffected
	}
	return created
}
