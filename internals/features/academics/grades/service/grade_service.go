package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/constants"
	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	classroomService "pkbm_backend/internals/features/academics/classrooms/service"
	"pkbm_backend/internals/features/academics/grades/model"
	subjectService "pkbm_backend/internals/features/academics/subjects/service"
	helper "pkbm_backend/internals/helpers"
)

var maxScore = decimal.NewFromInt(100)

type ItemInput struct {
	StudentID uuid.UUID
	Score     *decimal.Decimal // nil = dilewati
	Notes     *string
}

type SaveInput struct {
	ClassroomID     uuid.UUID
	SubjectID       uuid.UUID
	ScoreCategoryID uuid.UUID
	AcademicYearID  uuid.UUID
	TeacherID       uuid.UUID
	Items           []ItemInput
}

// SheetKey: satu lembar nilai = kelas × mapel × kategori × tahun ajaran.
type SheetKey struct {
	ClassroomID     uuid.UUID `json:"classroom_id"`
	SubjectID       uuid.UUID `json:"subject_id"`
	ScoreCategoryID uuid.UUID `json:"score_category_id"`
	AcademicYearID  uuid.UUID `json:"academic_year_id"`
}

type SheetItem struct {
	StudentID   uuid.UUID        `json:"student_id"`
	StudentName string           `json:"student_name"`
	Score       *decimal.Decimal `json:"score"`
	Notes       *string          `json:"notes,omitempty"`
}

type Sheet struct {
	SheetKey
	Items []SheetItem `json:"items"`
}

type rosterStudent struct {
	UserID   uuid.UUID `gorm:"column:user_id"`
	UserName string    `gorm:"column:user_name"`
}

func loadStudents(db *gorm.DB, classroomID uuid.UUID) ([]rosterStudent, error) {
	var rows []rosterStudent
	if err := db.Table("student_profiles AS sp").
		Select("u.user_id, u.user_name").
		Joins("JOIN users u ON u.user_id = sp.student_profile_user_id").
		Where("sp.student_profile_classroom_id = ? AND u.user_role = ?", classroomID, constants.RoleStudent).
		Order("u.user_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load classroom students")
	}
	return rows, nil
}

func checkSheetRefs(ctx context.Context, tx *gorm.DB, k SheetKey) error {
	ok, err := subjectService.Lookup{}.Exists(ctx, tx, k.SubjectID)
	if err != nil {
		return err
	}
	if !ok {
		return subjectService.ErrSubjectNotFound
	}
	var n int64
	if err := tx.WithContext(ctx).Model(&model.ScoreCategory{}).
		Where("score_category_id = ?", k.ScoreCategoryID).
		Count(&n).Error; err != nil {
		return errors.Wrap(err, "check score category")
	}
	if n == 0 {
		return ErrScoreCategoryNotFound
	}
	ok, err = yearService.Lookup{}.Exists(ctx, tx, k.AcademicYearID)
	if err != nil {
		return err
	}
	if !ok {
		return yearService.ErrAcademicYearNotFound
	}
	return nil
}

// Save meng-upsert nilai satu lembar. Item tanpa skor dilewati (nilai lama tetap),
// siswa di luar roster kelas ditolak per item.
func Save(ctx context.Context, db *gorm.DB, in SaveInput) (Sheet, error) {
	key := SheetKey{
		ClassroomID:     in.ClassroomID,
		SubjectID:       in.SubjectID,
		ScoreCategoryID: in.ScoreCategoryID,
		AcademicYearID:  in.AcademicYearID,
	}

	ve := helper.NewValidationError()
	seen := make(map[uuid.UUID]int, len(in.Items))
	for i, it := range in.Items {
		if it.Score != nil && (it.Score.IsNegative() || it.Score.GreaterThan(maxScore)) {
			ve.Add(fmt.Sprintf("items[%d].score", i), "nilai harus 0..100")
		}
		if first, dup := seen[it.StudentID]; dup {
			ve.Add(fmt.Sprintf("items[%d].student_id", i), fmt.Sprintf("siswa sudah ada di items[%d]", first))
			continue
		}
		seen[it.StudentID] = i
	}
	if err := ve.OrNil(); err != nil {
		return Sheet{}, err
	}

	saved := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roster, err := classroomService.Roster{}.StudentIDs(ctx, tx, in.ClassroomID)
		if err != nil {
			return err
		}
		if err := checkSheetRefs(ctx, tx, key); err != nil {
			return err
		}

		member := make(map[uuid.UUID]struct{}, len(roster))
		for _, id := range roster {
			member[id] = struct{}{}
		}
		for i, it := range in.Items {
			if _, ok := member[it.StudentID]; !ok {
				ve.Add(fmt.Sprintf("items[%d].student_id", i), "siswa tidak terdaftar di kelas ini")
			}
		}
		if err := ve.OrNil(); err != nil {
			return err
		}

		now := time.Now()
		rows := make([]model.Score, 0, len(in.Items))
		for _, it := range in.Items {
			if it.Score == nil {
				continue
			}
			rows = append(rows, model.Score{
				ScoreStudentID:       it.StudentID,
				ScoreSubjectID:       in.SubjectID,
				ScoreClassroomID:     in.ClassroomID,
				ScoreAcademicYearID:  in.AcademicYearID,
				ScoreScoreCategoryID: in.ScoreCategoryID,
				ScoreValue:           it.Score.Round(2),
				ScoreNotes:           it.Notes,
				ScoreRecordedBy:      in.TeacherID,
				ScoreUpdatedAt:       now,
			})
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "score_student_id"},
				{Name: "score_subject_id"},
				{Name: "score_classroom_id"},
				{Name: "score_academic_year_id"},
				{Name: "score_score_category_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"score_value",
				"score_notes",
				"score_recorded_by",
				"score_updated_at",
			}),
		}).Create(&rows).Error; err != nil {
			return errors.Wrap(err, "upsert scores")
		}
		saved = len(rows)
		return nil
	})
	if err != nil {
		return Sheet{}, err
	}

	log.Printf("[INFO] Nilai kelas=%s mapel=%s kategori=%s disimpan (%d siswa) oleh %s",
		in.ClassroomID, in.SubjectID, in.ScoreCategoryID, saved, in.TeacherID)
	return LoadSheet(ctx, db, key)
}

// LoadSheet menampilkan seluruh roster kelas; siswa tanpa nilai tampil dengan score null.
func LoadSheet(ctx context.Context, db *gorm.DB, k SheetKey) (Sheet, error) {
	db = db.WithContext(ctx)
	out := Sheet{SheetKey: k}

	if _, err := (classroomService.Roster{}).StudentIDs(ctx, db, k.ClassroomID); err != nil {
		return out, err
	}
	students, err := loadStudents(db, k.ClassroomID)
	if err != nil {
		return out, err
	}

	var scores []model.Score
	if err := db.Where(
		"score_classroom_id = ? AND score_subject_id = ? AND score_score_category_id = ? AND score_academic_year_id = ?",
		k.ClassroomID, k.SubjectID, k.ScoreCategoryID, k.AcademicYearID,
	).Find(&scores).Error; err != nil {
		return out, errors.Wrap(err, "load scores")
	}
	byStudent := make(map[uuid.UUID]model.Score, len(scores))
	for _, s := range scores {
		byStudent[s.ScoreStudentID] = s
	}

	out.Items = make([]SheetItem, 0, len(students))
	for _, s := range students {
		item := SheetItem{StudentID: s.UserID, StudentName: s.UserName}
		if sc, ok := byStudent[s.UserID]; ok {
			v := sc.ScoreValue
			item.Score = &v
			item.Notes = sc.ScoreNotes
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

type RecapItem struct {
	StudentID   uuid.UUID                  `json:"student_id"`
	StudentName string                     `json:"student_name"`
	Scores      map[string]decimal.Decimal `json:"scores"` // nama kategori → nilai
	Final       *decimal.Decimal           `json:"final"`  // null bila belum ada nilai
}

// Recap menghitung nilai akhir per siswa untuk satu mapel:
// rata-rata berbobot dari kategori yang sudah terisi, dibulatkan 2 desimal.
func Recap(ctx context.Context, db *gorm.DB, classroomID, subjectID, yearID uuid.UUID) ([]RecapItem, error) {
	db = db.WithContext(ctx)
	if _, err := (classroomService.Roster{}).StudentIDs(ctx, db, classroomID); err != nil {
		return nil, err
	}
	students, err := loadStudents(db, classroomID)
	if err != nil {
		return nil, err
	}
	cats, err := ListCategories(ctx, db)
	if err != nil {
		return nil, err
	}
	catByID := make(map[uuid.UUID]model.ScoreCategory, len(cats))
	for _, c := range cats {
		catByID[c.ScoreCategoryID] = c
	}

	var scores []model.Score
	if err := db.Where(
		"score_classroom_id = ? AND score_subject_id = ? AND score_academic_year_id = ?",
		classroomID, subjectID, yearID,
	).Find(&scores).Error; err != nil {
		return nil, errors.Wrap(err, "load scores")
	}
	byStudent := map[uuid.UUID][]model.Score{}
	for _, s := range scores {
		byStudent[s.ScoreStudentID] = append(byStudent[s.ScoreStudentID], s)
	}

	out := make([]RecapItem, 0, len(students))
	for _, st := range students {
		item := RecapItem{StudentID: st.UserID, StudentName: st.UserName, Scores: map[string]decimal.Decimal{}}
		sum, weights := decimal.Zero, decimal.Zero
		for _, s := range byStudent[st.UserID] {
			cat, ok := catByID[s.ScoreScoreCategoryID]
			if !ok {
				continue
			}
			item.Scores[cat.ScoreCategoryName] = s.ScoreValue
			w := decimal.NewFromInt(int64(cat.ScoreCategoryWeight))
			sum = sum.Add(s.ScoreValue.Mul(w))
			weights = weights.Add(w)
		}
		if weights.IsPositive() {
			final := sum.Div(weights).Round(2)
			item.Final = &final
		}
		out = append(out, item)
	}
	return out, nil
}
