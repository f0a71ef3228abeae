package dto

import (
	"strings"

	"github.com/google/uuid"

	"pkbm_backend/internals/features/academics/classrooms/model"
)

// POST /classrooms, PUT /classrooms/:id
// academic_year_id kosong = tahun ajaran aktif.
type SaveClassroomRequest struct {
	Name              string     `json:"name" validate:"required,max=50"`
	AcademicYearID    *uuid.UUID `json:"academic_year_id"`
	LevelID           *uuid.UUID `json:"level_id" validate:"required"`
	HomeroomTeacherID *uuid.UUID `json:"homeroom_teacher_id"`
}

func (r SaveClassroomRequest) Apply(m *model.Classroom) {
	m.ClassroomName = strings.TrimSpace(r.Name)
	if r.AcademicYearID != nil {
		m.ClassroomAcademicYearID = *r.AcademicYearID
	}
	m.ClassroomLevelID = r.LevelID
	m.ClassroomHomeroomTeacherID = r.HomeroomTeacherID
}

// Baris daftar/detail kelas, sudah di-join dengan tahun, jenjang & wali kelas.
type ClassroomView struct {
	ClassroomID                uuid.UUID  `json:"classroom_id"`
	ClassroomName              string     `json:"classroom_name"`
	ClassroomAcademicYearID    uuid.UUID  `json:"classroom_academic_year_id"`
	AcademicYearName           string     `json:"academic_year_name"`
	ClassroomLevelID           *uuid.UUID `json:"classroom_level_id,omitempty"`
	LevelName                  *string    `json:"level_name,omitempty"`
	ClassroomHomeroomTeacherID *uuid.UUID `json:"classroom_homeroom_teacher_id,omitempty"`
	HomeroomTeacherName        *string    `json:"homeroom_teacher_name,omitempty"`
	StudentCount               int64      `json:"student_count"`
}

type RosterEntry struct {
	UserID           uuid.UUID `json:"user_id"`
	UserName         string    `json:"user_name"`
	StudentProfileID uuid.UUID `json:"student_profile_id"`
	NIS              *string   `json:"nis,omitempty"`
}
