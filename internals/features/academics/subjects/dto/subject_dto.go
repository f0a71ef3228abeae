package dto

import (
	"strings"

	"github.com/google/uuid"

	"pkbm_backend/internals/features/academics/subjects/model"
)

// POST /subjects, PUT /subjects/:id (replace penuh; level_id kosong = lintas jenjang)
type SaveSubjectRequest struct {
	Name    string     `json:"name" validate:"required,max=100"`
	Code    string     `json:"code" validate:"required,max=50"`
	LevelID *uuid.UUID `json:"level_id"`
}

func (r SaveSubjectRequest) Apply(m *model.Subject) {
	m.SubjectName = strings.TrimSpace(r.Name)
	m.SubjectCode = strings.ToUpper(strings.TrimSpace(r.Code))
	m.SubjectLevelID = r.LevelID
}
