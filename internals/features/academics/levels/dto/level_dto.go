package dto

import (
	"strings"

	"pkbm_backend/internals/features/academics/levels/model"
)

// POST /levels, PUT /levels/:id
type SaveLevelRequest struct {
	Name string `json:"name" validate:"required,max=50"`
	Type string `json:"type" validate:"omitempty,oneof=class_teacher subject_teacher"`
}

func (r SaveLevelRequest) Apply(m *model.Level) {
	m.LevelName = strings.TrimSpace(r.Name)
	m.LevelType = model.LevelType(r.Type)
	if m.LevelType == "" {
		m.LevelType = model.LevelTypeClassTeacher
	}
}
