// file: internals/features/users/profiles/model/profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User minimal: identitas + role. Kredensial dikelola layanan login.
type User struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserName  string    `gorm:"column:user_name;type:varchar(150);not null" json:"user_name"`
	UserEmail string    `gorm:"column:user_email;type:varchar(150);not null;uniqueIndex:uq_users_email" json:"user_email"`
	UserRole  string    `gorm:"column:user_role;type:varchar(10);not null;index:ix_users_role" json:"user_role"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (User) TableName() string { return "users" }

func (m *User) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

// =========================================================
// Profil per role (satu user → tepat satu profil sesuai role)
// =========================================================

type TeacherProfile struct {
	TeacherProfileID             uuid.UUID `gorm:"column:teacher_profile_id;type:uuid;primaryKey" json:"teacher_profile_id"`
	TeacherProfileUserID         uuid.UUID `gorm:"column:teacher_profile_user_id;type:uuid;not null;uniqueIndex:uq_teacher_profiles_user" json:"teacher_profile_user_id"`
	TeacherProfileNIP            *string   `gorm:"column:teacher_profile_nip;type:varchar(30);uniqueIndex:uq_teacher_profiles_nip" json:"teacher_profile_nip,omitempty"`
	TeacherProfilePhone          *string   `gorm:"column:teacher_profile_phone;type:varchar(30)" json:"teacher_profile_phone,omitempty"`
	TeacherProfileAddress        *string   `gorm:"column:teacher_profile_address;type:text" json:"teacher_profile_address,omitempty"`
	TeacherProfileEducationLevel *string   `gorm:"column:teacher_profile_education_level;type:varchar(30)" json:"teacher_profile_education_level,omitempty"`

	TeacherProfileCreatedAt time.Time `gorm:"column:teacher_profile_created_at;autoCreateTime" json:"teacher_profile_created_at"`
	TeacherProfileUpdatedAt time.Time `gorm:"column:teacher_profile_updated_at;autoUpdateTime" json:"teacher_profile_updated_at"`
}

func (TeacherProfile) TableName() string { return "teacher_profiles" }

func (m *TeacherProfile) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherProfileID == uuid.Nil {
		m.TeacherProfileID = uuid.New()
	}
	return nil
}

type StaffProfile struct {
	StaffProfileID         uuid.UUID `gorm:"column:staff_profile_id;type:uuid;primaryKey" json:"staff_profile_id"`
	StaffProfileUserID     uuid.UUID `gorm:"column:staff_profile_user_id;type:uuid;not null;uniqueIndex:uq_staff_profiles_user" json:"staff_profile_user_id"`
	StaffProfileNIP        *string   `gorm:"column:staff_profile_nip;type:varchar(30);uniqueIndex:uq_staff_profiles_nip" json:"staff_profile_nip,omitempty"`
	StaffProfileDepartment *string   `gorm:"column:staff_profile_department;type:varchar(100)" json:"staff_profile_department,omitempty"`
	StaffProfilePosition   *string   `gorm:"column:staff_profile_position;type:varchar(100)" json:"staff_profile_position,omitempty"`

	StaffProfileCreatedAt time.Time `gorm:"column:staff_profile_created_at;autoCreateTime" json:"staff_profile_created_at"`
	StaffProfileUpdatedAt time.Time `gorm:"column:staff_profile_updated_at;autoUpdateTime" json:"staff_profile_updated_at"`
}

func (StaffProfile) TableName() string { return "staff_profiles" }

func (m *StaffProfile) BeforeCreate(tx *gorm.DB) error {
	if m.StaffProfileID == uuid.Nil {
		m.StaffProfileID = uuid.New()
	}
	return nil
}

type StudentProfile struct {
	StudentProfileID           uuid.UUID  `gorm:"column:student_profile_id;type:uuid;primaryKey" json:"student_profile_id"`
	StudentProfileUserID       uuid.UUID  `gorm:"column:student_profile_user_id;type:uuid;not null;uniqueIndex:uq_student_profiles_user" json:"student_profile_user_id"`
	StudentProfileNIS          *string    `gorm:"column:student_profile_nis;type:varchar(30);uniqueIndex:uq_student_profiles_nis" json:"student_profile_nis,omitempty"`
	StudentProfileNISN         *string    `gorm:"column:student_profile_nisn;type:varchar(30);uniqueIndex:uq_student_profiles_nisn" json:"student_profile_nisn,omitempty"`
	StudentProfilePhone        *string    `gorm:"column:student_profile_phone;type:varchar(30)" json:"student_profile_phone,omitempty"`
	StudentProfileAddress      *string    `gorm:"column:student_profile_address;type:text" json:"student_profile_address,omitempty"`
	StudentProfileBirthDate    *time.Time `gorm:"column:student_profile_birth_date;type:date" json:"student_profile_birth_date,omitempty"`
	StudentProfileBirthPlace   *string    `gorm:"column:student_profile_birth_place;type:varchar(100)" json:"student_profile_birth_place,omitempty"`
	StudentProfileParentUserID *uuid.UUID `gorm:"column:student_profile_parent_user_id;type:uuid" json:"student_profile_parent_user_id,omitempty"`
	StudentProfileClassroomID  *uuid.UUID `gorm:"column:student_profile_classroom_id;type:uuid;index:ix_student_profiles_classroom" json:"student_profile_classroom_id,omitempty"`

	StudentProfileCreatedAt time.Time `gorm:"column:student_profile_created_at;autoCreateTime" json:"student_profile_created_at"`
	StudentProfileUpdatedAt time.Time `gorm:"column:student_profile_updated_at;autoUpdateTime" json:"student_profile_updated_at"`
}

func (StudentProfile) TableName() string { return "student_profiles" }

func (m *StudentProfile) BeforeCreate(tx *gorm.DB) error {
	if m.StudentProfileID == uuid.Nil {
		m.StudentProfileID = uuid.New()
	}
	return nil
}

// All dipakai AutoMigrate di test.
func All() []any {
	return []any{&User{}, &TeacherProfile{}, &StaffProfile{}, &StudentProfile{}}
}
