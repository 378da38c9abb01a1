// file: internals/features/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/students/model"
)

type StudentCreateDTO struct {
	StudentUserID     string    `json:"student_user_id" validate:"required,uuid"`
	StudentFullName   string    `json:"student_full_name" validate:"required,min=2,max=120"`
	StudentEnrolledAt time.Time `json:"student_enrolled_at" validate:"required"`
}

func (d *StudentCreateDTO) ToModel() (*model.Student, error) {
	userID, err := uuid.Parse(d.StudentUserID)
	if err != nil {
		return nil, err
	}
	return &model.Student{
		StudentUserID:     userID,
		StudentFullName:   d.StudentFullName,
		StudentEnrolledAt: d.StudentEnrolledAt,
		StudentStatus:     model.StudentStatusPending,
	}, nil
}

type StudentResponse struct {
	StudentID         uuid.UUID `json:"student_id"`
	StudentFullName   string    `json:"student_full_name"`
	StudentEnrolledAt string    `json:"student_enrolled_at"` // yyyy-mm-dd
	StudentStatus     string    `json:"student_status"`
	StudentCreatedAt  time.Time `json:"student_created_at"`
}

func FromStudentModel(m *model.Student) StudentResponse {
	return StudentResponse{
		StudentID:         m.StudentID,
		StudentFullName:   m.StudentFullName,
		StudentEnrolledAt: m.StudentEnrolledAt.Format("2006-01-02"),
		StudentStatus:     string(m.StudentStatus),
		StudentCreatedAt:  m.StudentCreatedAt,
	}
}
