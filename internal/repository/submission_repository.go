package repository

import (
	"course_center_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) ListByStudentAndLesson(studentID, lessonID uint) ([]model.SubmissionRecord, error) {
	var records []model.SubmissionRecord
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
		Order("id asc").Find(&records).Error
	return records, err
}

func (r *SubmissionRepository) ListByLesson(lessonID uint) ([]model.SubmissionRecord, error) {
	var records []model.SubmissionRecord
	err := r.DB.Where("lesson_id = ?", lessonID).Order("id asc").Find(&records).Error
	return records, err
}
