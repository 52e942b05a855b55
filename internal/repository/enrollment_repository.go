package repository

import (
	"course_center_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Create 依赖 (student_id, course_id) 唯一索引做冲突裁决：
// 并发重复选课只有一条插入成功，输家拿到 0 行。
func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(enrollment)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *EnrollmentRepository) Find(studentID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Exists(studentID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) ListByCourse(courseID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("course_id = ?", courseID).Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CourseIDsOfStudent(studentID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Enrollment{}).Where("student_id = ?", studentID).Pluck("course_id", &ids).Error
	return ids, err
}

func (r *EnrollmentRepository) StudentIDsOfCourse(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Pluck("student_id", &ids).Error
	return ids, err
}

func (r *EnrollmentRepository) CountByCourses(courseIDs []uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id IN ?", courseIDs).Count(&count).Error
	return count, err
}

// Dismiss 退课：删除该生在这门课所有课时的做题记录，再删选课记录。
// 选课记录不存在时返回 ErrNotEnrolled 由调用方翻译（这里返回行数）。
func (r *EnrollmentRepository) Dismiss(studentID, courseID uint, lessonIDs []uint) (int64, error) {
	var removed int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if len(lessonIDs) > 0 {
			if err := tx.Where("student_id = ? AND lesson_id IN ?", studentID, lessonIDs).
				Delete(&model.SubmissionRecord{}).Error; err != nil {
				return err
			}
		}
		res := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).
			Delete(&model.Enrollment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

func (r *EnrollmentRepository) UpdateFinalScore(tx *gorm.DB, enrollmentID uint, finalScore float64) error {
	return tx.Model(&model.Enrollment{}).
		Where("id = ?", enrollmentID).
		Update("final_score", finalScore).Error
}
