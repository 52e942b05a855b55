package repository

import (
	"course_center_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) ListByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).Order("created_at asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListIDsByCourse(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).Where("course_id = ?", courseID).Pluck("id", &ids).Error
	return ids, err
}

// CountPublished 统计一批课程下已发布习题的课时数
func (r *LessonRepository) CountPublished(courseIDs []uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Where("course_id IN ? AND has_questions = ?", courseIDs, true).
		Count(&count).Error
	return count, err
}

// MarkPublished 草稿→已发布的一次性翻转，输掉并发竞争时返回 0 行
func (r *LessonRepository) MarkPublished(tx *gorm.DB, lessonID uint) (int64, error) {
	res := tx.Model(&model.Lesson{}).
		Where("id = ? AND has_questions = ?", lessonID, false).
		Update("has_questions", true)
	return res.RowsAffected, res.Error
}

// DeleteCascade 删除课时及其做题记录、习题关联、成绩，单事务执行
func (r *LessonRepository) DeleteCascade(lessonID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&model.SubmissionRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&model.LessonQuestionLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&model.Score{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, lessonID).Error
	})
}
