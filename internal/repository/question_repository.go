package repository

import (
	"course_center_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) ListByTeacher(teacherID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at desc").Find(&qs).Error
	return qs, err
}

// LinkedLessonIDs 该习题出现在哪些课时里
func (r *QuestionRepository) LinkedLessonIDs(questionID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.LessonQuestionLink{}).
		Where("question_id = ?", questionID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}
