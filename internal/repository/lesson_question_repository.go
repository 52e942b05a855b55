package repository

import (
	"course_center_backend/internal/model"

	"gorm.io/gorm"
)

type LessonQuestionRepository struct {
	DB *gorm.DB
}

func NewLessonQuestionRepository(db *gorm.DB) *LessonQuestionRepository {
	return &LessonQuestionRepository{DB: db}
}

func (r *LessonQuestionRepository) ListLinks(lessonID uint) ([]model.LessonQuestionLink, error) {
	var links []model.LessonQuestionLink
	err := r.DB.Where("lesson_id = ?", lessonID).Order("`order` asc").Find(&links).Error
	return links, err
}

func (r *LessonQuestionRepository) FindLink(lessonID, questionID uint) (*model.LessonQuestionLink, error) {
	var link model.LessonQuestionLink
	err := r.DB.Where("lesson_id = ? AND question_id = ?", lessonID, questionID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// HasCommittedLink 习题是否已被任一课时发布引用
func (r *LessonQuestionRepository) HasCommittedLink(questionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LessonQuestionLink{}).
		Where("question_id = ? AND committed = ?", questionID, true).
		Count(&count).Error
	return count > 0, err
}

// MaxOrder 当前最大顺序号，无关联时为 0
func (r *LessonQuestionRepository) MaxOrder(tx *gorm.DB, lessonID uint) (int, error) {
	var max *int
	err := tx.Model(&model.LessonQuestionLink{}).
		Where("lesson_id = ?", lessonID).
		Select("MAX(`order`)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *LessonQuestionRepository) InsertLinks(tx *gorm.DB, links []model.LessonQuestionLink) error {
	return tx.Create(&links).Error
}

// DeleteUncommitted 只删未发布关联，返回删除行数
func (r *LessonQuestionRepository) DeleteUncommitted(tx *gorm.DB, lessonID, questionID uint) (int64, error) {
	res := tx.Where("lesson_id = ? AND question_id = ? AND committed = ?", lessonID, questionID, false).
		Delete(&model.LessonQuestionLink{})
	return res.RowsAffected, res.Error
}

// CommitLinks 将指定关联置为已发布，返回更新行数
func (r *LessonQuestionRepository) CommitLinks(tx *gorm.DB, lessonID uint, questionIDs []uint) (int64, error) {
	res := tx.Model(&model.LessonQuestionLink{}).
		Where("lesson_id = ? AND question_id IN ? AND committed = ?", lessonID, questionIDs, false).
		Update("committed", true)
	return res.RowsAffected, res.Error
}

// OrderedQuestions 按关联顺序取课时习题，committedOnly 时只取已发布的
func (r *LessonQuestionRepository) OrderedQuestions(lessonID uint, committedOnly bool) ([]model.Question, error) {
	query := r.DB.Table("lesson_question_links l").
		Select("q.*").
		Joins("JOIN questions q ON q.id = l.question_id AND q.deleted_at IS NULL").
		Where("l.lesson_id = ?", lessonID)
	if committedOnly {
		query = query.Where("l.committed = ?", true)
	}

	var qs []model.Question
	err := query.Order("l.`order` asc").Scan(&qs).Error
	return qs, err
}
