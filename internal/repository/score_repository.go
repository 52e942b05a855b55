package repository

import (
	"course_center_backend/internal/model"
	"course_center_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) Get(studentID, lessonID uint) (*model.Score, error) {
	var score model.Score
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *ScoreRepository) Exists(studentID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Score{}).
		Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
		Count(&count).Error
	return count > 0, err
}

// ListByStudentAndLessons 某学生在一组课时上的成绩
func (r *ScoreRepository) ListByStudentAndLessons(studentID uint, lessonIDs []uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("student_id = ? AND lesson_id IN ?", studentID, lessonIDs).Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) ListByLesson(lessonID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("lesson_id = ?", lessonID).Find(&scores).Error
	return scores, err
}

// SaveGraded 成绩与逐题记录的原子落库。
// (student_id, lesson_id) 唯一索引是"只评一次"的防线：
// 冲突时插入 0 行，整个事务回滚并返回 ErrAlreadySubmitted，
// 逐题记录不会写下一半。
func (r *ScoreRepository) SaveGraded(score *model.Score, records []model.SubmissionRecord) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).Create(score)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAlreadySubmitted
		}
		return tx.Create(&records).Error
	})
}
