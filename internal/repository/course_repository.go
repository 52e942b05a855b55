package repository

import (
	"course_center_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByIDs(ids []uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("id IN ?", ids).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) ListByTeacher(teacherID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("teacher_id = ?", teacherID).Find(&courses).Error
	return courses, err
}

// ListPage 按页查询，支持课程名模糊过滤和教师 id 集合过滤
func (r *CourseRepository) ListPage(name string, teacherIDs []uint, page, limit int) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{})
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if teacherIDs != nil {
		query = query.Where("teacher_id IN ?", teacherIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

// MarkOver 结课，Open→Over 只允许一次。被抢先结束时返回 0 行。
func (r *CourseRepository) MarkOver(tx *gorm.DB, courseID uint) (int64, error) {
	res := tx.Model(&model.Course{}).
		Where("id = ? AND is_over = ?", courseID, false).
		Update("is_over", true)
	return res.RowsAffected, res.Error
}

// DeleteCascade 删除课程及其全部从属记录，单事务执行
func (r *CourseRepository) DeleteCascade(courseID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("course_id = ?", courseID).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.SubmissionRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonQuestionLink{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Score{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", courseID).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, courseID).Error
	})
}
