package service

import (
	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/internal/util"

	"gorm.io/gorm"
)

// PublishingService 管理课时习题的两阶段发布：
// 草稿态可增删关联，发布一次性提交全部待发布习题，发布后不可回退。
type PublishingService struct {
	DB                 *gorm.DB
	LessonRepo         *repository.LessonRepository
	CourseRepo         *repository.CourseRepository
	QuestionRepo       *repository.QuestionRepository
	LessonQuestionRepo *repository.LessonQuestionRepository
}

func NewPublishingService(
	db *gorm.DB,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	questionRepo *repository.QuestionRepository,
	lessonQuestionRepo *repository.LessonQuestionRepository,
) *PublishingService {
	return &PublishingService{
		DB:                 db,
		LessonRepo:         lessonRepo,
		CourseRepo:         courseRepo,
		QuestionRepo:       questionRepo,
		LessonQuestionRepo: lessonQuestionRepo,
	}
}

func (s *PublishingService) authorize(principal *model.Principal, lessonID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !CanManageCourse(principal, course) {
		return nil, util.ErrPermissionDenied
	}
	return lesson, nil
}

// AddQuestions 向草稿态课时追加习题关联，顺序号接在现有最大值之后。
// 同一次调用内的重复、与已有关联的重复都会整体拒绝。
func (s *PublishingService) AddQuestions(principal *model.Principal, lessonID uint, questionIDs []uint) error {
	lesson, err := s.authorize(principal, lessonID)
	if err != nil {
		return err
	}
	if lesson.HasQuestions {
		return util.ErrAlreadyCommitted
	}
	if len(questionIDs) == 0 {
		return util.ErrEmptyQuestionSet
	}

	seen := make(map[uint]struct{}, len(questionIDs))
	for _, id := range questionIDs {
		if _, dup := seen[id]; dup {
			return util.ErrDuplicateQuestion
		}
		seen[id] = struct{}{}
	}

	questions, err := s.QuestionRepo.FindByIDs(questionIDs)
	if err != nil {
		return err
	}
	if len(questions) != len(questionIDs) {
		return gorm.ErrRecordNotFound
	}
	for _, q := range questions {
		if !IsOwner(principal, q.TeacherID) && !IsAdmin(principal) {
			return util.ErrPermissionDenied
		}
	}

	existing, err := s.LessonQuestionRepo.ListLinks(lessonID)
	if err != nil {
		return err
	}
	for _, link := range existing {
		if _, dup := seen[link.QuestionID]; dup {
			return util.ErrDuplicateQuestion
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		maxOrder, err := s.LessonQuestionRepo.MaxOrder(tx, lessonID)
		if err != nil {
			return err
		}
		links := make([]model.LessonQuestionLink, 0, len(questionIDs))
		for i, id := range questionIDs {
			links = append(links, model.LessonQuestionLink{
				LessonID:   lessonID,
				QuestionID: id,
				Order:      maxOrder + i + 1,
			})
		}
		return s.LessonQuestionRepo.InsertLinks(tx, links)
	})
}

// RemoveQuestion 从草稿态课时移除一条未发布关联。
func (s *PublishingService) RemoveQuestion(principal *model.Principal, lessonID, questionID uint) error {
	lesson, err := s.authorize(principal, lessonID)
	if err != nil {
		return err
	}
	if lesson.HasQuestions {
		return util.ErrAlreadyCommitted
	}
	removed, err := s.LessonQuestionRepo.DeleteUncommitted(s.DB, lessonID, questionID)
	if err != nil {
		return err
	}
	if removed == 0 {
		if _, err := s.LessonQuestionRepo.FindLink(lessonID, questionID); err == nil {
			return util.ErrAlreadyCommitted
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Commit 发布课时习题。提交集合必须与当前全部未发布关联完全一致，
// 缺一题或多一题都整体失败。课时状态与关联标记在同一事务内翻转，
// 课时状态位是单向闸门，并发重复发布只有一次生效。
func (s *PublishingService) Commit(principal *model.Principal, lessonID uint, questionIDs []uint) error {
	lesson, err := s.authorize(principal, lessonID)
	if err != nil {
		return err
	}
	if lesson.HasQuestions {
		return util.ErrAlreadyCommitted
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		rows, err := s.LessonRepo.MarkPublished(tx, lessonID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return util.ErrAlreadyCommitted
		}

		var pending []model.LessonQuestionLink
		if err := tx.Where("lesson_id = ? AND committed = ?", lessonID, false).
			Find(&pending).Error; err != nil {
			return err
		}
		if len(pending) == 0 || len(pending) != len(questionIDs) {
			return util.ErrCommitSetMismatch
		}
		supplied := make(map[uint]struct{}, len(questionIDs))
		for _, id := range questionIDs {
			supplied[id] = struct{}{}
		}
		if len(supplied) != len(pending) {
			return util.ErrCommitSetMismatch
		}
		for _, link := range pending {
			if _, ok := supplied[link.QuestionID]; !ok {
				return util.ErrCommitSetMismatch
			}
		}

		updated, err := s.LessonQuestionRepo.CommitLinks(tx, lessonID, questionIDs)
		if err != nil {
			return err
		}
		if updated != int64(len(questionIDs)) {
			return util.ErrCommitSetMismatch
		}
		return nil
	})
}

// Questions 按固定顺序取课时习题。教师和管理员在草稿态也能看到
// 全部关联，其他人只能看到已发布的。
func (s *PublishingService) Questions(principal *model.Principal, lessonID uint) ([]model.Question, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if CanManageCourse(principal, course) {
		return s.LessonQuestionRepo.OrderedQuestions(lessonID, false)
	}
	if !lesson.HasQuestions {
		return nil, util.ErrLessonNotPublished
	}
	return s.LessonQuestionRepo.OrderedQuestions(lessonID, true)
}

// Links 课时的原始关联列表，含发布标记与顺序号。
func (s *PublishingService) Links(principal *model.Principal, lessonID uint) ([]model.LessonQuestionLink, error) {
	if _, err := s.authorize(principal, lessonID); err != nil {
		return nil, err
	}
	return s.LessonQuestionRepo.ListLinks(lessonID)
}
