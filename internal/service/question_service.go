package service

import (
	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/internal/util"
)

type QuestionService struct {
	QuestionRepo       *repository.QuestionRepository
	LessonQuestionRepo *repository.LessonQuestionRepository
	LessonRepo         *repository.LessonRepository
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	lessonQuestionRepo *repository.LessonQuestionRepository,
	lessonRepo *repository.LessonRepository,
) *QuestionService {
	return &QuestionService{
		QuestionRepo:       questionRepo,
		LessonQuestionRepo: lessonQuestionRepo,
		LessonRepo:         lessonRepo,
	}
}

// Create 教师向题库新增习题，归属出题教师本人。
func (s *QuestionService) Create(principal *model.Principal, question *model.Question) error {
	if !HasRole(principal, model.Teacher) {
		return util.ErrPermissionDenied
	}
	question.TeacherID = principal.ID
	return s.QuestionRepo.Create(question)
}

func (s *QuestionService) Get(principal *model.Principal, questionID uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(principal, question.TeacherID) && !IsAdmin(principal) {
		return nil, util.ErrPermissionDenied
	}
	return question, nil
}

// Update 修改习题。习题一旦被任何课时发布引用就不可再改，
// 学生看到的题面和判分口径必须保持一致。
func (s *QuestionService) Update(principal *model.Principal, question *model.Question) error {
	existing, err := s.QuestionRepo.FindByID(question.ID)
	if err != nil {
		return err
	}
	if !IsOwner(principal, existing.TeacherID) && !IsAdmin(principal) {
		return util.ErrPermissionDenied
	}
	committed, err := s.LessonQuestionRepo.HasCommittedLink(question.ID)
	if err != nil {
		return err
	}
	if committed {
		return util.ErrAlreadyCommitted
	}
	question.TeacherID = existing.TeacherID
	return s.QuestionRepo.Update(question)
}

// Delete 删除习题。被任何课时引用的习题不可删，需先解除关联。
func (s *QuestionService) Delete(principal *model.Principal, questionID uint) error {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return err
	}
	if !IsOwner(principal, question.TeacherID) && !IsAdmin(principal) {
		return util.ErrPermissionDenied
	}
	lessonIDs, err := s.QuestionRepo.LinkedLessonIDs(questionID)
	if err != nil {
		return err
	}
	if len(lessonIDs) > 0 {
		return util.ErrQuestionInUse
	}
	return s.QuestionRepo.Delete(questionID)
}

// ListByTeacher 某教师的题库。仅本人或管理员可查。
func (s *QuestionService) ListByTeacher(principal *model.Principal, teacherID uint) ([]model.Question, error) {
	if !IsOwner(principal, teacherID) && !IsAdmin(principal) {
		return nil, util.ErrPermissionDenied
	}
	return s.QuestionRepo.ListByTeacher(teacherID)
}

// LessonsOf 某习题被哪些课时引用。
func (s *QuestionService) LessonsOf(principal *model.Principal, questionID uint) ([]model.Lesson, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(principal, question.TeacherID) && !IsAdmin(principal) {
		return nil, util.ErrPermissionDenied
	}
	lessonIDs, err := s.QuestionRepo.LinkedLessonIDs(questionID)
	if err != nil {
		return nil, err
	}
	lessons := make([]model.Lesson, 0, len(lessonIDs))
	for _, id := range lessonIDs {
		lesson, err := s.LessonRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *lesson)
	}
	return lessons, nil
}
