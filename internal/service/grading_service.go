package service

import (
	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/internal/util"
)

// GradingService 对已发布课时的整卷作答判分。
// 每个学生每个课时只判一次，重复提交不覆盖已有成绩。
type GradingService struct {
	LessonRepo         *repository.LessonRepository
	CourseRepo         *repository.CourseRepository
	EnrollmentRepo     *repository.EnrollmentRepository
	LessonQuestionRepo *repository.LessonQuestionRepository
	ScoreRepo          *repository.ScoreRepository
	SubmissionRepo     *repository.SubmissionRepository
}

func NewGradingService(
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	lessonQuestionRepo *repository.LessonQuestionRepository,
	scoreRepo *repository.ScoreRepository,
	submissionRepo *repository.SubmissionRepository,
) *GradingService {
	return &GradingService{
		LessonRepo:         lessonRepo,
		CourseRepo:         courseRepo,
		EnrollmentRepo:     enrollmentRepo,
		LessonQuestionRepo: lessonQuestionRepo,
		ScoreRepo:          scoreRepo,
		SubmissionRepo:     submissionRepo,
	}
}

// Submit 提交整卷作答并判分。answers 按课时习题的固定顺序对齐，
// 长度必须与已发布习题数一致。答案与标准答案逐题精确比对，
// 得分为 正确数*100/题数。成绩与逐题记录同一事务落库，
// 并发重复提交由成绩表唯一索引裁决，仅先到者生效。
func (s *GradingService) Submit(principal *model.Principal, lessonID uint, answers []string) (*model.Score, error) {
	if !HasRole(principal, model.Student) {
		return nil, util.ErrPermissionDenied
	}
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.HasQuestions {
		return nil, util.ErrLessonNotPublished
	}
	enrolled, err := s.EnrollmentRepo.Exists(principal.ID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}
	scored, err := s.ScoreRepo.Exists(principal.ID, lessonID)
	if err != nil {
		return nil, err
	}
	if scored {
		return nil, util.ErrAlreadySubmitted
	}

	questions, err := s.LessonQuestionRepo.OrderedQuestions(lessonID, true)
	if err != nil {
		return nil, err
	}
	if len(answers) != len(questions) || len(questions) == 0 {
		return nil, util.ErrAnswerCountMismatch
	}

	rightNum := 0
	records := make([]model.SubmissionRecord, 0, len(questions))
	for i, q := range questions {
		correct := answers[i] == q.Answer
		if correct {
			rightNum++
		}
		records = append(records, model.SubmissionRecord{
			StudentID:      principal.ID,
			LessonID:       lessonID,
			QuestionID:     q.ID,
			SelectedAnswer: answers[i],
			IsCorrect:      correct,
		})
	}

	score := &model.Score{
		StudentID: principal.ID,
		LessonID:  lessonID,
		Value:     float64(rightNum) * 100 / float64(len(questions)),
	}
	if err := s.ScoreRepo.SaveGraded(score, records); err != nil {
		return nil, err
	}
	return score, nil
}

// SubmissionDetail 一条作答记录及对应习题。
type SubmissionDetail struct {
	Record   model.SubmissionRecord `json:"record"`
	Question *model.Question        `json:"question"`
}

// StudentRecords 某学生在某课时的逐题作答记录。
// 学生本人、任课教师或管理员可查。
func (s *GradingService) StudentRecords(principal *model.Principal, lessonID, studentID uint) ([]SubmissionDetail, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !CanViewStudent(principal, studentID, course) {
		return nil, util.ErrPermissionDenied
	}
	records, err := s.SubmissionRepo.ListByStudentAndLesson(studentID, lessonID)
	if err != nil {
		return nil, err
	}
	return s.attachQuestions(lessonID, records)
}

// LessonRecords 某课时全部学生的作答记录。任课教师或管理员可查。
func (s *GradingService) LessonRecords(principal *model.Principal, lessonID uint) ([]SubmissionDetail, error) {
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
	records, err := s.SubmissionRepo.ListByLesson(lessonID)
	if err != nil {
		return nil, err
	}
	return s.attachQuestions(lessonID, records)
}

func (s *GradingService) attachQuestions(lessonID uint, records []model.SubmissionRecord) ([]SubmissionDetail, error) {
	questions, err := s.LessonQuestionRepo.OrderedQuestions(lessonID, true)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}
	details := make([]SubmissionDetail, 0, len(records))
	for _, r := range records {
		details = append(details, SubmissionDetail{
			Record:   r,
			Question: byID[r.QuestionID],
		})
	}
	return details, nil
}
