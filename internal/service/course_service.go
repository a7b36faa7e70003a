package service

import (
	"errors"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
	Progress       *ProgressService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	progress *ProgressService,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
		Progress:       progress,
	}
}

// Catalog lists published courses. Anonymous visitors browse the full
// catalog; signed-in users without a paid subscription are held to beginner
// content. Enrollment applies the paid and level gates either way.
func (s *CourseService) Catalog(user *model.User, page, limit int, filter repository.CourseFilter) ([]model.Course, int64, error) {
	if user != nil && !user.IsPremium() {
		filter.Level = model.Beginner
	}
	return s.CourseRepo.ListPublished(page, limit, filter)
}

type CourseDetail struct {
	Course     *model.Course           `json:"course"`
	Lessons    []model.Lesson          `json:"lessons"`
	Enrollment *model.CourseEnrollment `json:"enrollment"`
}

// Detail returns a course with its published lessons and, when the user is
// enrolled, their enrollment row.
func (s *CourseService) Detail(slug string, userID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	lessons, err := s.LessonRepo.ListByCourse(course.ID, true)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{Course: course, Lessons: lessons}
	if userID != 0 {
		if enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, course.ID); err == nil {
			detail.Enrollment = enrollment
		}
	}
	return detail, nil
}

// FindCourseBySlug resolves a published course by its catalog slug.
func (s *CourseService) FindCourseBySlug(slug string) (*model.Course, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// Enroll joins the user to a course. Enrolling twice is harmless; the boolean
// reports whether a new enrollment was created. Paid and level-gated courses
// check access before enrolling.
func (s *CourseService) Enroll(userID, courseID uint) (*model.CourseEnrollment, bool, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, false, err
	}
	if !course.IsPublished {
		return nil, false, util.ErrCourseNotFound
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, false, err
	}
	if !user.CanAccessLevel(course.Level) {
		return nil, false, util.ErrPermissionDenied
	}
	if course.IsPaid && !user.IsPremium() {
		return nil, false, util.ErrPermissionDenied
	}

	return s.EnrollmentRepo.GetOrCreate(userID, courseID)
}

// MyCourses lists the user's enrollments with course data preloaded.
func (s *CourseService) MyCourses(userID uint) ([]model.CourseEnrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

// LessonDetail returns a lesson with its vocabulary; access requires an
// enrollment in the parent course. Opening the lesson counts as a visit.
func (s *CourseService) LessonDetail(userID uint, courseSlug, lessonSlug string) (*model.Lesson, []model.Vocabulary, *model.LessonProgress, error) {
	course, err := s.CourseRepo.FindBySlug(courseSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, nil, nil, err
	}

	lesson, err := s.LessonRepo.FindBySlug(course.ID, lessonSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, nil, nil, err
	}

	vocabulary, err := s.LessonRepo.ListVocabulary(lesson.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	progress, err := s.Progress.VisitLesson(userID, lesson.ID)
	if errors.Is(err, util.ErrNotEnrolled) {
		return nil, nil, nil, util.ErrEnrollmentRequired
	}
	if err != nil {
		return nil, nil, nil, err
	}
	return lesson, vocabulary, progress, nil
}

// Admin CRUD. Slugs derive from the title when left empty.

func (s *CourseService) CreateCourse(course *model.Course) error {
	if course.Slug == "" {
		course.Slug = util.Slugify(course.Title)
	}
	return s.CourseRepo.Create(course)
}

func (s *CourseService) UpdateCourse(course *model.Course) error {
	return s.CourseRepo.Update(course)
}

func (s *CourseService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(id)
}

func (s *CourseService) FindCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) CreateLesson(lesson *model.Lesson) error {
	if _, err := s.CourseRepo.FindByID(lesson.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if lesson.Slug == "" {
		lesson.Slug = util.Slugify(lesson.Title)
	}
	return s.LessonRepo.Create(lesson)
}

func (s *CourseService) UpdateLesson(lesson *model.Lesson) error {
	return s.LessonRepo.Update(lesson)
}

func (s *CourseService) DeleteLesson(id uint) error {
	if _, err := s.LessonRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	return s.LessonRepo.Delete(id)
}

func (s *CourseService) FindLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

func (s *CourseService) FindVocabulary(id uint) (*model.Vocabulary, error) {
	vocab, err := s.LessonRepo.FindVocabulary(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrVocabularyNotFound
	}
	return vocab, err
}

func (s *CourseService) UpdateVocabulary(vocab *model.Vocabulary) error {
	return s.LessonRepo.UpdateVocabulary(vocab)
}
