package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrVocabularyNotFound   = errors.New("vocabulary item not found")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseKindMismatch = errors.New("exercise kind does not match endpoint")
	ErrNotEnrolled          = errors.New("not enrolled in this course")
	ErrCourseNotCompleted   = errors.New("course not completed yet")
	ErrCertificateNotFound  = errors.New("certificate not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrEnrollmentRequired   = errors.New("you must enroll to access this course")
)
