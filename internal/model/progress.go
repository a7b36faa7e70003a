package model

import "time"

// LessonProgress is created lazily the first time a user opens a lesson.
// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID         uint       `gorm:"not null;uniqueIndex:idx_user_lesson" json:"userId"`
	LessonID       uint       `gorm:"not null;uniqueIndex:idx_user_lesson" json:"lessonId"`
	IsCompleted    bool       `gorm:"default:false" json:"isCompleted"`
	CompletionTime *time.Time `json:"completionTime"`
	Attempts       int        `gorm:"default:0" json:"attempts"`
	XPEarned       int        `gorm:"default:0" json:"xpEarned"`
	LastAccessed   time.Time  `json:"lastAccessed"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// CourseEnrollment carries a denormalized progress percentage. It is
// recomputed from lesson_progress whenever a lesson progress row changes,
// not continuously, so it can briefly lag behind.
// swagger:model CourseEnrollment
type CourseEnrollment struct {
	BaseModel
	UserID             uint       `gorm:"not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID           uint       `gorm:"not null;uniqueIndex:idx_user_course" json:"courseId"`
	ProgressPercentage int        `gorm:"default:0" json:"progressPercentage"`
	IsCompleted        bool       `gorm:"default:false" json:"isCompleted"`
	CompletionDate     *time.Time `json:"completionDate"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
