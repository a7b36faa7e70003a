package model

import "time"

// ExerciseResponse is an append-only record of one graded attempt. Score and
// XPEarned are derived once at grading time and never recomputed.
// swagger:model ExerciseResponse
type ExerciseResponse struct {
	BaseModel
	UserID       uint      `gorm:"index;not null" json:"userId"`
	ExerciseID   uint      `gorm:"index;not null" json:"exerciseId"`
	LessonID     uint      `gorm:"index;not null" json:"lessonId"`
	ResponseData string    `gorm:"type:text" json:"responseData"` // raw submission as JSON
	Score        int       `gorm:"default:0" json:"score"`
	MaxScore     int       `gorm:"default:100" json:"maxScore"`
	Passed       bool      `gorm:"default:false" json:"passed"` // score >= 80
	XPEarned     int       `gorm:"default:0" json:"xpEarned"`
	CompletedAt  time.Time `json:"completedAt"`
}

func (ExerciseResponse) TableName() string {
	return "exercise_responses"
}
