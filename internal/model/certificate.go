package model

import "time"

// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID            uint      `gorm:"not null;uniqueIndex:idx_user_course_cert" json:"userId"`
	CourseID          uint      `gorm:"not null;uniqueIndex:idx_user_course_cert" json:"courseId"`
	CertificateNumber string    `gorm:"size:255;unique;not null" json:"certificateNumber"`
	VerificationCode  string    `gorm:"size:50;unique;not null" json:"verificationCode"`
	Score             int       `gorm:"default:100" json:"score"`
	PDFFile           string    `gorm:"size:255" json:"pdfFile"`
	IssueDate         time.Time `json:"issueDate"`

	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}
