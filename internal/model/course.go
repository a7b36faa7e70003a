package model

// swagger:model Course
type Course struct {
	BaseModel
	Title             string      `gorm:"size:255;not null" json:"title"`
	Slug              string      `gorm:"size:255;unique;not null" json:"slug"`
	Description       string      `gorm:"type:text" json:"description"`
	Level             CourseLevel `gorm:"size:20;not null;index" json:"level"`
	Thumbnail         string      `gorm:"size:255" json:"thumbnail"`
	IsPaid            bool        `gorm:"default:false" json:"isPaid"`
	Price             float64     `gorm:"default:0" json:"price"`
	EstimatedDuration int         `json:"estimatedDuration"` // minutes
	CreatedByID       *uint       `gorm:"index" json:"createdById"`
	IsPublished       bool        `gorm:"default:true" json:"isPublished"`

	Lessons []Lesson `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID       uint   `gorm:"index;not null;uniqueIndex:idx_course_lesson_slug" json:"courseId"`
	Title          string `gorm:"size:255;not null" json:"title"`
	Slug           string `gorm:"size:255;not null;uniqueIndex:idx_course_lesson_slug" json:"slug"`
	Description    string `gorm:"type:text" json:"description"`
	ContentEnglish string `gorm:"type:text" json:"contentEnglish"`
	ContentDari    string `gorm:"type:text" json:"contentDari"` // auto-translated when left empty
	AudioFile      string `gorm:"size:255" json:"audioFile"`
	Image          string `gorm:"size:255" json:"image"`
	Order          int    `gorm:"default:0;index" json:"order"`
	EstimatedTime  int    `json:"estimatedTime"` // minutes
	IsPublished    bool   `gorm:"default:false" json:"isPublished"`

	Vocabulary []Vocabulary `gorm:"constraint:OnDelete:CASCADE" json:"vocabulary,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type PartOfSpeech string

const (
	Noun      PartOfSpeech = "noun"
	Verb      PartOfSpeech = "verb"
	Adjective PartOfSpeech = "adjective"
	OtherPart PartOfSpeech = "other"
)

// swagger:model Vocabulary
type Vocabulary struct {
	BaseModel
	LessonID       uint         `gorm:"index;not null" json:"lessonId"`
	EnglishWord    string       `gorm:"size:255;not null" json:"englishWord"`
	DariWord       string       `gorm:"size:255;not null" json:"dariWord"`
	ExampleEnglish string       `gorm:"type:text" json:"exampleEnglish"`
	ExampleDari    string       `gorm:"type:text" json:"exampleDari"`
	Pronunciation  string       `gorm:"size:255" json:"pronunciation"` // IPA
	Audio          string       `gorm:"size:255" json:"audio"`
	Image          string       `gorm:"size:255" json:"image"`
	PartOfSpeech   PartOfSpeech `gorm:"size:20;default:'noun'" json:"partOfSpeech"`
	Order          int          `gorm:"default:0" json:"order"`
}

func (Vocabulary) TableName() string {
	return "vocabulary"
}
