package model

type ExerciseKind string

const (
	KindChoice    ExerciseKind = "choice"
	KindMatching  ExerciseKind = "matching"
	KindTyping    ExerciseKind = "typing"
	KindListening ExerciseKind = "listening"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// swagger:model Exercise
type Exercise struct {
	BaseModel
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Kind        ExerciseKind `gorm:"size:20;not null;index" json:"kind"`
	Difficulty  Difficulty   `gorm:"size:20;default:'easy'" json:"difficulty"`
	XPReward    int          `gorm:"default:5" json:"xpReward"`
	IsPublished bool         `gorm:"default:true" json:"isPublished"`

	// Listening-kind extras; empty for other kinds.
	AudioFile         string `gorm:"size:255" json:"audioFile,omitempty"`
	TranscriptEnglish string `gorm:"type:text" json:"transcriptEnglish,omitempty"`
	TranscriptDari    string `gorm:"type:text" json:"transcriptDari,omitempty"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// ExerciseLesson attaches an exercise to a lesson at a position.
type ExerciseLesson struct {
	BaseModel
	ExerciseID uint `gorm:"not null;uniqueIndex:idx_exercise_lesson" json:"exerciseId"`
	LessonID   uint `gorm:"not null;uniqueIndex:idx_exercise_lesson" json:"lessonId"`
	Order      int  `gorm:"default:0" json:"order"`
	IsRequired bool `gorm:"default:true" json:"isRequired"`

	Exercise Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
}

func (ExerciseLesson) TableName() string {
	return "exercise_lessons"
}

// swagger:model ChoiceQuestion
type ChoiceQuestion struct {
	BaseModel
	ExerciseID      uint   `gorm:"index;not null" json:"exerciseId"`
	QuestionEnglish string `gorm:"type:text;not null" json:"questionEnglish"`
	QuestionDari    string `gorm:"type:text" json:"questionDari"`
	Audio           string `gorm:"size:255" json:"audio"`
	Explanation     string `gorm:"type:text" json:"explanation"`
	Order           int    `gorm:"default:0" json:"order"`

	Options []ChoiceOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (ChoiceQuestion) TableName() string {
	return "choice_questions"
}

type ChoiceOption struct {
	BaseModel
	QuestionID  uint   `gorm:"index;not null" json:"questionId"`
	TextEnglish string `gorm:"size:500;not null" json:"textEnglish"`
	TextDari    string `gorm:"size:500" json:"textDari"`
	IsCorrect   bool   `gorm:"default:false" json:"-"`
	Order       int    `gorm:"default:0" json:"order"`
}

func (ChoiceOption) TableName() string {
	return "choice_options"
}

// MatchingPair holds one left/right pair; Order is the canonical position the
// grader checks submissions against.
type MatchingPair struct {
	BaseModel
	ExerciseID   uint   `gorm:"index;not null" json:"exerciseId"`
	LeftEnglish  string `gorm:"size:500;not null" json:"leftEnglish"`
	LeftDari     string `gorm:"size:500" json:"leftDari"`
	RightEnglish string `gorm:"size:500;not null" json:"rightEnglish"`
	RightDari    string `gorm:"size:500" json:"rightDari"`
	Order        int    `gorm:"default:0" json:"order"`
}

func (MatchingPair) TableName() string {
	return "matching_pairs"
}

type TypingPrompt struct {
	BaseModel
	ExerciseID      uint   `gorm:"index;not null" json:"exerciseId"`
	SentenceEnglish string `gorm:"type:text;not null" json:"sentenceEnglish"`
	SentenceDari    string `gorm:"type:text" json:"sentenceDari"`
	CorrectAnswer   string `gorm:"size:500;not null" json:"-"`
	Audio           string `gorm:"size:255" json:"audio"`
	Order           int    `gorm:"default:0" json:"order"`
}

func (TypingPrompt) TableName() string {
	return "typing_prompts"
}

// swagger:model ListeningQuestion
type ListeningQuestion struct {
	BaseModel
	ExerciseID      uint   `gorm:"index;not null" json:"exerciseId"`
	QuestionEnglish string `gorm:"type:text;not null" json:"questionEnglish"`
	QuestionDari    string `gorm:"type:text" json:"questionDari"`
	Order           int    `gorm:"default:0" json:"order"`

	Options []ListeningOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (ListeningQuestion) TableName() string {
	return "listening_questions"
}

type ListeningOption struct {
	BaseModel
	QuestionID  uint   `gorm:"index;not null" json:"questionId"`
	TextEnglish string `gorm:"size:500;not null" json:"textEnglish"`
	TextDari    string `gorm:"size:500" json:"textDari"`
	IsCorrect   bool   `gorm:"default:false" json:"-"`
	Order       int    `gorm:"default:0" json:"order"`
}

func (ListeningOption) TableName() string {
	return "listening_options"
}
