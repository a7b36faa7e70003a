package model

type PostType string

const (
	PostQuestion    PostType = "question"
	PostDiscussion  PostType = "discussion"
	PostResource    PostType = "resource"
	PostTestimonial PostType = "testimonial"
)

// swagger:model Post
type Post struct {
	BaseModel
	AuthorID    uint     `gorm:"index;not null" json:"authorId"`
	Title       string   `gorm:"size:500;not null" json:"title"`
	Slug        string   `gorm:"size:500;unique;not null" json:"slug"`
	Content     string   `gorm:"type:text;not null" json:"content"`
	PostType    PostType `gorm:"size:20;default:'discussion'" json:"postType"`
	Tags        string   `gorm:"size:500" json:"tags"` // comma-separated
	ViewsCount  int      `gorm:"default:0" json:"viewsCount"`
	LikesCount  int      `gorm:"default:0" json:"likesCount"`
	IsPinned    bool     `gorm:"default:false" json:"isPinned"`
	IsFeatured  bool     `gorm:"default:false" json:"isFeatured"`
	IsPublished bool     `gorm:"default:true" json:"isPublished"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

type PostLike struct {
	BaseModel
	PostID uint `gorm:"not null;uniqueIndex:idx_post_like" json:"postId"`
	UserID uint `gorm:"not null;uniqueIndex:idx_post_like" json:"userId"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

// swagger:model Comment
type Comment struct {
	BaseModel
	PostID     uint   `gorm:"index;not null" json:"postId"`
	AuthorID   uint   `gorm:"index;not null" json:"authorId"`
	Content    string `gorm:"type:text;not null" json:"content"`
	ParentID   *uint  `gorm:"index" json:"parentId"` // nested replies
	IsApproved bool   `gorm:"default:true" json:"isApproved"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// swagger:model Testimony
type Testimony struct {
	BaseModel
	UserID      uint   `gorm:"index;not null" json:"userId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Photo       string `gorm:"size:255" json:"photo"`
	Rating      int    `gorm:"not null" json:"rating"` // 1..5
	Achievement string `gorm:"size:255" json:"achievement"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Testimony) TableName() string {
	return "testimonies"
}

type ReportType string

const (
	ReportSpam           ReportType = "spam"
	ReportHarassment     ReportType = "harassment"
	ReportMisinformation ReportType = "misinformation"
	ReportOffensive      ReportType = "offensive"
	ReportOther          ReportType = "other"
)

type ReportStatus string

const (
	ReportPending       ReportStatus = "pending"
	ReportInvestigating ReportStatus = "investigating"
	ReportResolved      ReportStatus = "resolved"
	ReportDismissed     ReportStatus = "dismissed"
)

type Report struct {
	BaseModel
	ReporterID        uint         `gorm:"index;not null" json:"reporterId"`
	ReportedPostID    *uint        `gorm:"index" json:"reportedPostId"`
	ReportedCommentID *uint        `gorm:"index" json:"reportedCommentId"`
	ReportType        ReportType   `gorm:"size:20;not null" json:"reportType"`
	Description       string       `gorm:"type:text" json:"description"`
	Status            ReportStatus `gorm:"size:20;default:'pending'" json:"status"`
	ReviewedByID      *uint        `json:"reviewedById"`
	ReviewNotes       string       `gorm:"type:text" json:"reviewNotes"`
}

func (Report) TableName() string {
	return "reports"
}
