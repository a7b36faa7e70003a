package repository

import (
	"akaraka_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) List(postType model.PostType, page, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.DB.Model(&model.Post{}).Where("is_published = ?", true)
	if postType != "" {
		query = query.Where("post_type = ?", postType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order("is_pinned DESC, is_featured DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").First(&post, id).Error
	return &post, err
}

func (r *PostRepository) FindBySlug(slug string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Where("slug = ?", slug).First(&post).Error
	return &post, err
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *PostRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Post{}, id).Error
}

func (r *PostRepository) IncrementViews(id uint) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		Update("views_count", gorm.Expr("views_count + 1")).
		Error
}

// ToggleLike adds or removes the (post, user) like row and keeps the
// denormalized counter in step. Returns true when the post is liked after the
// call.
func (r *PostRepository) ToggleLike(postID, userID uint) (bool, error) {
	var like model.PostLike
	err := r.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err == nil {
		return false, r.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Delete(&like).Error; err != nil {
				return err
			}
			return tx.Model(&model.Post{}).
				Where("id = ?", postID).
				Update("likes_count", gorm.Expr("likes_count - 1")).
				Error
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	return true, r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", postID).
			Update("likes_count", gorm.Expr("likes_count + 1")).
			Error
	})
}

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) ListByPost(postID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Preload("Author").
		Where("post_id = ? AND is_approved = ?", postID, true).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.First(&comment, id).Error
	return &comment, err
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Comment{}, id).Error
}

type TestimonyRepository struct {
	DB *gorm.DB
}

func NewTestimonyRepository(db *gorm.DB) *TestimonyRepository {
	return &TestimonyRepository{DB: db}
}

func (r *TestimonyRepository) ListPublished(page, limit int) ([]model.Testimony, int64, error) {
	var testimonies []model.Testimony
	var total int64

	query := r.DB.Model(&model.Testimony{}).Where("is_published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&testimonies).Error
	return testimonies, total, err
}

func (r *TestimonyRepository) Create(testimony *model.Testimony) error {
	return r.DB.Create(testimony).Error
}

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) ListPending() ([]model.Report, error) {
	var reports []model.Report
	err := r.DB.Where("status = ?", model.ReportPending).Order("created_at DESC").Find(&reports).Error
	return reports, err
}
