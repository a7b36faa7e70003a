package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// View dedup: one counted view per (post, viewer) per day.
const viewDedupTTL = 24 * time.Hour

type CommunityService struct {
	PostRepo      *repository.PostRepository
	CommentRepo   *repository.CommentRepository
	TestimonyRepo *repository.TestimonyRepository
	ReportRepo    *repository.ReportRepository
	Redis         *redis.Client
}

func NewCommunityService(
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	testimonyRepo *repository.TestimonyRepository,
	reportRepo *repository.ReportRepository,
	rdb *redis.Client,
) *CommunityService {
	return &CommunityService{
		PostRepo:      postRepo,
		CommentRepo:   commentRepo,
		TestimonyRepo: testimonyRepo,
		ReportRepo:    reportRepo,
		Redis:         rdb,
	}
}

func (s *CommunityService) ListPosts(postType model.PostType, page, limit int) ([]model.Post, int64, error) {
	return s.PostRepo.List(postType, page, limit)
}

// GetPost fetches a post by slug and counts the view. The viewer key is the
// user id for signed-in readers, the client IP otherwise; redis SET NX
// deduplicates repeat views within a day. Without redis every view counts.
func (s *CommunityService) GetPost(ctx context.Context, slug, viewerKey string) (*model.Post, []model.Comment, error) {
	post, err := s.PostRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrPostNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	countView := true
	if s.Redis != nil && viewerKey != "" {
		key := fmt.Sprintf("post:view:%d:%s", post.ID, viewerKey)
		fresh, err := s.Redis.SetNX(ctx, key, 1, viewDedupTTL).Result()
		if err == nil {
			countView = fresh
		}
	}
	if countView {
		if err := s.PostRepo.IncrementViews(post.ID); err == nil {
			post.ViewsCount++
		}
	}

	comments, err := s.CommentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

type CreatePostInput struct {
	Title    string         `json:"title" binding:"required,min=3,max=500"`
	Content  string         `json:"content" binding:"required"`
	PostType model.PostType `json:"postType" binding:"omitempty,oneof=question discussion resource testimonial"`
	Tags     string         `json:"tags" binding:"omitempty,max=500"`
}

func (s *CommunityService) CreatePost(authorID uint, input CreatePostInput) (*model.Post, error) {
	postType := input.PostType
	if postType == "" {
		postType = model.PostDiscussion
	}
	post := &model.Post{
		AuthorID:    authorID,
		Title:       input.Title,
		Slug:        util.Slugify(input.Title) + "-" + model.GenerateUUID()[:8],
		Content:     input.Content,
		PostType:    postType,
		Tags:        input.Tags,
		IsPublished: true,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) DeletePost(postID, userID uint, role model.UserRole) error {
	post, err := s.PostRepo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if post.AuthorID != userID && role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.PostRepo.Delete(postID)
}

// ToggleLike flips the user's like on a post; returns the resulting state.
func (s *CommunityService) ToggleLike(postID, userID uint) (bool, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrPostNotFound
		}
		return false, err
	}
	return s.PostRepo.ToggleLike(postID, userID)
}

type CreateCommentInput struct {
	Content  string `json:"content" binding:"required,min=1"`
	ParentID *uint  `json:"parentId"`
}

func (s *CommunityService) CreateComment(postID, authorID uint, input CreateCommentInput) (*model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := s.CommentRepo.FindByID(*input.ParentID)
		if err != nil || parent.PostID != postID {
			input.ParentID = nil
		}
	}

	comment := &model.Comment{
		PostID:     postID,
		AuthorID:   authorID,
		ParentID:   input.ParentID,
		Content:    input.Content,
		IsApproved: true,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommunityService) ListTestimonies(page, limit int) ([]model.Testimony, int64, error) {
	return s.TestimonyRepo.ListPublished(page, limit)
}

type CreateTestimonyInput struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Content     string `json:"content" binding:"required,min=10"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Achievement string `json:"achievement" binding:"omitempty,max=255"`
}

// CreateTestimony stores a testimony pending moderation; it shows publicly
// only after an admin publishes it.
func (s *CommunityService) CreateTestimony(userID uint, input CreateTestimonyInput) (*model.Testimony, error) {
	testimony := &model.Testimony{
		UserID:      userID,
		Title:       input.Title,
		Content:     input.Content,
		Rating:      input.Rating,
		Achievement: input.Achievement,
	}
	if err := s.TestimonyRepo.Create(testimony); err != nil {
		return nil, err
	}
	return testimony, nil
}

type CreateReportInput struct {
	PostID      *uint            `json:"postId"`
	CommentID   *uint            `json:"commentId"`
	ReportType  model.ReportType `json:"reportType" binding:"required,oneof=spam harassment misinformation offensive other"`
	Description string           `json:"description" binding:"omitempty,max=2000"`
}

func (s *CommunityService) CreateReport(reporterID uint, input CreateReportInput) error {
	if input.PostID == nil && input.CommentID == nil {
		return util.ErrPostNotFound
	}
	if input.PostID != nil {
		if _, err := s.PostRepo.FindByID(*input.PostID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrPostNotFound
			}
			return err
		}
	}
	return s.ReportRepo.Create(&model.Report{
		ReporterID:        reporterID,
		ReportedPostID:    input.PostID,
		ReportedCommentID: input.CommentID,
		ReportType:        input.ReportType,
		Description:       input.Description,
		Status:            model.ReportPending,
	})
}

func (s *CommunityService) PendingReports() ([]model.Report, error) {
	return s.ReportRepo.ListPending()
}
