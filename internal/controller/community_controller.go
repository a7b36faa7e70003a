package controller

import (
	"errors"
	"fmt"
	"strconv"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/service"
	"akaraka_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// ListPosts godoc
// @Summary Community posts
// @Tags community
// @Produce json
// @Param type query string false "Post type" Enums(question, discussion, resource, testimonial)
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/community/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	page, limit := pagination(ctx)
	posts, total, err := c.CommunityService.ListPosts(model.PostType(ctx.Query("type")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// GetPost godoc
// @Summary Post with comments
// @Description Counts at most one view per reader per day
// @Tags community
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/community/posts/{slug} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	viewerKey := ctx.ClientIP()
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerKey = fmt.Sprintf("u%d", claims.UserID)
	}

	post, comments, err := c.CommunityService.GetPost(ctx.Request.Context(), ctx.Param("slug"), viewerKey)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"post": post, "comments": comments})
}

// CreatePost godoc
// @Summary Create a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreatePostInput true "Post"
// @Success 201 {object} util.Response
// @Router /api/community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreatePostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.CreatePost(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Description Authors delete their own posts; admins delete any
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/community/posts/{id} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	postID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	if err := c.CommunityService.DeletePost(uint(postID), claims.UserID, claims.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Success 200 {object} util.Response
// @Router /api/community/posts/{id}/like [post]
func (c *CommunityController) ToggleLike(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	postID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	liked, err := c.CommunityService.ToggleLike(uint(postID), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"liked": liked})
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Param body body service.CreateCommentInput true "Comment"
// @Success 201 {object} util.Response
// @Router /api/community/posts/{id}/comments [post]
func (c *CommunityController) CreateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	postID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	var input service.CreateCommentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommunityService.CreateComment(uint(postID), claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// ListTestimonies godoc
// @Summary Published testimonies
// @Tags community
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/community/testimonies [get]
func (c *CommunityController) ListTestimonies(ctx *gin.Context) {
	page, limit := pagination(ctx)
	testimonies, total, err := c.CommunityService.ListTestimonies(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: testimonies, Total: total, Page: page, Limit: limit})
}

// CreateTestimony godoc
// @Summary Share a testimony
// @Description Held for moderation before publishing
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateTestimonyInput true "Testimony"
// @Success 201 {object} util.Response
// @Router /api/community/testimonies [post]
func (c *CommunityController) CreateTestimony(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateTestimonyInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	testimony, err := c.CommunityService.CreateTestimony(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, testimony)
}

// CreateReport godoc
// @Summary Report a post or comment
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateReportInput true "Report"
// @Success 201 {object} util.Response
// @Router /api/community/reports [post]
func (c *CommunityController) CreateReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CreateReportInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CommunityService.CreateReport(claims.UserID, input); err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, nil)
}
