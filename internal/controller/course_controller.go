package controller

import (
	"errors"
	"net/http"
	"strconv"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/service"
	"akaraka_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseController struct {
	CourseService   *service.CourseService
	ProgressService *service.ProgressService
	AuthService     *service.AuthService
}

func NewCourseController(
	courseService *service.CourseService,
	progressService *service.ProgressService,
	authService *service.AuthService,
) *CourseController {
	return &CourseController{
		CourseService:   courseService,
		ProgressService: progressService,
		AuthService:     authService,
	}
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// List godoc
// @Summary Course catalog
// @Description Published courses; anonymous and free users see beginner content
// @Tags courses
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param level query string false "Level filter" Enums(beginner, intermediate, advanced)
// @Param free query bool false "Free courses only"
// @Param search query string false "Title or description search"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	filter := repository.CourseFilter{
		Level:    model.CourseLevel(ctx.Query("level")),
		FreeOnly: ctx.Query("free") == "true",
		Search:   ctx.Query("search"),
	}

	var user *model.User
	if claims := util.GetUserFromContext(ctx); claims != nil {
		if u, err := c.AuthService.CurrentUser(claims.UserID); err == nil {
			user = u
		}
	}

	courses, total, err := c.CourseService.Catalog(user, page, limit, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Detail godoc
// @Summary Course detail
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/{slug} [get]
func (c *CourseController) Detail(ctx *gin.Context) {
	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	detail, err := c.CourseService.Detail(ctx.Param("slug"), userID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 201 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{slug}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	course, err := c.CourseService.FindCourseBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	enrollment, created, err := c.CourseService.Enroll(claims.UserID, course.ID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Error(ctx, http.StatusForbidden, "This course requires a higher level or a subscription")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if !created {
		util.Notice(ctx, "Already enrolled", enrollment)
		return
	}
	util.Created(ctx, enrollment)
}

// MyCourses godoc
// @Summary My enrollments
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/courses/mine [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.CourseService.MyCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// LessonDetail godoc
// @Summary Lesson content
// @Description Lesson body with vocabulary; opening the lesson counts a visit
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param lessonSlug path string true "Lesson slug"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{slug}/lessons/{lessonSlug} [get]
func (c *CourseController) LessonDetail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lesson, vocabulary, progress, err := c.CourseService.LessonDetail(
		claims.UserID, ctx.Param("slug"), ctx.Param("lessonSlug"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrEnrollmentRequired):
			util.Error(ctx, http.StatusForbidden, "You must enroll to access this course")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"lesson":     lesson,
		"vocabulary": vocabulary,
		"progress":   progress,
	})
}

// CompleteLesson godoc
// @Summary Mark a lesson complete
// @Description First completion credits XP and advances the streak
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	lessonID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	progress, completedNow, err := c.ProgressService.CompleteLesson(claims.UserID, uint(lessonID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotEnrolled):
			util.Error(ctx, http.StatusForbidden, "Enroll in the course to complete its lessons")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if !completedNow {
		util.Notice(ctx, "Lesson already completed", progress)
		return
	}
	util.Success(ctx, progress)
}

// LessonProgress godoc
// @Summary My progress on a lesson
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/progress [get]
func (c *CourseController) LessonProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	lessonID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	progress, err := c.ProgressService.LessonStatus(claims.UserID, uint(lessonID))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
