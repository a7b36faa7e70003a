package controller

import (
	"errors"
	"net/http"
	"strconv"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/service"
	"akaraka_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// List godoc
// @Summary Published exercises
// @Tags exercises
// @Produce json
// @Param kind query string false "Kind filter" Enums(choice, matching, typing, listening)
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exercises [get]
func (c *ExerciseController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	exercises, total, err := c.ExerciseService.List(model.ExerciseKind(ctx.Query("kind")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: exercises, Total: total, Page: page, Limit: limit})
}

// ForLesson godoc
// @Summary Exercises attached to a lesson
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/exercises [get]
func (c *ExerciseController) ForLesson(ctx *gin.Context) {
	lessonID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	links, err := c.ExerciseService.ForLesson(uint(lessonID))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, links)
}

// Detail godoc
// @Summary Exercise with its questions
// @Description Questions without the answer key
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exercises/{id} [get]
func (c *ExerciseController) Detail(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exercise id")
		return
	}

	exercise, questions, err := c.ExerciseService.Detail(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"exercise": exercise, "questions": questions})
}

type choiceSubmitRequest struct {
	LessonID uint                      `json:"lessonId" binding:"required"`
	Answers  service.ChoiceSubmission  `json:"answers" binding:"required"`
}

// SubmitChoice godoc
// @Summary Submit a multiple-choice attempt
// @Description Grades the attempt, records it, and credits XP by score band
// @Tags exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Param body body choiceSubmitRequest true "Answers keyed by question id"
// @Success 200 {object} util.Response{data=service.GradeResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exercises/{id}/submit/choice [post]
func (c *ExerciseController) SubmitChoice(ctx *gin.Context) {
	claims, exerciseID, ok := c.submitPrelude(ctx)
	if !ok {
		return
	}

	var req choiceSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExerciseService.SubmitChoice(claims.UserID, exerciseID, req.LessonID, req.Answers)
	c.respond(ctx, result, err)
}

type matchingSubmitRequest struct {
	LessonID uint                       `json:"lessonId" binding:"required"`
	Order    service.MatchingSubmission `json:"order" binding:"required"`
}

// SubmitMatching godoc
// @Summary Submit a matching attempt
// @Tags exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Param body body matchingSubmitRequest true "Pair ids in submitted order"
// @Success 200 {object} util.Response{data=service.GradeResult}
// @Router /api/exercises/{id}/submit/matching [post]
func (c *ExerciseController) SubmitMatching(ctx *gin.Context) {
	claims, exerciseID, ok := c.submitPrelude(ctx)
	if !ok {
		return
	}

	var req matchingSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExerciseService.SubmitMatching(claims.UserID, exerciseID, req.LessonID, req.Order)
	c.respond(ctx, result, err)
}

type typingSubmitRequest struct {
	LessonID uint                     `json:"lessonId" binding:"required"`
	Answers  service.TypingSubmission `json:"answers" binding:"required"`
}

// SubmitTyping godoc
// @Summary Submit a typing attempt
// @Description Answers compare case-insensitively, surrounding whitespace ignored
// @Tags exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Param body body typingSubmitRequest true "Answers keyed by prompt id"
// @Success 200 {object} util.Response{data=service.GradeResult}
// @Router /api/exercises/{id}/submit/typing [post]
func (c *ExerciseController) SubmitTyping(ctx *gin.Context) {
	claims, exerciseID, ok := c.submitPrelude(ctx)
	if !ok {
		return
	}

	var req typingSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExerciseService.SubmitTyping(claims.UserID, exerciseID, req.LessonID, req.Answers)
	c.respond(ctx, result, err)
}

type listeningSubmitRequest struct {
	LessonID uint                        `json:"lessonId" binding:"required"`
	Answers  service.ListeningSubmission `json:"answers" binding:"required"`
}

// SubmitListening godoc
// @Summary Submit a listening attempt
// @Tags exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Param body body listeningSubmitRequest true "Answers keyed by question id"
// @Success 200 {object} util.Response{data=service.GradeResult}
// @Router /api/exercises/{id}/submit/listening [post]
func (c *ExerciseController) SubmitListening(ctx *gin.Context) {
	claims, exerciseID, ok := c.submitPrelude(ctx)
	if !ok {
		return
	}

	var req listeningSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExerciseService.SubmitListening(claims.UserID, exerciseID, req.LessonID, req.Answers)
	c.respond(ctx, result, err)
}

// History godoc
// @Summary My graded attempts
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exercises/history [get]
func (c *ExerciseController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	responses, total, err := c.ExerciseService.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: responses, Total: total, Page: page, Limit: limit})
}

func (c *ExerciseController) submitPrelude(ctx *gin.Context) (*util.Claims, uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, 0, false
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exercise id")
		return nil, 0, false
	}
	return claims, uint(id), true
}

func (c *ExerciseController) respond(ctx *gin.Context, result *service.GradeResult, err error) {
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExerciseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrExerciseKindMismatch):
			util.Error(ctx, http.StatusBadRequest, "Submission does not match this exercise's kind")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
