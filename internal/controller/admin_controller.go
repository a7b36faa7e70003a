package controller

import (
	"errors"
	"strconv"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/service"
	"akaraka_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController groups content management: course, lesson, and exercise
// CRUD plus the media pipelines (TTS audio, machine translation).
type AdminController struct {
	CourseService      *service.CourseService
	ExerciseService    *service.ExerciseService
	CommunityService   *service.CommunityService
	StatsService       *service.StatsService
	TTSService         *service.TTSService
	TranslationService *service.TranslationService
}

func NewAdminController(
	courseService *service.CourseService,
	exerciseService *service.ExerciseService,
	communityService *service.CommunityService,
	statsService *service.StatsService,
	ttsService *service.TTSService,
	translationService *service.TranslationService,
) *AdminController {
	return &AdminController{
		CourseService:      courseService,
		ExerciseService:    exerciseService,
		CommunityService:   communityService,
		StatsService:       statsService,
		TTSService:         ttsService,
		TranslationService: translationService,
	}
}

type courseRequest struct {
	Title             string            `json:"title" binding:"required,min=3,max=255"`
	Slug              string            `json:"slug"`
	Description       string            `json:"description"`
	Level             model.CourseLevel `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	Thumbnail         string            `json:"thumbnail"`
	IsPaid            bool              `json:"isPaid"`
	Price             float64           `json:"price" binding:"omitempty,min=0"`
	EstimatedDuration int               `json:"estimatedDuration"`
	IsPublished       bool              `json:"isPublished"`
}

// CreateCourse godoc
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body courseRequest true "Course"
// @Success 201 {object} util.Response
// @Router /api/admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req courseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var createdBy *uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		createdBy = &claims.UserID
	}
	course := &model.Course{
		Title:             req.Title,
		Slug:              req.Slug,
		Description:       req.Description,
		Level:             req.Level,
		Thumbnail:         req.Thumbnail,
		IsPaid:            req.IsPaid,
		Price:             req.Price,
		EstimatedDuration: req.EstimatedDuration,
		CreatedByID:       createdBy,
		IsPublished:       req.IsPublished,
	}
	if err := c.CourseService.CreateCourse(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course id"
// @Param body body courseRequest true "Course"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [put]
func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	course, err := c.CourseService.FindCourse(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req courseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Level = req.Level
	course.Thumbnail = req.Thumbnail
	course.IsPaid = req.IsPaid
	course.Price = req.Price
	course.EstimatedDuration = req.EstimatedDuration
	course.IsPublished = req.IsPublished
	if req.Slug != "" {
		course.Slug = req.Slug
	}
	if err := c.CourseService.UpdateCourse(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course id"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	if err := c.CourseService.DeleteCourse(uint(id)); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

type lessonRequest struct {
	CourseID       uint   `json:"courseId" binding:"required"`
	Title          string `json:"title" binding:"required,min=3,max=255"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	ContentEnglish string `json:"contentEnglish"`
	ContentDari    string `json:"contentDari"`
	Image          string `json:"image"`
	Order          int    `json:"order"`
	EstimatedTime  int    `json:"estimatedTime"`
	IsPublished    bool   `json:"isPublished"`
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body lessonRequest true "Lesson"
// @Success 201 {object} util.Response
// @Router /api/admin/lessons [post]
func (c *AdminController) CreateLesson(ctx *gin.Context) {
	var req lessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson := &model.Lesson{
		CourseID:       req.CourseID,
		Title:          req.Title,
		Slug:           req.Slug,
		Description:    req.Description,
		ContentEnglish: req.ContentEnglish,
		ContentDari:    req.ContentDari,
		Image:          req.Image,
		Order:          req.Order,
		EstimatedTime:  req.EstimatedTime,
		IsPublished:    req.IsPublished,
	}
	if err := c.CourseService.CreateLesson(lesson); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson id"
// @Param body body lessonRequest true "Lesson"
// @Success 200 {object} util.Response
// @Router /api/admin/lessons/{id} [put]
func (c *AdminController) UpdateLesson(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}
	lesson, err := c.CourseService.FindLesson(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req lessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.ContentEnglish = req.ContentEnglish
	lesson.ContentDari = req.ContentDari
	lesson.Image = req.Image
	lesson.Order = req.Order
	lesson.EstimatedTime = req.EstimatedTime
	lesson.IsPublished = req.IsPublished
	if req.Slug != "" {
		lesson.Slug = req.Slug
	}
	if err := c.CourseService.UpdateLesson(lesson); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson id"
// @Success 200 {object} util.Response
// @Router /api/admin/lessons/{id} [delete]
func (c *AdminController) DeleteLesson(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}
	if err := c.CourseService.DeleteLesson(uint(id)); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// GenerateLessonAudio godoc
// @Summary Synthesize lesson narration
// @Description Generates an English MP3 for the lesson content and stores it
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson id"
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/admin/lessons/{id}/audio [post]
func (c *AdminController) GenerateLessonAudio(ctx *gin.Context) {
	if !c.TTSService.Enabled() {
		util.Error(ctx, 503, "Text-to-speech is not configured")
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}
	lesson, err := c.CourseService.FindLesson(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if lesson.ContentEnglish == "" {
		util.BadRequest(ctx, "lesson has no English content to narrate")
		return
	}

	name, err := c.TTSService.GenerateEnglish(ctx.Request.Context(), lesson.ContentEnglish,
		"lessons/"+strconv.FormatUint(uint64(lesson.ID), 10))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	lesson.AudioFile = name
	if err := c.CourseService.UpdateLesson(lesson); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"audioFile": name})
}

// GenerateVocabularyAudio godoc
// @Summary Synthesize vocabulary pronunciation
// @Description Generates a Dari MP3 for the vocabulary word through the voice fallback chain
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vocabulary id"
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/admin/vocabulary/{id}/audio [post]
func (c *AdminController) GenerateVocabularyAudio(ctx *gin.Context) {
	if !c.TTSService.Enabled() {
		util.Error(ctx, 503, "Text-to-speech is not configured")
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid vocabulary id")
		return
	}
	vocab, err := c.CourseService.FindVocabulary(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrVocabularyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if vocab.DariWord == "" {
		util.BadRequest(ctx, "vocabulary item has no Dari word")
		return
	}

	name, err := c.TTSService.GenerateDari(ctx.Request.Context(), vocab.DariWord,
		"vocabulary/"+strconv.FormatUint(uint64(vocab.ID), 10))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	vocab.Audio = name
	if err := c.CourseService.UpdateVocabulary(vocab); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"audio": name})
}

// TranslateLesson godoc
// @Summary Backfill Dari translation
// @Description Machine-translates empty ContentDari from the English content
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson id"
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/admin/lessons/{id}/translate [post]
func (c *AdminController) TranslateLesson(ctx *gin.Context) {
	if !c.TranslationService.Enabled() {
		util.Error(ctx, 503, "Translation is not configured")
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	translated, err := c.TranslationService.FillLessonTranslation(ctx.Request.Context(), uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !translated {
		util.Notice(ctx, "Lesson already has Dari content or no English source", nil)
		return
	}
	util.Success(ctx, nil)
}

type exerciseRequest struct {
	Title             string             `json:"title" binding:"required,min=3,max=255"`
	Description       string             `json:"description"`
	Kind              model.ExerciseKind `json:"kind" binding:"required,oneof=choice matching typing listening"`
	Difficulty        model.Difficulty   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	XPReward          int                `json:"xpReward" binding:"omitempty,min=0"`
	IsPublished       bool               `json:"isPublished"`
	AudioFile         string             `json:"audioFile"`
	TranscriptEnglish string             `json:"transcriptEnglish"`
	TranscriptDari    string             `json:"transcriptDari"`
}

// CreateExercise godoc
// @Summary Create an exercise
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body exerciseRequest true "Exercise"
// @Success 201 {object} util.Response
// @Router /api/admin/exercises [post]
func (c *AdminController) CreateExercise(ctx *gin.Context) {
	var req exerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	xp := req.XPReward
	if xp == 0 {
		xp = 5
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.Easy
	}
	exercise := &model.Exercise{
		Title:             req.Title,
		Description:       req.Description,
		Kind:              req.Kind,
		Difficulty:        difficulty,
		XPReward:          xp,
		IsPublished:       req.IsPublished,
		AudioFile:         req.AudioFile,
		TranscriptEnglish: req.TranscriptEnglish,
		TranscriptDari:    req.TranscriptDari,
	}
	if err := c.ExerciseService.Create(exercise); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, exercise)
}

// UpdateExercise godoc
// @Summary Update an exercise
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Param body body exerciseRequest true "Exercise"
// @Success 200 {object} util.Response
// @Router /api/admin/exercises/{id} [put]
func (c *AdminController) UpdateExercise(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exercise id")
		return
	}
	exercise, err := c.ExerciseService.Find(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req exerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise.Title = req.Title
	exercise.Description = req.Description
	exercise.Kind = req.Kind
	if req.Difficulty != "" {
		exercise.Difficulty = req.Difficulty
	}
	if req.XPReward > 0 {
		exercise.XPReward = req.XPReward
	}
	exercise.IsPublished = req.IsPublished
	exercise.AudioFile = req.AudioFile
	exercise.TranscriptEnglish = req.TranscriptEnglish
	exercise.TranscriptDari = req.TranscriptDari
	if err := c.ExerciseService.Update(exercise); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exercise)
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise id"
// @Success 200 {object} util.Response
// @Router /api/admin/exercises/{id} [delete]
func (c *AdminController) DeleteExercise(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exercise id")
		return
	}
	if err := c.ExerciseService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type attachExerciseRequest struct {
	ExerciseID uint `json:"exerciseId" binding:"required"`
	LessonID   uint `json:"lessonId" binding:"required"`
	Order      int  `json:"order"`
	IsRequired bool `json:"isRequired"`
}

// AttachExercise godoc
// @Summary Attach an exercise to a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body attachExerciseRequest true "Link"
// @Success 201 {object} util.Response
// @Router /api/admin/exercises/attach [post]
func (c *AdminController) AttachExercise(ctx *gin.Context) {
	var req attachExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ExerciseService.AttachToLesson(req.ExerciseID, req.LessonID, req.Order, req.IsRequired)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExerciseNotFound), errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, nil)
}

// Stats godoc
// @Summary Platform overview
// @Description User, course, enrollment, and revenue totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PlatformStats}
// @Router /api/admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.StatsService.Overview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// PendingReports godoc
// @Summary Unresolved community reports
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/reports [get]
func (c *AdminController) PendingReports(ctx *gin.Context) {
	reports, err := c.CommunityService.PendingReports()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reports)
}
