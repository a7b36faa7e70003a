package service

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/util"
	"akaraka_backend/pkg/logger"
	"akaraka_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExerciseService struct {
	ExerciseRepo *repository.ExerciseRepository
	ResponseRepo *repository.ResponseRepository
	LessonRepo   *repository.LessonRepository
	Gamification *GamificationService
}

func NewExerciseService(
	exerciseRepo *repository.ExerciseRepository,
	responseRepo *repository.ResponseRepository,
	lessonRepo *repository.LessonRepository,
	gamification *GamificationService,
) *ExerciseService {
	return &ExerciseService{
		ExerciseRepo: exerciseRepo,
		ResponseRepo: responseRepo,
		LessonRepo:   lessonRepo,
		Gamification: gamification,
	}
}

// GradeResult is what the client sees after a submission.
type GradeResult struct {
	Score    int  `json:"score"`
	MaxScore int  `json:"maxScore"`
	Passed   bool `json:"passed"`
	XPEarned int  `json:"xpEarned"`
	Attempts int  `json:"attempts"`
}

// List returns published exercises, optionally filtered by kind.
func (s *ExerciseService) List(kind model.ExerciseKind, page, limit int) ([]model.Exercise, int64, error) {
	return s.ExerciseRepo.ListPublished(kind, page, limit)
}

// ForLesson returns a lesson's exercises in their configured order.
func (s *ExerciseService) ForLesson(lessonID uint) ([]model.ExerciseLesson, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return s.ExerciseRepo.ListByLesson(lessonID)
}

// Detail returns a published exercise with its kind-specific questions. The
// answer key stays server-side: correct flags and expected answers carry
// json:"-" tags on the models.
func (s *ExerciseService) Detail(id uint) (*model.Exercise, any, error) {
	exercise, err := s.findPublished(id)
	if err != nil {
		return nil, nil, err
	}

	var questions any
	switch exercise.Kind {
	case model.KindChoice:
		questions, err = s.ExerciseRepo.LoadChoiceQuestions(id)
	case model.KindMatching:
		questions, err = s.ExerciseRepo.LoadMatchingPairs(id)
	case model.KindTyping:
		questions, err = s.ExerciseRepo.LoadTypingPrompts(id)
	case model.KindListening:
		questions, err = s.ExerciseRepo.LoadListeningQuestions(id)
	}
	if err != nil {
		return nil, nil, err
	}
	return exercise, questions, nil
}

func (s *ExerciseService) SubmitChoice(userID, exerciseID, lessonID uint, sub ChoiceSubmission) (*GradeResult, error) {
	exercise, err := s.findPublishedOfKind(exerciseID, model.KindChoice)
	if err != nil {
		return nil, err
	}
	questions, err := s.ExerciseRepo.LoadChoiceQuestions(exerciseID)
	if err != nil {
		return nil, err
	}
	return s.record(userID, lessonID, exercise, GradeChoice(questions, sub), sub)
}

func (s *ExerciseService) SubmitMatching(userID, exerciseID, lessonID uint, sub MatchingSubmission) (*GradeResult, error) {
	exercise, err := s.findPublishedOfKind(exerciseID, model.KindMatching)
	if err != nil {
		return nil, err
	}
	pairs, err := s.ExerciseRepo.LoadMatchingPairs(exerciseID)
	if err != nil {
		return nil, err
	}
	return s.record(userID, lessonID, exercise, GradeMatching(pairs, sub), sub)
}

func (s *ExerciseService) SubmitTyping(userID, exerciseID, lessonID uint, sub TypingSubmission) (*GradeResult, error) {
	exercise, err := s.findPublishedOfKind(exerciseID, model.KindTyping)
	if err != nil {
		return nil, err
	}
	prompts, err := s.ExerciseRepo.LoadTypingPrompts(exerciseID)
	if err != nil {
		return nil, err
	}
	return s.record(userID, lessonID, exercise, GradeTyping(prompts, sub), sub)
}

func (s *ExerciseService) SubmitListening(userID, exerciseID, lessonID uint, sub ListeningSubmission) (*GradeResult, error) {
	exercise, err := s.findPublishedOfKind(exerciseID, model.KindListening)
	if err != nil {
		return nil, err
	}
	questions, err := s.ExerciseRepo.LoadListeningQuestions(exerciseID)
	if err != nil {
		return nil, err
	}
	return s.record(userID, lessonID, exercise, GradeListening(questions, sub), sub)
}

// record persists one graded attempt and applies its side effects: XP credit,
// streak advance, badge sweep. Every submission appends a fresh response row;
// resubmitting a passed exercise earns XP again.
func (s *ExerciseService) record(userID, lessonID uint, exercise *model.Exercise, score int, submission any) (*GradeResult, error) {
	raw, err := json.Marshal(submission)
	if err != nil {
		return nil, err
	}

	passed := score >= PassingScore
	xp := AwardXP(exercise.XPReward, score)

	response := &model.ExerciseResponse{
		UserID:       userID,
		ExerciseID:   exercise.ID,
		LessonID:     lessonID,
		ResponseData: string(raw),
		Score:        score,
		MaxScore:     100,
		Passed:       passed,
		XPEarned:     xp,
		CompletedAt:  time.Now(),
	}
	if err := s.ResponseRepo.Create(response); err != nil {
		return nil, err
	}

	if err := s.Gamification.AddXP(userID, xp); err != nil {
		return nil, err
	}
	if err := s.Gamification.UpdateStreak(userID); err != nil {
		return nil, err
	}
	if err := s.Gamification.CheckBadges(userID); err != nil {
		logger.Log.Warn("badge check failed after grading",
			zap.Uint("userId", userID), zap.Error(err))
	}

	monitoring.ExercisesGraded.WithLabelValues(string(exercise.Kind), strconv.FormatBool(passed)).Inc()
	logger.Log.Info("exercise graded",
		zap.Uint("userId", userID),
		zap.Uint("exerciseId", exercise.ID),
		zap.String("kind", string(exercise.Kind)),
		zap.Int("score", score),
		zap.Int("xp", xp),
	)

	attempts, err := s.ResponseRepo.CountByUserAndExercise(userID, exercise.ID)
	if err != nil {
		return nil, err
	}
	return &GradeResult{
		Score:    score,
		MaxScore: 100,
		Passed:   passed,
		XPEarned: xp,
		Attempts: int(attempts),
	}, nil
}

// History lists the user's graded attempts, newest first.
func (s *ExerciseService) History(userID uint, page, limit int) ([]model.ExerciseResponse, int64, error) {
	return s.ResponseRepo.ListByUser(userID, page, limit)
}

func (s *ExerciseService) findPublished(id uint) (*model.Exercise, error) {
	exercise, err := s.ExerciseRepo.FindPublishedByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *ExerciseService) findPublishedOfKind(id uint, kind model.ExerciseKind) (*model.Exercise, error) {
	exercise, err := s.findPublished(id)
	if err != nil {
		return nil, err
	}
	if exercise.Kind != kind {
		return nil, util.ErrExerciseKindMismatch
	}
	return exercise, nil
}

// Admin CRUD.

// Find loads an exercise regardless of publication state.
func (s *ExerciseService) Find(id uint) (*model.Exercise, error) {
	exercise, err := s.ExerciseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *ExerciseService) Create(exercise *model.Exercise) error {
	return s.ExerciseRepo.Create(exercise)
}

func (s *ExerciseService) Update(exercise *model.Exercise) error {
	return s.ExerciseRepo.Update(exercise)
}

func (s *ExerciseService) Delete(id uint) error {
	return s.ExerciseRepo.Delete(id)
}

// AttachToLesson links an exercise into a lesson at a position.
func (s *ExerciseService) AttachToLesson(exerciseID, lessonID uint, order int, required bool) error {
	if _, err := s.ExerciseRepo.FindByID(exerciseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExerciseNotFound
		}
		return err
	}
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	return s.ExerciseRepo.LinkToLesson(&model.ExerciseLesson{
		ExerciseID: exerciseID,
		LessonID:   lessonID,
		Order:      order,
		IsRequired: required,
	})
}
