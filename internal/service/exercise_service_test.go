package service

import (
	"testing"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createChoiceExercise(t *testing.T, db *gorm.DB, xpReward int) (*model.Exercise, []model.ChoiceQuestion) {
	t.Helper()
	exercise := &model.Exercise{
		Title:       "Greetings quiz",
		Kind:        model.KindChoice,
		XPReward:    xpReward,
		IsPublished: true,
	}
	require.NoError(t, db.Create(exercise).Error)

	var questions []model.ChoiceQuestion
	for i := 0; i < 2; i++ {
		q := model.ChoiceQuestion{
			ExerciseID:      exercise.ID,
			QuestionEnglish: "Pick the greeting",
			Order:           i,
			Options: []model.ChoiceOption{
				{TextEnglish: "Hello", IsCorrect: true, Order: 0},
				{TextEnglish: "Goodbye", Order: 1},
			},
		}
		require.NoError(t, db.Create(&q).Error)
		questions = append(questions, q)
	}
	return exercise, questions
}

func TestSubmitChoiceRecordsResponseAndXP(t *testing.T) {
	db := newTestDB(t)
	svc := newExerciseService(db)
	user := createUser(t, db, "amina", 0)
	_, lessons := createCourseWithLessons(t, db, "basics", 1)
	exercise, questions := createChoiceExercise(t, db, 10)

	sub := ChoiceSubmission{
		questions[0].ID: questions[0].Options[0].ID,
		questions[1].ID: questions[1].Options[0].ID,
	}
	result, err := svc.SubmitChoice(user.ID, exercise.ID, lessons[0].ID, sub)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 10, result.XPEarned)
	assert.Equal(t, 1, result.Attempts)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 10, updated.TotalXP)
	assert.Equal(t, 1, updated.CurrentStreak)
	require.NotNil(t, updated.LastActivity)

	var responses []model.ExerciseResponse
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&responses).Error)
	require.Len(t, responses, 1)
	assert.Equal(t, exercise.ID, responses[0].ExerciseID)
	assert.Equal(t, lessons[0].ID, responses[0].LessonID)
	assert.Equal(t, 100, responses[0].Score)
	assert.NotEmpty(t, responses[0].ResponseData)
}

func TestSubmitChoiceTwiceEarnsXPTwice(t *testing.T) {
	db := newTestDB(t)
	svc := newExerciseService(db)
	user := createUser(t, db, "farid", 0)
	_, lessons := createCourseWithLessons(t, db, "basics", 1)
	exercise, questions := createChoiceExercise(t, db, 10)

	sub := ChoiceSubmission{
		questions[0].ID: questions[0].Options[0].ID,
		questions[1].ID: questions[1].Options[0].ID,
	}
	for i := 0; i < 2; i++ {
		_, err := svc.SubmitChoice(user.ID, exercise.ID, lessons[0].ID, sub)
		require.NoError(t, err)
	}

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 20, updated.TotalXP, "each submission credits XP independently")

	var count int64
	require.NoError(t, db.Model(&model.ExerciseResponse{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSubmitChoicePartialScoreBands(t *testing.T) {
	db := newTestDB(t)
	svc := newExerciseService(db)
	user := createUser(t, db, "laila", 0)
	_, lessons := createCourseWithLessons(t, db, "basics", 1)
	exercise, questions := createChoiceExercise(t, db, 10)

	// One of two correct: 50%, below passing, half XP.
	sub := ChoiceSubmission{
		questions[0].ID: questions[0].Options[0].ID,
		questions[1].ID: questions[1].Options[1].ID,
	}
	result, err := svc.SubmitChoice(user.ID, exercise.ID, lessons[0].ID, sub)
	require.NoError(t, err)

	assert.Equal(t, 50, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 5, result.XPEarned)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 5, updated.TotalXP)
}

func TestSubmitZeroScoreLeavesLedgerUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := newExerciseService(db)
	user := createUser(t, db, "omid", 0)
	_, lessons := createCourseWithLessons(t, db, "basics", 1)
	exercise, questions := createChoiceExercise(t, db, 10)

	sub := ChoiceSubmission{
		questions[0].ID: questions[0].Options[1].ID,
		questions[1].ID: questions[1].Options[1].ID,
	}
	result, err := svc.SubmitChoice(user.ID, exercise.ID, lessons[0].ID, sub)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.XPEarned)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 0, updated.TotalXP)
	// A failed attempt still counts as activity for the streak.
	assert.Equal(t, 1, updated.CurrentStreak)

	var count int64
	require.NoError(t, db.Model(&model.ExerciseResponse{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "failed attempts are recorded too")
}

func TestSubmitKindMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := newExerciseService(db)
	user := createUser(t, db, "sara", 0)
	_, lessons := createCourseWithLessons(t, db, "basics", 1)
	exercise, _ := createChoiceExercise(t, db, 10)

	_, err := svc.SubmitTyping(user.ID, exercise.ID, lessons[0].ID, TypingSubmission{})
	assert.ErrorIs(t, err, util.ErrExerciseKindMismatch)
}

func TestSubmitUnknownOrUnpublishedExercise(t *testing.T) {
	db := newTestDB(t)
	svc := newExerciseService(db)
	user := createUser(t, db, "zahra", 0)
	_, lessons := createCourseWithLessons(t, db, "basics", 1)

	_, err := svc.SubmitChoice(user.ID, 9999, lessons[0].ID, ChoiceSubmission{})
	assert.ErrorIs(t, err, util.ErrExerciseNotFound)

	draft := &model.Exercise{Title: "Draft", Kind: model.KindChoice, XPReward: 5, IsPublished: false}
	require.NoError(t, db.Create(draft).Error)
	_, err = svc.SubmitChoice(user.ID, draft.ID, lessons[0].ID, ChoiceSubmission{})
	assert.ErrorIs(t, err, util.ErrExerciseNotFound)
}

func TestSubmitTypingNormalizesAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := newExerciseService(db)
	user := createUser(t, db, "hamid", 0)
	_, lessons := createCourseWithLessons(t, db, "basics", 1)

	exercise := &model.Exercise{Title: "Type it", Kind: model.KindTyping, XPReward: 10, IsPublished: true}
	require.NoError(t, db.Create(exercise).Error)
	prompt := &model.TypingPrompt{
		ExerciseID:      exercise.ID,
		SentenceEnglish: "The capital of Afghanistan",
		CorrectAnswer:   "kabul",
	}
	require.NoError(t, db.Create(prompt).Error)

	result, err := svc.SubmitTyping(user.ID, exercise.ID, lessons[0].ID, TypingSubmission{prompt.ID: " Kabul "})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
}

func TestDetailHidesAnswerKey(t *testing.T) {
	db := newTestDB(t)
	svc := newExerciseService(db)
	exercise, _ := createChoiceExercise(t, db, 10)

	got, questions, err := svc.Detail(exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, exercise.ID, got.ID)

	loaded, ok := questions.([]model.ChoiceQuestion)
	require.True(t, ok)
	require.Len(t, loaded, 2)
	// IsCorrect never serializes; the flag stays server-side.
	for _, q := range loaded {
		require.Len(t, q.Options, 2)
	}
}
