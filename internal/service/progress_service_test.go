package service

import (
	"testing"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLessonUpdatesEnrollmentProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "amina", 0)
	course, lessons := createCourseWithLessons(t, db, "basics", 4)
	enrollment := enroll(t, db, user.ID, course.ID)

	for i := 0; i < 2; i++ {
		_, completedNow, err := svc.CompleteLesson(user.ID, lessons[i].ID)
		require.NoError(t, err)
		assert.True(t, completedNow)
	}

	var updated model.CourseEnrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 50, updated.ProgressPercentage)
	assert.False(t, updated.IsCompleted)
	assert.Nil(t, updated.CompletionDate)
}

func TestCompleteAllLessonsCompletesCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "farid", 0)
	course, lessons := createCourseWithLessons(t, db, "basics", 3)
	enrollment := enroll(t, db, user.ID, course.ID)

	for _, lesson := range lessons {
		_, _, err := svc.CompleteLesson(user.ID, lesson.ID)
		require.NoError(t, err)
	}

	var updated model.CourseEnrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 100, updated.ProgressPercentage)
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.CompletionDate)

	var learner model.User
	require.NoError(t, db.First(&learner, user.ID).Error)
	assert.Equal(t, 3*DefaultLessonXP, learner.TotalXP)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "laila", 0)
	course, lessons := createCourseWithLessons(t, db, "basics", 2)
	enroll(t, db, user.ID, course.ID)

	_, completedNow, err := svc.CompleteLesson(user.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, completedNow)

	_, completedNow, err = svc.CompleteLesson(user.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, completedNow, "repeat completion is a no-op")

	var learner model.User
	require.NoError(t, db.First(&learner, user.ID).Error)
	assert.Equal(t, DefaultLessonXP, learner.TotalXP, "no double XP for the same lesson")
}

func TestCompletionIsSticky(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "omid", 0)
	course, lessons := createCourseWithLessons(t, db, "basics", 2)
	enrollment := enroll(t, db, user.ID, course.ID)

	for _, lesson := range lessons {
		_, _, err := svc.CompleteLesson(user.ID, lesson.ID)
		require.NoError(t, err)
	}

	// New lessons added after completion dilute the percentage, but the
	// completed flag and date survive recomputation.
	extra := model.Lesson{CourseID: course.ID, Title: "Extra", Slug: "basics-extra", IsPublished: true}
	require.NoError(t, db.Create(&extra).Error)
	require.NoError(t, svc.RecalculateProgress(user.ID, course.ID))

	var updated model.CourseEnrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 67, updated.ProgressPercentage)
	assert.True(t, updated.IsCompleted)
	assert.NotNil(t, updated.CompletionDate)
}

func TestRecalculateProgressEmptyCourseKeepsStoredValue(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "sara", 0)
	course, _ := createCourseWithLessons(t, db, "empty", 0)
	enrollment := enroll(t, db, user.ID, course.ID)

	require.NoError(t, svc.SetProgress(user.ID, course.ID, 40))
	require.NoError(t, svc.RecalculateProgress(user.ID, course.ID))

	var updated model.CourseEnrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 40, updated.ProgressPercentage,
		"a course without lessons never overwrites the stored percentage")
	assert.False(t, updated.IsCompleted)
}

func TestSetProgressClampsRange(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "zahra", 0)
	course, _ := createCourseWithLessons(t, db, "basics", 1)
	enrollment := enroll(t, db, user.ID, course.ID)

	require.NoError(t, svc.SetProgress(user.ID, course.ID, 150))
	var updated model.CourseEnrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 100, updated.ProgressPercentage)
	assert.True(t, updated.IsCompleted)

	require.NoError(t, svc.SetProgress(user.ID, course.ID, -10))
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 0, updated.ProgressPercentage)
	assert.True(t, updated.IsCompleted, "completion survives a progress dip")
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "hamid", 0)
	_, lessons := createCourseWithLessons(t, db, "basics", 1)

	_, _, err := svc.CompleteLesson(user.ID, lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestVisitLessonTracksAttempts(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "nadia", 0)
	course, lessons := createCourseWithLessons(t, db, "basics", 1)
	enroll(t, db, user.ID, course.ID)

	for i := 1; i <= 3; i++ {
		progress, err := svc.VisitLesson(user.ID, lessons[0].ID)
		require.NoError(t, err)
		assert.Equal(t, i, progress.Attempts)
		assert.False(t, progress.IsCompleted)
	}
}
