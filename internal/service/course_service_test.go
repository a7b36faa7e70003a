package service

import (
	"testing"
	"time"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createCourse(t *testing.T, db *gorm.DB, slug string, level model.CourseLevel) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:       "Course " + slug,
		Slug:        slug,
		Level:       level,
		IsPublished: true,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func TestCatalogGatesFreeUsersToBeginner(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	createCourse(t, db, "starter", model.Beginner)
	createCourse(t, db, "mastery", model.Advanced)

	// A free user sees beginner content only, whatever their own level says.
	free := createUser(t, db, "farid", 0)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", free.ID).
		Update("level", model.Intermediate).Error)
	free.Level = model.Intermediate

	courses, total, err := svc.Catalog(free, 1, 10, repository.CourseFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, model.Beginner, courses[0].Level)
}

func TestCatalogPremiumAndAnonymousSeeEverything(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	createCourse(t, db, "starter", model.Beginner)
	createCourse(t, db, "mastery", model.Advanced)

	premium := createUser(t, db, "laila", 0)
	expires := time.Now().Add(30 * 24 * time.Hour)
	premium.SubscriptionTier = model.TierPremium
	premium.SubscriptionExpires = &expires

	courses, total, err := svc.Catalog(premium, 1, 10, repository.CourseFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, courses, 2)

	_, total, err = svc.Catalog(nil, 1, 10, repository.CourseFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total, "anonymous visitors browse the full catalog")
}

func TestLessonDetailRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	user := createUser(t, db, "omid", 0)
	course, lessons := createCourseWithLessons(t, db, "basics", 1)

	_, _, _, err := svc.LessonDetail(user.ID, course.Slug, lessons[0].Slug)
	assert.ErrorIs(t, err, util.ErrEnrollmentRequired)

	enroll(t, db, user.ID, course.ID)
	lesson, _, progress, err := svc.LessonDetail(user.ID, course.Slug, lessons[0].Slug)
	require.NoError(t, err)
	assert.Equal(t, lessons[0].ID, lesson.ID)
	require.NotNil(t, progress)
	assert.Equal(t, 1, progress.Attempts)
}
