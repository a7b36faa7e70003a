package service

import (
	"testing"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/pkg/database"
	"akaraka_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB opens an isolated in-memory database with the full schema. The
// pool is pinned to one connection so every query sees the same :memory: db.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newGamificationService(db *gorm.DB) *GamificationService {
	return NewGamificationService(
		repository.NewUserRepository(db),
		repository.NewTierRepository(db),
		repository.NewBadgeRepository(db),
		repository.NewAchievementRepository(db),
		nil,
	)
}

func newProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewLessonRepository(db),
		repository.NewCourseRepository(db),
		newGamificationService(db),
	)
}

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewLessonRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewUserRepository(db),
		newProgressService(db),
	)
}

func newExerciseService(db *gorm.DB) *ExerciseService {
	return NewExerciseService(
		repository.NewExerciseRepository(db),
		repository.NewResponseRepository(db),
		repository.NewLessonRepository(db),
		newGamificationService(db),
	)
}

func createUser(t *testing.T, db *gorm.DB, name string, totalXP int) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     model.Student,
		Level:    model.Beginner,
		TotalXP:  totalXP,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCourseWithLessons(t *testing.T, db *gorm.DB, slug string, lessonCount int) (*model.Course, []model.Lesson) {
	t.Helper()
	course := &model.Course{
		Title:       "Course " + slug,
		Slug:        slug,
		Level:       model.Beginner,
		IsPublished: true,
	}
	require.NoError(t, db.Create(course).Error)

	lessons := make([]model.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := model.Lesson{
			CourseID:    course.ID,
			Title:       "Lesson",
			Slug:        slug + "-lesson-" + string(rune('a'+i)),
			Order:       i,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) *model.CourseEnrollment {
	t.Helper()
	enrollment := &model.CourseEnrollment{UserID: userID, CourseID: courseID}
	require.NoError(t, db.Create(enrollment).Error)
	return enrollment
}
