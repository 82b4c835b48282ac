package handlers

import (
	"testing"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB піднімає in-memory sqlite і підставляє його в config.DB,
// щоб хендлери працювали з тестовою базою.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: існує в межах одного з'єднання.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Child{},
		&models.Teacher{},
		&models.Lesson{},
		&models.LessonTime{},
		&models.Payment{},
		&models.Salary{},
		&models.Expense{},
	))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func slot(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func mkTeacher(t *testing.T, db *gorm.DB, name string, rate float64) models.Teacher {
	t.Helper()
	teacher := models.Teacher{Name: name, SalaryRate: rate}
	require.NoError(t, db.Create(&teacher).Error)
	return teacher
}

func mkChild(t *testing.T, db *gorm.DB, name, surname string) models.Child {
	t.Helper()
	child := models.Child{Name: name, Surname: surname}
	require.NoError(t, db.Create(&child).Error)
	return child
}

func mkLesson(t *testing.T, db *gorm.DB, office string, child models.Child, teacher models.Teacher, day time.Time, price float64, times ...time.Time) models.Lesson {
	t.Helper()
	lesson := models.Lesson{
		Office:       office,
		ChildID:      child.ID,
		TeacherID:    teacher.ID,
		DateLesson:   day,
		ChildName:    child.Name,
		ChildSurname: child.Surname,
		TeacherName:  teacher.Name,
		Price:        price,
		IsHappend:    models.LessonStatusPlanned,
		TimeLesson:   buildLessonTimes(office, teacher.ID, times),
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}
