package handlers

import (
	"testing"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func loadSalary(t *testing.T, db *gorm.DB, teacherID uint, day time.Time) (*models.Salary, bool) {
	t.Helper()
	var salary models.Salary
	err := db.Preload("Lessons").Where("teacher_id = ? AND date = ?", teacherID, day).First(&salary).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false
	}
	require.NoError(t, err)
	return &salary, true
}

func TestReconcileSalary_CreatesOrderOnFirstCompletedLesson(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	day := date(2024, time.February, 5)
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))

	lesson.IsHappend = models.LessonStatusCompleted
	require.NoError(t, db.Save(&lesson).Error)
	require.NoError(t, ReconcileSalary(db, &lesson))

	salary, found := loadSalary(t, db, teacher.ID, day)
	require.True(t, found)
	assert.Equal(t, 400.0, salary.AmountAccrued)
	assert.Equal(t, 400.0, salary.AmountDebt)
	assert.Equal(t, "Олена", salary.Name)
	require.Len(t, salary.Lessons, 1)
	assert.Equal(t, lesson.ID, salary.Lessons[0].ID)
}

func TestReconcileSalary_IdempotentForSameLesson(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	day := date(2024, time.February, 5)
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))

	lesson.IsHappend = models.LessonStatusCompleted
	require.NoError(t, db.Save(&lesson).Error)

	// Повторне збереження того самого статусу не подвоює нарахування.
	require.NoError(t, ReconcileSalary(db, &lesson))
	require.NoError(t, ReconcileSalary(db, &lesson))

	salary, found := loadSalary(t, db, teacher.ID, day)
	require.True(t, found)
	assert.Equal(t, 400.0, salary.AmountAccrued)
	assert.Equal(t, 400.0, salary.AmountDebt)
	assert.Len(t, salary.Lessons, 1)
}

func TestReconcileSalary_SecondLessonSameDayIncrements(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	day := date(2024, time.February, 5)
	first := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))
	second := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 12))

	first.IsHappend = models.LessonStatusCompleted
	require.NoError(t, db.Save(&first).Error)
	require.NoError(t, ReconcileSalary(db, &first))

	second.IsHappend = models.LessonStatusCompleted
	require.NoError(t, db.Save(&second).Error)
	require.NoError(t, ReconcileSalary(db, &second))

	salary, found := loadSalary(t, db, teacher.ID, day)
	require.True(t, found)
	assert.Equal(t, 800.0, salary.AmountAccrued)
	assert.Equal(t, 800.0, salary.AmountDebt)
	assert.Len(t, salary.Lessons, 2)
}

func TestReconcileSalary_RevertLastLessonDeletesOrder(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	day := date(2024, time.February, 5)
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))

	lesson.IsHappend = models.LessonStatusCompleted
	require.NoError(t, db.Save(&lesson).Error)
	require.NoError(t, ReconcileSalary(db, &lesson))

	lesson.IsHappend = models.LessonStatusPlanned
	require.NoError(t, db.Save(&lesson).Error)
	require.NoError(t, ReconcileSalary(db, &lesson))

	// Жодного залишкового нульового запису.
	_, found := loadSalary(t, db, teacher.ID, day)
	assert.False(t, found)

	var count int64
	require.NoError(t, db.Model(&models.Salary{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReconcileSalary_RevertOneOfTwoDecrements(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	day := date(2024, time.February, 5)
	first := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))
	second := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 12))

	for _, lesson := range []*models.Lesson{&first, &second} {
		lesson.IsHappend = models.LessonStatusCompleted
		require.NoError(t, db.Save(lesson).Error)
		require.NoError(t, ReconcileSalary(db, lesson))
	}

	second.IsHappend = models.LessonStatusPlanned
	require.NoError(t, db.Save(&second).Error)
	require.NoError(t, ReconcileSalary(db, &second))

	// Відомість з рештою відпрацьованих занять мусить пережити відкат.
	var count int64
	require.NoError(t, db.Model(&models.Salary{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	salary, found := loadSalary(t, db, teacher.ID, day)
	require.True(t, found)
	assert.Equal(t, 400.0, salary.AmountAccrued)
	assert.Equal(t, 400.0, salary.AmountDebt)
	require.Len(t, salary.Lessons, 1)
	assert.Equal(t, first.ID, salary.Lessons[0].ID)
}

func TestReconcileSalary_ZeroRateIsNoop(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 0)
	child := mkChild(t, db, "Марко", "Шевченко")

	day := date(2024, time.February, 5)
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))

	lesson.IsHappend = models.LessonStatusCompleted
	require.NoError(t, db.Save(&lesson).Error)
	require.NoError(t, ReconcileSalary(db, &lesson))

	var count int64
	require.NoError(t, db.Model(&models.Salary{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReconcileSalary_UnknownStatusIsInert(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	day := date(2024, time.February, 5)
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))

	lesson.IsHappend = "Перенесене"
	require.NoError(t, db.Save(&lesson).Error)
	require.NoError(t, ReconcileSalary(db, &lesson))

	var count int64
	require.NoError(t, db.Model(&models.Salary{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReconcileSalary_TrimsStatusWhitespace(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	day := date(2024, time.February, 5)
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))

	lesson.IsHappend = "  " + models.LessonStatusCompleted + " "
	require.NoError(t, db.Save(&lesson).Error)
	require.NoError(t, ReconcileSalary(db, &lesson))

	_, found := loadSalary(t, db, teacher.ID, day)
	assert.True(t, found)
}

func TestReconcileSalary_TeacherNotFoundIsFatal(t *testing.T) {
	db := setupTestDB(t)
	child := mkChild(t, db, "Марко", "Шевченко")
	teacher := mkTeacher(t, db, "Олена", 400)

	day := date(2024, time.February, 5)
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher, day, 500, slot(2024, time.February, 5, 10))

	require.NoError(t, db.Unscoped().Delete(&models.Teacher{}, teacher.ID).Error)

	lesson.IsHappend = models.LessonStatusCompleted
	require.NoError(t, db.Save(&lesson).Error)

	err := ReconcileSalary(db, &lesson)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Фахівця")
}
