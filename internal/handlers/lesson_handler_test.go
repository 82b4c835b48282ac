package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonRouter() *gin.Engine {
	r := gin.New()
	r.POST("/lesson", CreateLessonHandler)
	r.PUT("/lesson/:id", UpdateLessonHandler)
	r.PATCH("/lesson/delete/:id", DeleteLessonHandler)
	return r
}

func ms(t time.Time) int64 { return t.UnixMilli() }

func TestCreateLessonHandler_CreatesOnePerDate(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	body := fmt.Sprintf(`{
		"office": "Кабінет 1",
		"child": %d,
		"teacher": %d,
		"price": 500,
		"dateLesson": [%d, %d],
		"timeLesson": [%d]
	}`, child.ID, teacher.ID,
		ms(date(2024, time.March, 10)), ms(date(2024, time.March, 12)),
		ms(slot(2024, time.March, 10, 10)))

	w := doJSON(lessonRouter(), http.MethodPost, "/lesson", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created []models.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Len(t, created, 2)

	var count int64
	require.NoError(t, db.Model(&models.Lesson{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// Статус за замовчуванням — заплановане.
	assert.Equal(t, models.LessonStatusPlanned, created[0].IsHappend)
}

func TestCreateLessonHandler_SingleDateAsNumber(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	// dateLesson числом, не масивом.
	body := fmt.Sprintf(`{
		"office": "Кабінет 1",
		"child": %d,
		"teacher": %d,
		"price": 500,
		"dateLesson": %d,
		"timeLesson": [%d]
	}`, child.ID, teacher.ID,
		ms(date(2024, time.March, 10)), ms(slot(2024, time.March, 10, 10)))

	w := doJSON(lessonRouter(), http.MethodPost, "/lesson", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.Lesson{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateLessonHandler_RejectsOccupiedOffice(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	other := mkTeacher(t, db, "Ірина", 350)
	child := mkChild(t, db, "Марко", "Шевченко")

	mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))

	body := fmt.Sprintf(`{
		"office": "Кабінет 1",
		"child": %d,
		"teacher": %d,
		"price": 500,
		"dateLesson": [%d],
		"timeLesson": [%d]
	}`, child.ID, other.ID,
		ms(date(2024, time.March, 10)), ms(slot(2024, time.March, 10, 10)))

	w := doJSON(lessonRouter(), http.MethodPost, "/lesson", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Кабінет на цей час вже зайнятий")
}

func TestCreateLessonHandler_RejectsBusyTeacherInOtherOffice(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))

	body := fmt.Sprintf(`{
		"office": "Кабінет 2",
		"child": %d,
		"teacher": %d,
		"price": 500,
		"dateLesson": [%d],
		"timeLesson": [%d]
	}`, child.ID, teacher.ID,
		ms(date(2024, time.March, 10)), ms(slot(2024, time.March, 10, 10)))

	w := doJSON(lessonRouter(), http.MethodPost, "/lesson", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Фахівець на цей час вже зайнятий")
}

func TestCreateLessonHandler_RequiresScheduleFields(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	body := fmt.Sprintf(`{
		"office": "",
		"child": %d,
		"teacher": %d,
		"dateLesson": [%d],
		"timeLesson": [%d]
	}`, child.ID, teacher.ID,
		ms(date(2024, time.March, 10)), ms(slot(2024, time.March, 10, 10)))

	w := doJSON(lessonRouter(), http.MethodPost, "/lesson", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Вкажіть кабінет, фахівця, дату та час заняття")
}

func TestUpdateLessonHandler_MoveToFreeSlot(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	lesson := mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))

	body := fmt.Sprintf(`{"timeLesson": [%d]}`, ms(slot(2024, time.March, 10, 14)))
	w := doJSON(lessonRouter(), http.MethodPut, fmt.Sprintf("/lesson/%d", lesson.ID), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var slots []models.LessonTime
	require.NoError(t, db.Where("lesson_id = ?", lesson.ID).Find(&slots).Error)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Time.Equal(slot(2024, time.March, 10, 14)))
}

func TestUpdateLessonHandler_KeepsOwnSlotOnStatusFlip(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	lesson := mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))

	// Лише статус: перевірка зайнятості не має заважати власному слоту.
	body := `{"status": "Відпрацьоване"}`
	w := doJSON(lessonRouter(), http.MethodPut, fmt.Sprintf("/lesson/%d", lesson.ID), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var updated models.Lesson
	require.NoError(t, db.First(&updated, lesson.ID).Error)
	assert.Equal(t, models.LessonStatusCompleted, updated.IsHappend)

	// Статус у payload запускає нарахування ЗП.
	var salaries int64
	require.NoError(t, db.Model(&models.Salary{}).Count(&salaries).Error)
	assert.EqualValues(t, 1, salaries)
}

func TestUpdateLessonHandler_RejectsMoveToOccupiedSlot(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 12))

	body := fmt.Sprintf(`{"timeLesson": [%d]}`, ms(slot(2024, time.March, 10, 10)))
	w := doJSON(lessonRouter(), http.MethodPut, fmt.Sprintf("/lesson/%d", lesson.ID), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "зайнятий")
}

func TestUpdateLessonHandler_NotFound(t *testing.T) {
	setupTestDB(t)

	w := doJSON(lessonRouter(), http.MethodPut, "/lesson/9999", `{"status": "Відпрацьоване"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Заняття не знайдено")
}

func TestDeleteLessonHandler_RemovesLessonAndFreesSlot(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	lesson := mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))

	w := doJSON(lessonRouter(), http.MethodPatch, fmt.Sprintf("/lesson/delete/%d", lesson.ID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var slots int64
	require.NoError(t, db.Model(&models.LessonTime{}).Where("lesson_id = ?", lesson.ID).Count(&slots).Error)
	assert.Zero(t, slots)

	// Слот звільнився: нове заняття на той же час має пройти.
	mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))
}

func TestDeleteLessonHandler_RejectsCompletedLesson(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	lesson := mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))
	lesson.IsHappend = models.LessonStatusCompleted
	require.NoError(t, db.Save(&lesson).Error)

	w := doJSON(lessonRouter(), http.MethodPatch, fmt.Sprintf("/lesson/delete/%d", lesson.ID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Неможливо видалити відпрацьоване заняття")
}

func TestDeleteLessonHandler_RejectsPaidLesson(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	lesson := mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))
	addPayment(t, db, lesson.ID, date(2024, time.March, 10), 500, models.PaymentFormCash, "")

	w := doJSON(lessonRouter(), http.MethodPatch, fmt.Sprintf("/lesson/delete/%d", lesson.ID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Неможливо видалити заняття з оплатами")
}

func TestUpdateLessonHandler_DateOnlyMoveRebasesSlots(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	child := mkChild(t, db, "Марко", "Шевченко")

	lesson := mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))

	// Лише дата, без timeLesson: година зберігається, день переїжджає.
	body := fmt.Sprintf(`{"dateLesson": [%d]}`, ms(date(2024, time.March, 12)))
	w := doJSON(lessonRouter(), http.MethodPut, fmt.Sprintf("/lesson/%d", lesson.ID), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var slots []models.LessonTime
	require.NoError(t, db.Where("lesson_id = ?", lesson.ID).Find(&slots).Error)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Time.Equal(slot(2024, time.March, 12, 10)))

	// Слот на новій даті видимий для перевірки зайнятості.
	availability, err := CheckLessonAvailability(db, "Кабінет 1", teacher.ID,
		date(2024, time.March, 12), []time.Time{slot(2024, time.March, 12, 10)}, 0)
	require.NoError(t, err)
	assert.False(t, availability.IsAvailable)
}

func TestUpdateLessonHandler_DateOnlyMoveRejectsOccupiedTarget(t *testing.T) {
	db := setupTestDB(t)
	teacher := mkTeacher(t, db, "Олена", 400)
	other := mkTeacher(t, db, "Ірина", 350)
	child := mkChild(t, db, "Марко", "Шевченко")

	// Кабінет на цільову дату і годину вже зайнятий іншим фахівцем.
	mkLesson(t, db, "Кабінет 1", child, other,
		date(2024, time.March, 12), 500, slot(2024, time.March, 12, 10))
	lesson := mkLesson(t, db, "Кабінет 1", child, teacher,
		date(2024, time.March, 10), 500, slot(2024, time.March, 10, 10))

	body := fmt.Sprintf(`{"dateLesson": [%d]}`, ms(date(2024, time.March, 12)))
	w := doJSON(lessonRouter(), http.MethodPut, fmt.Sprintf("/lesson/%d", lesson.ID), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Кабінет на цей час вже зайнятий")
}
