package handlers

import (
	"time"

	"github.com/VladDyadenko/sunstoriy-back/models"

	"gorm.io/gorm"
)

// AvailabilityResult — результат перевірки зайнятості кабінету/фахівця.
type AvailabilityResult struct {
	IsAvailable bool   `json:"isAvailable"`
	Message     string `json:"message,omitempty"`
}

// CheckLessonAvailability перевіряє, чи вільні кабінет і фахівець у задані
// слоти. excludeLessonID виключає заняття, яке зараз редагується (0 — нічого
// не виключати). Перевірка лише читає: бронювання захищене ще й унікальними
// індексами lesson_times на рівні БД.
//
// Порядок перевірок фіксований: спочатку кабінет, потім фахівець;
// повертається повідомлення першої невдалої перевірки.
func CheckLessonAvailability(db *gorm.DB, office string, teacherID uint, dateLesson time.Time, timeLesson []time.Time, excludeLessonID uint) (AvailabilityResult, error) {
	// Неповні дані — одразу "зайнято": це валідаційна відмова, а не конфлікт.
	if office == "" || teacherID == 0 || dateLesson.IsZero() || len(timeLesson) == 0 {
		return AvailabilityResult{
			IsAvailable: false,
			Message:     "Вкажіть кабінет, фахівця, дату та час заняття",
		}, nil
	}

	occupied, err := slotOccupied(db, "lesson_times.office = ?", office, dateLesson, timeLesson, excludeLessonID)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if occupied {
		return AvailabilityResult{
			IsAvailable: false,
			Message:     "Кабінет на цей час вже зайнятий",
		}, nil
	}

	occupied, err = slotOccupied(db, "lesson_times.teacher_id = ?", teacherID, dateLesson, timeLesson, excludeLessonID)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if occupied {
		return AvailabilityResult{
			IsAvailable: false,
			Message:     "Фахівець на цей час вже зайнятий",
		}, nil
	}

	return AvailabilityResult{IsAvailable: true}, nil
}

func slotOccupied(db *gorm.DB, cond string, condArg interface{}, dateLesson time.Time, timeLesson []time.Time, excludeLessonID uint) (bool, error) {
	var count int64
	query := db.Model(&models.LessonTime{}).
		Joins("JOIN lessons ON lessons.id = lesson_times.lesson_id").
		Where("lessons.deleted_at IS NULL").
		Where("lessons.date_lesson = ?", dateLesson).
		Where(cond, condArg).
		Where("lesson_times.time IN ?", timeLesson)

	if excludeLessonID != 0 {
		query = query.Where("lesson_times.lesson_id <> ?", excludeLessonID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
