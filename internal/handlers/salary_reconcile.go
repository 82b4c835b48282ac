package handlers

import (
	"errors"
	"strings"

	"github.com/VladDyadenko/sunstoriy-back/models"

	"gorm.io/gorm"
)

var errTeacherNotFound = errors.New("Фахівця для нарахування ЗП не знайдено")

// ReconcileSalary синхронізує відомість ЗП фахівця зі статусом заняття.
// Викликається після збереження заняття, коли статус був у payload оновлення.
//
// Правила:
//   - ставка фахівця 0 або не задана — жодних дій;
//   - "Відпрацьоване": заняття додається у відомість (teacher, день) рівно
//     один раз, нараховано та борг зростають на ставку; відомість створюється
//     ліниво при першому відпрацьованому занятті за день;
//   - "Заплановане": заняття вилучається з відомості, суми зменшуються на
//     ставку; порожня відомість видаляється повністю;
//   - будь-який інший статус нарахувань не змінює.
//
// Заняття на цей момент вже збережене, тож помилка тут залишає систему в
// проміжному стані: заняття оновлене, ЗП не перерахована. Це відома
// особливість, яка виправляється повторним збереженням статусу.
func ReconcileSalary(db *gorm.DB, lesson *models.Lesson) error {
	var teacher models.Teacher
	if err := db.First(&teacher, lesson.TeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errTeacherNotFound
		}
		return err
	}

	if teacher.SalaryRate <= 0 {
		return nil
	}

	status := strings.TrimSpace(lesson.IsHappend)
	day := dayOf(lesson.DateLesson)

	var salary models.Salary
	err := db.Preload("Lessons").
		Where("teacher_id = ? AND date = ?", teacher.ID, day).
		First(&salary).Error
	salaryExists := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	switch status {
	case models.LessonStatusCompleted:
		if !salaryExists {
			newSalary := models.Salary{
				TeacherID:     teacher.ID,
				Name:          teacher.Name,
				Surname:       teacher.Surname,
				Date:          day,
				AmountAccrued: teacher.SalaryRate,
				AmountDebt:    teacher.SalaryRate,
				Lessons:       []models.Lesson{*lesson},
			}
			return db.Create(&newSalary).Error
		}

		// Захист від повторного нарахування того самого заняття.
		if salaryContainsLesson(&salary, lesson.ID) {
			return nil
		}

		if err := db.Model(&salary).Association("Lessons").Append(lesson); err != nil {
			return err
		}
		return db.Model(&salary).Updates(map[string]interface{}{
			"amount_accrued": gorm.Expr("amount_accrued + ?", teacher.SalaryRate),
			"amount_debt":    gorm.Expr("amount_debt + ?", teacher.SalaryRate),
		}).Error

	case models.LessonStatusPlanned:
		if !salaryExists || !salaryContainsLesson(&salary, lesson.ID) {
			return nil
		}

		// Association.Delete прибирає заняття і зі слайса salary.Lessons,
		// тому кількість фіксується до виклику.
		remaining := len(salary.Lessons) - 1
		if err := db.Model(&salary).Association("Lessons").Delete(lesson); err != nil {
			return err
		}

		// Останнє заняття зняли — відомість більше не має підстав існувати.
		if remaining == 0 {
			return db.Delete(&salary).Error
		}

		return db.Model(&salary).Updates(map[string]interface{}{
			"amount_accrued": gorm.Expr("amount_accrued - ?", teacher.SalaryRate),
			"amount_debt":    gorm.Expr("amount_debt - ?", teacher.SalaryRate),
		}).Error
	}

	// Нерозпізнані статуси свідомо інертні.
	return nil
}

func salaryContainsLesson(salary *models.Salary, lessonID uint) bool {
	for _, l := range salary.Lessons {
		if l.ID == lessonID {
			return true
		}
	}
	return false
}
