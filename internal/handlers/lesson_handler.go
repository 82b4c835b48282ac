// sunstoriy-back/internal/handlers/lesson_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FlexibleDates приймає dateLesson і як одне число, і як масив чисел
// (epoch-мілісекунди) — фронтенд надсилає обидва варіанти.
type FlexibleDates []int64

func (f *FlexibleDates) UnmarshalJSON(data []byte) error {
	var single int64
	if err := json.Unmarshal(data, &single); err == nil {
		*f = FlexibleDates{single}
		return nil
	}
	var many []int64
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*f = many
	return nil
}

// CreateLessonInput — тіло запиту на створення заняття (одного або серії).
type CreateLessonInput struct {
	Office         string        `json:"office"`
	Child          uint          `json:"child"`
	Teacher        uint          `json:"teacher"`
	Price          float64       `json:"price"`
	Plan           string        `json:"plan"`
	Review         string        `json:"review"`
	DateLesson     FlexibleDates `json:"dateLesson"`
	TimeLesson     []int64       `json:"timeLesson"`
	ChildName      string        `json:"childName"`
	ChildSurname   string        `json:"childSurname"`
	Mather         string        `json:"mather"`
	MatherPhone    string        `json:"matherPhone"`
	TeacherName    string        `json:"teacherName"`
	TeacherSurname string        `json:"teacherSurname"`
	TeacherColor   string        `json:"teacherColor"`
	IsSendSms      bool          `json:"isSendSms"`
	Status         string        `json:"status"`
}

// UpdateLessonInput — часткове оновлення заняття. Поля-вказівники
// відрізняють "не передано" від нульового значення.
type UpdateLessonInput struct {
	Office         string         `json:"office"`
	Child          uint           `json:"child"`
	Teacher        uint           `json:"teacher"`
	Price          *float64       `json:"price"`
	Plan           *string        `json:"plan"`
	Review         *string        `json:"review"`
	DateLesson     FlexibleDates  `json:"dateLesson"`
	TimeLesson     []int64        `json:"timeLesson"`
	ChildName      string         `json:"childName"`
	ChildSurname   string         `json:"childSurname"`
	Mather         string         `json:"mather"`
	MatherPhone    string         `json:"matherPhone"`
	TeacherName    string         `json:"teacherName"`
	TeacherSurname string         `json:"teacherSurname"`
	TeacherColor   string         `json:"teacherColor"`
	IsSendSms      *bool          `json:"isSendSms"`
	Status         *string        `json:"status"`
	Sum            []PaymentInput `json:"sum"`
}

// CreateLessonHandler створює заняття: по одному на кожну дату з dateLesson.
// Кожне створення проходить перевірку зайнятості кабінету та фахівця.
func CreateLessonHandler(c *gin.Context) {
	var input CreateLessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	if len(input.DateLesson) == 0 {
		badRequest(c, "Вкажіть кабінет, фахівця, дату та час заняття")
		return
	}

	var lessons []models.Lesson
	for _, dateMs := range input.DateLesson {
		lesson, err := createOneLesson(&input, millisToTime(dateMs))
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		lessons = append(lessons, *lesson)
	}

	c.JSON(http.StatusCreated, lessons)
}

func createOneLesson(input *CreateLessonInput, dateLesson time.Time) (*models.Lesson, error) {
	times := make([]time.Time, 0, len(input.TimeLesson))
	for _, ms := range input.TimeLesson {
		times = append(times, millisToTime(ms))
	}

	availability, err := CheckLessonAvailability(config.DB, input.Office, input.Teacher, dateLesson, times, 0)
	if err != nil {
		return nil, err
	}
	if !availability.IsAvailable {
		return nil, errors.New(availability.Message)
	}

	status := input.Status
	if status == "" {
		status = models.LessonStatusPlanned
	}

	lesson := models.Lesson{
		Office:         input.Office,
		ChildID:        input.Child,
		TeacherID:      input.Teacher,
		DateLesson:     dateLesson,
		ChildName:      input.ChildName,
		ChildSurname:   input.ChildSurname,
		Mather:         input.Mather,
		MatherPhone:    input.MatherPhone,
		TeacherName:    input.TeacherName,
		TeacherSurname: input.TeacherSurname,
		TeacherColor:   input.TeacherColor,
		Plan:           input.Plan,
		Review:         input.Review,
		Price:          input.Price,
		IsSendSms:      input.IsSendSms,
		IsHappend:      status,
		TimeLesson:     buildLessonTimes(input.Office, input.Teacher, times),
	}

	// Унікальні індекси lesson_times — страховка від гонки між перевіркою
	// та записом: конкурентне бронювання того ж слота відкотиться тут.
	if err := config.DB.Create(&lesson).Error; err != nil {
		return nil, errors.New("Кабінет або фахівець на цей час вже зайнятий")
	}
	return &lesson, nil
}

func buildLessonTimes(office string, teacherID uint, times []time.Time) []models.LessonTime {
	slots := make([]models.LessonTime, 0, len(times))
	for _, t := range times {
		slots = append(slots, models.LessonTime{
			Office:    office,
			TeacherID: teacherID,
			Time:      t,
		})
	}
	return slots
}

// UpdateLessonHandler оновлює заняття. Якщо зачеплені поля розкладу —
// спершу перевірка зайнятості (із виключенням самого заняття); оновлення
// тільки оплат перевірку не проходить взагалі. Якщо в payload був статус,
// після збереження виконується перерахунок ЗП фахівця.
func UpdateLessonHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Невірний ID заняття")
		return
	}

	var input UpdateLessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	var lesson models.Lesson
	if err := config.DB.Preload("TimeLesson").Preload("Payments").First(&lesson, id).Error; err != nil {
		badRequest(c, "Заняття не знайдено")
		return
	}

	touchesSchedule := input.Office != "" || input.Teacher != 0 ||
		len(input.DateLesson) > 0 || len(input.TimeLesson) > 0

	// Кандидатні значення розкладу: нове, якщо передано, інакше поточне.
	office := lesson.Office
	if input.Office != "" {
		office = input.Office
	}
	teacherID := lesson.TeacherID
	if input.Teacher != 0 {
		teacherID = input.Teacher
	}
	dateLesson := lesson.DateLesson
	if len(input.DateLesson) > 0 {
		dateLesson = millisToTime(input.DateLesson[0])
	}
	times := make([]time.Time, 0)
	if len(input.TimeLesson) > 0 {
		for _, ms := range input.TimeLesson {
			times = append(times, millisToTime(ms))
		}
	} else {
		// Перенос дати без нового часу: години слотів зберігаються,
		// але календарний день переїжджає на нову date_lesson.
		for _, slot := range lesson.TimeLesson {
			times = append(times, rebaseSlot(slot.Time, dateLesson))
		}
	}

	if touchesSchedule {
		availability, err := CheckLessonAvailability(config.DB, office, teacherID, dateLesson, times, lesson.ID)
		if err != nil {
			badRequest(c, "Помилка перевірки зайнятості")
			return
		}
		if !availability.IsAvailable {
			badRequest(c, availability.Message)
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		lesson.Office = office
		lesson.TeacherID = teacherID
		lesson.DateLesson = dateLesson
		if input.Child != 0 {
			lesson.ChildID = input.Child
		}
		if input.Price != nil {
			lesson.Price = *input.Price
		}
		if input.Plan != nil {
			lesson.Plan = *input.Plan
		}
		if input.Review != nil {
			lesson.Review = *input.Review
		}
		if input.ChildName != "" {
			lesson.ChildName = input.ChildName
		}
		if input.ChildSurname != "" {
			lesson.ChildSurname = input.ChildSurname
		}
		if input.Mather != "" {
			lesson.Mather = input.Mather
		}
		if input.MatherPhone != "" {
			lesson.MatherPhone = input.MatherPhone
		}
		if input.TeacherName != "" {
			lesson.TeacherName = input.TeacherName
		}
		if input.TeacherSurname != "" {
			lesson.TeacherSurname = input.TeacherSurname
		}
		if input.TeacherColor != "" {
			lesson.TeacherColor = input.TeacherColor
		}
		if input.IsSendSms != nil {
			lesson.IsSendSms = *input.IsSendSms
		}
		if input.Status != nil {
			lesson.IsHappend = *input.Status
		}

		if touchesSchedule {
			if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.LessonTime{}).Error; err != nil {
				return err
			}
			lesson.TimeLesson = buildLessonTimes(office, teacherID, times)
		}

		if input.Sum != nil {
			if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			payments, err := paymentsFromInput(input.Sum)
			if err != nil {
				return err
			}
			lesson.Payments = payments
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&lesson).Error
	})
	if err != nil {
		badRequest(c, "Не вдалося зберегти заняття: "+err.Error())
		return
	}

	// Перерахунок ЗП іде після запису заняття і не відкочує його.
	if input.Status != nil {
		if err := ReconcileSalary(config.DB, &lesson); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	c.JSON(http.StatusCreated, lesson)
}

// GetLessonsHandler повертає всі заняття зі слотами та оплатами.
func GetLessonsHandler(c *gin.Context) {
	var lessons []models.Lesson
	if err := config.DB.Preload("TimeLesson").Preload("Payments").Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати список занять"})
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GetLessonByIDHandler повертає заняття разом з даними дитини та фахівця.
func GetLessonByIDHandler(c *gin.Context) {
	id := c.Param("id")

	var lesson models.Lesson
	if err := config.DB.Preload("TimeLesson").Preload("Payments").First(&lesson, id).Error; err != nil {
		badRequest(c, "Заняття не існує!")
		return
	}

	var child models.Child
	config.DB.Select("name", "surname").First(&child, lesson.ChildID)

	var teacher models.Teacher
	config.DB.Select("name", "surname").First(&teacher, lesson.TeacherID)

	c.JSON(http.StatusCreated, gin.H{
		"child":   gin.H{"name": child.Name, "surname": child.Surname},
		"teacher": gin.H{"name": teacher.Name, "surname": teacher.Surname},
		"lesson":  lesson,
	})
}

// lessonBoardEntry — рядок календаря: заняття плюс підтягнуті дані
// дитини та фахівця.
type lessonBoardEntry struct {
	Lesson       models.Lesson `json:"lesson"`
	ChildrenData gin.H         `json:"childrenData"`
	TeachersData gin.H         `json:"teachersData"`
}

// GetLessonsByOfficeHandler — GET /lesson/office/office_date.
// Приймає списки offices та dateCurrentLesson (epoch-мілісекунди) і повертає
// заняття, відсортовані за першим часовим слотом.
func GetLessonsByOfficeHandler(c *gin.Context) {
	offices := c.QueryArray("offices")
	dateParams := c.QueryArray("dateCurrentLesson")
	if len(dateParams) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Виберіть дату або період!"})
		return
	}

	dates := make([]time.Time, 0, len(dateParams))
	for _, raw := range dateParams {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "Невірний формат дати")
			return
		}
		dates = append(dates, millisToTime(ms))
	}

	query := config.DB.Preload("TimeLesson").Preload("Payments").
		Where("date_lesson IN ?", dates)
	if len(offices) > 0 {
		query = query.Where("office IN ?", offices)
	}

	var lessons []models.Lesson
	if err := query.Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати заняття"})
		return
	}

	entries := buildBoardEntries(lessons)
	c.JSON(http.StatusOK, entries)
}

// GetLessonsByOfficeDateTeachersInput — тіло POST /lesson/office_date_teachers.
type GetLessonsByOfficeDateTeachersInput struct {
	DateCurrentLesson FlexibleDates `json:"dateCurrentLesson"`
	Teachers          []uint        `json:"teachers"`
	Offices           []string      `json:"offices"`
}

// GetLessonsByOfficeDateTeachersHandler будує розклад на дату(и) для вибраних
// фахівців та кабінетів.
func GetLessonsByOfficeDateTeachersHandler(c *gin.Context) {
	var input GetLessonsByOfficeDateTeachersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}
	if len(input.DateCurrentLesson) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Виберіть дату або період!"})
		return
	}

	dates := make([]time.Time, 0, len(input.DateCurrentLesson))
	for _, ms := range input.DateCurrentLesson {
		dates = append(dates, millisToTime(ms))
	}

	query := config.DB.Preload("TimeLesson").Preload("Payments").
		Where("date_lesson IN ?", dates)
	if len(input.Teachers) > 0 {
		query = query.Where("teacher_id IN ?", input.Teachers)
	}
	if len(input.Offices) > 0 {
		query = query.Where("office IN ?", input.Offices)
	}

	var lessons []models.Lesson
	if err := query.Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати заняття"})
		return
	}

	c.JSON(http.StatusOK, buildBoardEntries(lessons))
}

func buildBoardEntries(lessons []models.Lesson) []lessonBoardEntry {
	sort.Slice(lessons, func(i, j int) bool {
		var ti, tj time.Time
		if len(lessons[i].TimeLesson) > 0 {
			ti = lessons[i].TimeLesson[0].Time
		}
		if len(lessons[j].TimeLesson) > 0 {
			tj = lessons[j].TimeLesson[0].Time
		}
		return ti.Before(tj)
	})

	entries := make([]lessonBoardEntry, 0, len(lessons))
	for _, lesson := range lessons {
		entries = append(entries, lessonBoardEntry{
			Lesson: lesson,
			ChildrenData: gin.H{
				"_id":     lesson.ChildID,
				"name":    lesson.ChildName,
				"surname": lesson.ChildSurname,
			},
			TeachersData: gin.H{
				"_id":     lesson.TeacherID,
				"name":    lesson.TeacherName,
				"surname": lesson.TeacherSurname,
				"color":   lesson.TeacherColor,
			},
		})
	}
	return entries
}

// DeleteLessonHandler — PATCH /lesson/delete/:id. Відпрацьоване або оплачене
// заняття видалити не можна.
func DeleteLessonHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Невірний ID заняття")
		return
	}

	var lesson models.Lesson
	if err := config.DB.Preload("Payments").First(&lesson, id).Error; err != nil {
		badRequest(c, "Заняття не знайдено")
		return
	}

	if lesson.IsHappend == models.LessonStatusCompleted {
		badRequest(c, "Неможливо видалити відпрацьоване заняття")
		return
	}
	if len(lesson.Payments) > 0 {
		badRequest(c, "Неможливо видалити заняття з оплатами")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Слоти видаляються фізично, щоб звільнити кабінет і фахівця.
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.LessonTime{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lesson).Error
	})
	if err != nil {
		badRequest(c, "Не вдалося видалити заняття")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Заняття видалено", "id": lesson.ID})
}
