package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Статуси заняття. Інші значення допустимі, але не впливають на ЗП.
const (
	LessonStatusPlanned   = "Заплановане"
	LessonStatusCompleted = "Відпрацьоване"
)

// Форми оплати.
const (
	PaymentFormCash     = "cash"
	PaymentFormCashless = "cashless"
	// PaymentFormNoPayment — службове значення "без оплати": статус заняття
	// змінюється, але запис в оплати не додається.
	PaymentFormNoPayment = "noPayment"
)

// Lesson — заняття фахівця з дитиною в кабінеті у визначені часові слоти.
// Імена дитини та фахівця денормалізовані для відображення у календарі.
type Lesson struct {
	gorm.Model
	Office         string       `json:"office"`
	ChildID        uint         `json:"child" gorm:"index"`
	TeacherID      uint         `json:"teacher" gorm:"index"`
	DateLesson     time.Time    `json:"dateLesson" gorm:"index"`
	TimeLesson     []LessonTime `json:"timeLesson" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
	ChildName      string       `json:"childName"`
	ChildSurname   string       `json:"childSurname"`
	Mather         string       `json:"mather"`
	MatherPhone    string       `json:"matherPhone"`
	TeacherName    string       `json:"teacherName"`
	TeacherSurname string       `json:"teacherSurname"`
	TeacherColor   string       `json:"teacherColor"`
	Plan           string       `json:"plan"`
	Review         string       `json:"review"`
	Price          float64      `json:"price" gorm:"type:numeric(12,2)"`
	IsSendSms      bool         `json:"isSendSms"`
	IsHappend      string       `json:"isHappend" gorm:"default:Заплановане"`
	Payments       []Payment    `json:"sum" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

// LessonTime — один часовий слот заняття. Кабінет і фахівець денормалізовані
// сюди, щоб унікальні індекси на рівні БД закривали гонку подвійного
// бронювання між конкурентними запитами.
type LessonTime struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	LessonID  uint      `json:"-" gorm:"index"`
	Office    string    `json:"-" gorm:"uniqueIndex:idx_office_slot"`
	TeacherID uint      `json:"-" gorm:"uniqueIndex:idx_teacher_slot"`
	Time      time.Time `json:"time" gorm:"uniqueIndex:idx_office_slot;uniqueIndex:idx_teacher_slot"`
}

func (LessonTime) TableName() string {
	return "lesson_times"
}

// MarshalJSON повертає слот як самий timestamp — формат, який очікує фронтенд
// (timeLesson: [дата, дата, ...]).
func (lt LessonTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(lt.Time)
}

// Payment — запис оплати, що належить виключно своєму заняттю.
type Payment struct {
	ID          uint      `json:"_id" gorm:"primaryKey"`
	LessonID    uint      `json:"-" gorm:"index"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount" gorm:"type:numeric(12,2)"`
	PaymentForm string    `json:"paymentForm"`
	Bank        string    `json:"bank"`
	Comment     string    `json:"comment"`
}
