package models

import "gorm.io/gorm"

// Teacher — фахівець центру. SalaryRate — фіксована ставка за одне
// відпрацьоване заняття, з неї рахується нарахування ЗП.
type Teacher struct {
	gorm.Model
	Name           string   `json:"name" gorm:"not null"`
	Surname        string   `json:"surname"`
	TeacherImage   string   `json:"teacherImage"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Color          string   `json:"color"`
	About          string   `json:"about"`
	Specialization string   `json:"specialization"`
	SalaryRate     float64  `json:"salaryRate" gorm:"type:numeric(12,2);default:0"`
	Lessons        []Lesson `json:"lessons" gorm:"foreignKey:TeacherID"`
}
