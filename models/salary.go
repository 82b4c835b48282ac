package models

import "time"

// Salary — відомість нарахування ЗП фахівцю за конкретний день.
// Існує лише доти, доки хоча б одне відпрацьоване заняття входить у Lessons.
type Salary struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TeacherID uint      `json:"teacherId" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Surname   string    `json:"surname"`
	Date      time.Time `json:"date" gorm:"index;not null"`
	// AmountAccrued — нараховано за відпрацьовані заняття, AmountDebt —
	// залишок боргу перед фахівцем.
	AmountAccrued  float64  `json:"amount_accrued" gorm:"type:numeric(12,2);not null"`
	AmountCash     float64  `json:"amount_cash" gorm:"type:numeric(12,2)"`
	AmountCashless float64  `json:"amount_cashless" gorm:"type:numeric(12,2)"`
	AmountDebt     float64  `json:"amount_debt" gorm:"type:numeric(12,2)"`
	Bank           string   `json:"bank"`
	Comment        string   `json:"comment"`
	Lessons        []Lesson `json:"lessonId" gorm:"many2many:salary_lessons;"`
}

func (Salary) TableName() string {
	return "salaries"
}
