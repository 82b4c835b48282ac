package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense — розход центру. SalaryID заповнюється, коли розход створено
// випискою по відомості ЗП: видалення відомості каскадно видаляє такі розходи.
type Expense struct {
	gorm.Model
	Date        time.Time `json:"date" gorm:"index;not null"`
	SalaryID    *uint     `json:"salaryId" gorm:"index"`
	Category    string    `json:"category" gorm:"not null"`
	Amount      float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	PaymentForm string    `json:"paymentForm"`
	Bank        string    `json:"bank"`
	Description string    `json:"description"`
}
