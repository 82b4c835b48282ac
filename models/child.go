package models

import (
	"time"

	"gorm.io/gorm"
)

// Child — дитина, що відвідує заняття в центрі.
type Child struct {
	gorm.Model
	Name        string     `json:"name" gorm:"not null"`
	Surname     string     `json:"surname"`
	BirthDate   *time.Time `json:"birthDate"`
	Age         string     `json:"age"`
	ChildImage  string     `json:"childImage"`
	Mather      string     `json:"mather"`
	MatherPhone string     `json:"matherPhone"`
	Father      string     `json:"father"`
	FatherPhone string     `json:"fatherPhone"`
	About       string     `json:"about"`
	// Напрямки корекційної роботи (вільний текст, як у картці дитини).
	Sensornaya     string `json:"sensornaya"`
	Logoped        string `json:"logoped"`
	Correction     string `json:"correction"`
	Tutor          string `json:"tutor"`
	Rehabilitation string `json:"rehabilitation"`
	// ChildFiles — список посилань на завантажені документи, розділених комою.
	ChildFiles string   `json:"childFiles"`
	OwnerID    *uint    `json:"owner"`
	Lessons    []Lesson `json:"lessons" gorm:"foreignKey:ChildID"`
}
