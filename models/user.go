package models

import (
	"time"

	"gorm.io/gorm"
)

// Ролі користувачів системи.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleUser    = "user"
)

// User визначає обліковий запис (адміністратор, фахівець або батьки).
type User struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"-"`
	AvatarURL string `json:"avatarUrl"`
	Verify    bool   `json:"verify" gorm:"default:false"`
	Role      string `json:"role" gorm:"default:user"`
	// Provider — маркер зовнішнього провайдера ("google"); для таких
	// користувачів пароль не перевіряється.
	Provider string  `json:"provider"`
	Children []Child `json:"children" gorm:"foreignKey:OwnerID"`
}

// RefreshToken — refresh-токен користувача, прив'язаний до user-agent.
type RefreshToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	Exp       time.Time `json:"exp"`
	UserID    uint      `json:"userId" gorm:"index"`
	UserAgent string    `json:"userAgent"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
