// sunstoriy-back/config/database.go

package config

import (
	"log/slog"
	"os"

	"github.com/VladDyadenko/sunstoriy-back/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("Критична помилка: змінна оточення DB_URL не встановлена.")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Помилка підключення до БД", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Успішне підключення до бази даних!")
}

// MigrateDB створює/оновлює таблиці під усі моделі застосунку.
// Викликається один раз на старті, після ConnectDB.
func MigrateDB() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Child{},
		&models.Teacher{},
		&models.Lesson{},
		&models.LessonTime{},
		&models.Payment{},
		&models.Salary{},
		&models.Expense{},
	)
	if err != nil {
		slog.Error("Помилка міграції схеми БД", "error", err)
		os.Exit(1)
	}
}
