// sunstoriy-back/config/config.go
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// JwtKey — секретний ключ для підпису access-токенів.
// Заповнюється під час LoadEnv із змінної оточення JWT_SECRET.
var JwtKey []byte

// LoadEnv читає .env (якщо файл існує) та перевіряє обов'язкові змінні.
// Відсутність .env не є помилкою: у контейнері змінні приходять з оточення.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("Файл .env не знайдено, використовуємо змінні оточення")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Критична помилка: змінна оточення JWT_SECRET не встановлена.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}

// Port повертає порт HTTP-сервера (за замовчуванням 3000, як у фронтенда).
func Port() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return port
}
