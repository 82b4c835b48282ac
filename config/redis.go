// sunstoriy-back/config/redis.go
package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("Змінна оточення REDIS_ADDR не встановлена, кешування буде вимкнено.")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	// Перевіряємо з'єднання
	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Не вдалося підключитися до Redis", "error", err)
		RDB = nil // Обнуляємо клієнт, щоб застосунок не намагався його використовувати
		return
	}

	slog.Info("Успішне підключення до Redis!")
}
