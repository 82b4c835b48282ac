// sunstoriy-back/main.go
package main

import (
	"log/slog"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	config.ConnectDB()
	config.MigrateDB()
	config.ConnectRedis()

	r := gin.Default()
	routes.SetupRoutes(r)

	addr := ":" + config.Port()
	slog.Info("Запуск HTTP-сервера", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("Сервер зупинився з помилкою", "error", err)
	}
}
