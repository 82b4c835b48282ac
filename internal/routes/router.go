package routes

import (
	"github.com/VladDyadenko/sunstoriy-back/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes ініціалізує всі маршрути застосунку.
func SetupRoutes(r *gin.Engine) {
	// Публічні маршрути: реєстрація, вхід, ротація токенів.
	RegisterAuthRoutes(r)

	// Захищена група: всі маршрути вимагають валідного JWT.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
