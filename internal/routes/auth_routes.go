package routes

import (
	"github.com/VladDyadenko/sunstoriy-back/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes реєструє публічні маршрути автентифікації.
// Вони не проходять через middleware перевірки токена.
func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.RegisterHandler)
		auth.POST("/login", handlers.LoginHandler)
		auth.GET("/refresh", handlers.RefreshHandler)
		auth.GET("/logout", handlers.LogoutHandler)
	}
}
