package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// CachedUserData — дані користувача, які кладемо в кеш після першого запиту.
type CachedUserData struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// AuthMiddleware перевіряє JWT (заголовок Authorization або cookie auth_token)
// і кладе user_id/email/role у контекст запиту.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "Неавторизований користувач")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "Невірний формат заголовка Authorization")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})

		if err != nil || !token.Valid {
			handleAuthError(c, "Невалідний або прострочений токен")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Невалідні claims токена")
			return
		}

		userIDFloat, ok := claims["id"].(float64)
		if !ok {
			handleAuthError(c, "Невалідний ID користувача в токені")
			return
		}
		userID := uint(userIDFloat)

		// Спершу пробуємо кеш, щоб не ходити в БД на кожен запит.
		cacheKey := fmt.Sprintf("user:%d:data", userID)
		if config.RDB != nil {
			cachedData, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var userData CachedUserData
				if json.Unmarshal([]byte(cachedData), &userData) == nil {
					setContextAndProceed(c, &userData)
					return
				}
				slog.Warn("Не вдалося розібрати кешовані дані користувача", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("Помилка Redis GET", "error", err, "user_id", userID)
			}
		}

		var dbUser models.User
		if err := config.DB.First(&dbUser, userID).Error; err != nil {
			handleAuthError(c, "Користувача з токена не знайдено")
			return
		}

		userData := CachedUserData{
			UserID: dbUser.ID,
			Email:  dbUser.Email,
			Role:   dbUser.Role,
		}

		if config.RDB != nil {
			jsonData, err := json.Marshal(userData)
			if err != nil {
				slog.Error("Не вдалося серіалізувати дані користувача для кешу", "error", err, "user_id", userID)
			} else if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, 10*time.Minute).Err(); err != nil {
				slog.Error("Не вдалося записати дані користувача в кеш", "error", err, "user_id", userID)
			}
		}

		setContextAndProceed(c, &userData)
	}
}

func setContextAndProceed(c *gin.Context, userData *CachedUserData) {
	c.Set("user_id", userData.UserID)
	c.Set("email", userData.Email)
	c.Set("role", userData.Role)
	c.Next()
}

// RolesMiddleware пропускає запит лише для перелічених ролей.
func RolesMiddleware(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Роль користувача не знайдено в контексті"})
			c.Abort()
			return
		}

		userRole, ok := role.(string)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Internal role format error"})
			c.Abort()
			return
		}

		for _, name := range allowed {
			if name == userRole {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Недостатньо прав для цієї операції"})
		c.Abort()
	}
}

func handleAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
