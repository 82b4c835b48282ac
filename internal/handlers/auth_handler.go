// sunstoriy-back/internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const refreshTokenCookie = "refresh_token"

// RegisterInput — тіло запиту реєстрації.
type RegisterInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"passwordRepeat"`
}

// LoginInput — тіло запиту входу.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler — POST /auth/register.
func RegisterHandler(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	if input.Email == "" || input.Password == "" || input.PasswordRepeat == "" {
		badRequest(c, "Введіть всі потрібні поля")
		return
	}
	if input.Password != input.PasswordRepeat {
		badRequest(c, "Паролі не співпадають")
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		badRequest(c, "Користувач з таким email вже існує")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося зареєструвати користувача"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		badRequest(c, "Не вдалося зареєструвати користувача")
		return
	}

	c.JSON(http.StatusCreated, userResponse(&user))
}

// LoginHandler — POST /auth/login. Повертає Bearer access-токен і ставить
// httpOnly cookie з refresh-токеном.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	if input.Email == "" {
		badRequest(c, "Введіть всі потрібні поля")
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		badRequest(c, "Незареєстрований користувач")
		return
	}

	// Користувачі зовнішнього провайдера входять без перевірки пароля.
	if user.Provider != "google" {
		if input.Password == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Пароль обов'язковий"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Невірний email або пароль"})
			return
		}
	}

	issueTokens(c, &user)
}

// RefreshHandler — GET /auth/refresh. Ротує refresh-токен з cookie.
func RefreshHandler(c *gin.Context) {
	tokenStr, err := c.Cookie(refreshTokenCookie)
	if err != nil || tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Невалідний refresh-токен"})
		return
	}

	var tokenDoc models.RefreshToken
	if err := config.DB.Where("token = ?", tokenStr).First(&tokenDoc).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Невалідний refresh-токен"})
		return
	}

	if time.Now().After(tokenDoc.Exp) {
		config.DB.Delete(&tokenDoc)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Прострочений refresh-токен"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, tokenDoc.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Користувача не знайдено"})
		return
	}

	issueTokens(c, &user)
}

// LogoutHandler — GET /auth/logout.
func LogoutHandler(c *gin.Context) {
	if tokenStr, err := c.Cookie(refreshTokenCookie); err == nil && tokenStr != "" {
		config.DB.Where("token = ?", tokenStr).Delete(&models.RefreshToken{})
	}
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Вихід виконано"})
}

// CurrentUserHandler — GET /auth/current (за access-токеном).
func CurrentUserHandler(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		badRequest(c, "Користувача не знайдено")
		return
	}
	c.JSON(http.StatusOK, userResponse(&user))
}

// issueTokens генерує пару токенів: підписаний access і refresh-запис у БД,
// прив'язаний до user-agent (по одному на пристрій).
func issueTokens(c *gin.Context, user *models.User) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
	if err != nil {
		slog.Error("Помилка генерації access-токена", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося згенерувати токен"})
		return
	}

	agent := c.GetHeader("User-Agent")
	refresh := models.RefreshToken{
		Token:     uuid.NewString(),
		Exp:       time.Now().AddDate(0, 1, 0),
		UserID:    user.ID,
		UserAgent: agent,
	}

	var existing models.RefreshToken
	err = config.DB.Where("user_id = ? AND user_agent = ?", user.ID, agent).First(&existing).Error
	switch {
	case err == nil:
		existing.Token = refresh.Token
		existing.Exp = refresh.Exp
		err = config.DB.Save(&existing).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = config.DB.Create(&refresh).Error
	}
	if err != nil {
		slog.Error("Помилка збереження refresh-токена", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося згенерувати токен"})
		return
	}

	c.SetCookie(refreshTokenCookie, refresh.Token, int(time.Until(refresh.Exp).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"accessToken": "Bearer " + accessToken,
		"user":        userResponse(user),
	})
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"avatarUrl": user.AvatarURL,
		"role":      user.Role,
		"verify":    user.Verify,
	}
}
