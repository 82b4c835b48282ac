// sunstoriy-back/internal/handlers/user_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserResponse defines the structure for user data sent in API responses.
// This helps prevent accidental leakage of password hashes.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl"`
	Role      string    `json:"role"`
	Verify    bool      `json:"verify"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserInput — створення користувача з адмін-панелі.
type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserInput — оновлення користувача.
type UpdateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
		Verify:    user.Verify,
		CreatedAt: user.CreatedAt,
	}
}

// ListUsersHandler — GET /users.
func ListUsersHandler(c *gin.Context) {
	var users []models.User
	query := config.DB.Order("id asc")

	if c.Query("all") == "true" {
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати користувачів"})
			return
		}
		responseData := make([]UserResponse, 0, len(users))
		for i := range users {
			responseData = append(responseData, toUserResponse(&users[i]))
		}
		c.JSON(http.StatusOK, gin.H{"data": responseData})
		return
	}

	var totalRows int64
	config.DB.Model(&models.User{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати користувачів"})
		return
	}

	responseData := make([]UserResponse, 0, len(users))
	for i := range users {
		responseData = append(responseData, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, responseData, totalRows))
}

// GetUserHandler — GET /users/:id.
func GetUserHandler(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Preload("Children").First(&user, id).Error; err != nil {
		badRequest(c, "Користувача не знайдено")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(&user))
}

// CreateUserHandler — POST /users.
func CreateUserHandler(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  role,
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося створити користувача"})
			return
		}
		user.Password = string(hash)
	}

	if err := config.DB.Create(&user).Error; err != nil {
		badRequest(c, "Користувач з таким email вже існує")
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(&user))
}

// UpdateUserHandler — PUT /users/:id.
func UpdateUserHandler(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		badRequest(c, "Користувача не знайдено")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося оновити користувача"})
			return
		}
		user.Password = string(hash)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		badRequest(c, "Не вдалося оновити користувача")
		return
	}

	// Кешовані дані ролі могли змінитись — прибираємо їх.
	if config.RDB != nil {
		config.RDB.Del(config.Ctx, "user:"+id+":data")
	}

	c.JSON(http.StatusOK, toUserResponse(&user))
}

// DeleteUserHandler — DELETE /users/:id.
func DeleteUserHandler(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		badRequest(c, "Користувача не знайдено")
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		badRequest(c, "Не вдалося видалити користувача")
		return
	}

	if config.RDB != nil {
		config.RDB.Del(config.Ctx, "user:"+id+":data")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Користувача видалено", "id": user.ID})
}
