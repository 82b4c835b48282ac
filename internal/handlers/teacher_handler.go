// sunstoriy-back/internal/handlers/teacher_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
)

// TeacherInput — картка фахівця.
type TeacherInput struct {
	Name           string  `json:"name" binding:"required"`
	Surname        string  `json:"surname"`
	TeacherImage   string  `json:"teacherImage"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Color          string  `json:"color"`
	About          string  `json:"about"`
	Specialization string  `json:"specialization"`
	SalaryRate     float64 `json:"salaryRate"`
}

// ListTeachersHandler — GET /teacher, з пошуком та пагінацією.
func ListTeachersHandler(c *gin.Context) {
	query := config.DB.Model(&models.Teacher{}).Order("name, surname")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(surname) LIKE ?", pattern, pattern)
	}

	var teachers []models.Teacher
	if c.Query("all") == "true" {
		if err := query.Find(&teachers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати список фахівців"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": teachers})
		return
	}

	var totalRows int64
	query.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&teachers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати список фахівців"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, teachers, totalRows))
}

// GetTeacherHandler — GET /teacher/:id.
func GetTeacherHandler(c *gin.Context) {
	id := c.Param("id")

	var teacher models.Teacher
	if err := config.DB.Preload("Lessons").First(&teacher, id).Error; err != nil {
		badRequest(c, "Фахівця не знайдено")
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// CreateTeacherHandler — POST /teacher.
func CreateTeacherHandler(c *gin.Context) {
	var input TeacherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	teacher := models.Teacher{
		Name:           input.Name,
		Surname:        input.Surname,
		TeacherImage:   input.TeacherImage,
		Phone:          input.Phone,
		Email:          input.Email,
		Color:          input.Color,
		About:          input.About,
		Specialization: input.Specialization,
		SalaryRate:     input.SalaryRate,
	}
	if err := config.DB.Create(&teacher).Error; err != nil {
		badRequest(c, "Не вдалося створити картку фахівця")
		return
	}
	c.JSON(http.StatusCreated, teacher)
}

// UpdateTeacherHandler — PUT /teacher/:id.
func UpdateTeacherHandler(c *gin.Context) {
	id := c.Param("id")

	var teacher models.Teacher
	if err := config.DB.First(&teacher, id).Error; err != nil {
		badRequest(c, "Фахівця не знайдено")
		return
	}

	var input TeacherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	teacher.Name = input.Name
	teacher.Surname = input.Surname
	teacher.TeacherImage = input.TeacherImage
	teacher.Phone = input.Phone
	teacher.Email = input.Email
	teacher.Color = input.Color
	teacher.About = input.About
	teacher.Specialization = input.Specialization
	teacher.SalaryRate = input.SalaryRate

	if err := config.DB.Save(&teacher).Error; err != nil {
		badRequest(c, "Не вдалося оновити картку фахівця")
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// DeleteTeacherHandler — DELETE /teacher/:id.
func DeleteTeacherHandler(c *gin.Context) {
	id := c.Param("id")

	var teacher models.Teacher
	if err := config.DB.First(&teacher, id).Error; err != nil {
		badRequest(c, "Фахівця не знайдено")
		return
	}

	if err := config.DB.Delete(&teacher).Error; err != nil {
		badRequest(c, "Не вдалося видалити картку фахівця")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Картку фахівця видалено", "id": teacher.ID})
}
