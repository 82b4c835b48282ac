// sunstoriy-back/internal/handlers/child_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
)

// ChildInput — картка дитини.
type ChildInput struct {
	Name           string `json:"name" binding:"required"`
	Surname        string `json:"surname"`
	BirthDate      string `json:"birthDate"`
	Age            string `json:"age"`
	ChildImage     string `json:"childImage"`
	Mather         string `json:"mather"`
	MatherPhone    string `json:"matherPhone"`
	Father         string `json:"father"`
	FatherPhone    string `json:"fatherPhone"`
	About          string `json:"about"`
	Sensornaya     string `json:"sensornaya"`
	Logoped        string `json:"logoped"`
	Correction     string `json:"correction"`
	Tutor          string `json:"tutor"`
	Rehabilitation string `json:"rehabilitation"`
	ChildFiles     string `json:"childFiles"`
	Owner          *uint  `json:"owner"`
}

func (in *ChildInput) apply(child *models.Child) error {
	child.Name = in.Name
	child.Surname = in.Surname
	child.Age = in.Age
	child.ChildImage = in.ChildImage
	child.Mather = in.Mather
	child.MatherPhone = in.MatherPhone
	child.Father = in.Father
	child.FatherPhone = in.FatherPhone
	child.About = in.About
	child.Sensornaya = in.Sensornaya
	child.Logoped = in.Logoped
	child.Correction = in.Correction
	child.Tutor = in.Tutor
	child.Rehabilitation = in.Rehabilitation
	child.ChildFiles = in.ChildFiles
	child.OwnerID = in.Owner

	if in.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil {
			return err
		}
		child.BirthDate = &birthDate
	}
	return nil
}

// ListChildrenHandler повертає дітей з пошуком за ім'ям/прізвищем та
// пагінацією (параметр all=true вимикає пагінацію).
func ListChildrenHandler(c *gin.Context) {
	query := config.DB.Model(&models.Child{}).Order("name, surname")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(surname) LIKE ?", pattern, pattern)
	}

	var children []models.Child
	if c.Query("all") == "true" {
		if err := query.Find(&children).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати список дітей"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": children})
		return
	}

	var totalRows int64
	query.Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&children).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати список дітей"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, children, totalRows))
}

// GetChildHandler — GET /child/:id, разом із заняттями.
func GetChildHandler(c *gin.Context) {
	id := c.Param("id")

	var child models.Child
	if err := config.DB.Preload("Lessons").Preload("Lessons.Payments").First(&child, id).Error; err != nil {
		badRequest(c, "Дитину не знайдено")
		return
	}
	c.JSON(http.StatusOK, child)
}

// CreateChildHandler — POST /child.
func CreateChildHandler(c *gin.Context) {
	var input ChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	var child models.Child
	if err := input.apply(&child); err != nil {
		badRequest(c, "Невірний формат дати народження. Використовуйте YYYY-MM-DD.")
		return
	}

	if err := config.DB.Create(&child).Error; err != nil {
		badRequest(c, "Не вдалося створити картку дитини")
		return
	}
	c.JSON(http.StatusCreated, child)
}

// UpdateChildHandler — PUT /child/:id.
func UpdateChildHandler(c *gin.Context) {
	id := c.Param("id")

	var child models.Child
	if err := config.DB.First(&child, id).Error; err != nil {
		badRequest(c, "Дитину не знайдено")
		return
	}

	var input ChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	if err := input.apply(&child); err != nil {
		badRequest(c, "Невірний формат дати народження. Використовуйте YYYY-MM-DD.")
		return
	}

	if err := config.DB.Save(&child).Error; err != nil {
		badRequest(c, "Не вдалося оновити картку дитини")
		return
	}
	c.JSON(http.StatusOK, child)
}

// DeleteChildHandler — DELETE /child/:id.
func DeleteChildHandler(c *gin.Context) {
	id := c.Param("id")

	var child models.Child
	if err := config.DB.First(&child, id).Error; err != nil {
		badRequest(c, "Дитину не знайдено")
		return
	}

	if err := config.DB.Delete(&child).Error; err != nil {
		badRequest(c, "Не вдалося видалити картку дитини")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Картку дитини видалено", "id": child.ID})
}
