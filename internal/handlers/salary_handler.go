// sunstoriy-back/internal/handlers/salary_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddSalaryInput — ручне створення відомості ЗП.
type AddSalaryInput struct {
	TeacherID      uint    `json:"teacherId" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	Surname        string  `json:"surname"`
	Date           string  `json:"date" binding:"required"`
	AmountAccrued  float64 `json:"amount_accrued"`
	AmountCash     float64 `json:"amount_cash"`
	AmountCashless float64 `json:"amount_cashless"`
	AmountDebt     float64 `json:"amount_debt"`
	Bank           string  `json:"bank"`
	Comment        string  `json:"comment"`
}

// UpdateSalaryInput — виплата по відомості: коментар дописується до
// існуючого, виплачені суми додаються, борг перезаписується.
type UpdateSalaryInput struct {
	Comment        string  `json:"comment"`
	AmountCash     float64 `json:"amount_cash"`
	AmountCashless float64 `json:"amount_cashless"`
	AmountDebt     float64 `json:"amount_debt"`
	Bank           string  `json:"bank"`
}

// AddSalaryHandler — POST /salary.
func AddSalaryHandler(c *gin.Context) {
	var input AddSalaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	date, err := parseDateParam(input.Date)
	if err != nil {
		badRequest(c, "Невірний формат дати. Використовуйте YYYY-MM-DD.")
		return
	}

	salary := models.Salary{
		TeacherID:      input.TeacherID,
		Name:           input.Name,
		Surname:        input.Surname,
		Date:           dayOf(date),
		AmountAccrued:  input.AmountAccrued,
		AmountCash:     input.AmountCash,
		AmountCashless: input.AmountCashless,
		AmountDebt:     input.AmountDebt,
		Bank:           input.Bank,
		Comment:        input.Comment,
	}
	if err := config.DB.Create(&salary).Error; err != nil {
		badRequest(c, "Не вдалося створити відомість ЗП")
		return
	}

	c.JSON(http.StatusCreated, salary)
}

// UpdateSalaryHandler — PUT /salary/:id.
func UpdateSalaryHandler(c *gin.Context) {
	id := c.Param("id")

	var salary models.Salary
	if err := config.DB.First(&salary, id).Error; err != nil {
		badRequest(c, "Запис з такою ЗП не знайдено")
		return
	}

	var input UpdateSalaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	// Коментарі накопичуються, а не перезаписуються.
	newComment := input.Comment
	if salary.Comment != "" && input.Comment != "" {
		newComment = salary.Comment + ", " + input.Comment
	} else if salary.Comment != "" {
		newComment = salary.Comment
	}

	err := config.DB.Model(&salary).Updates(map[string]interface{}{
		"comment":         newComment,
		"amount_debt":     input.AmountDebt,
		"bank":            input.Bank,
		"amount_cash":     gorm.Expr("amount_cash + ?", input.AmountCash),
		"amount_cashless": gorm.Expr("amount_cashless + ?", input.AmountCashless),
	}).Error
	if err != nil {
		badRequest(c, "Не вдалося оновити відомість ЗП")
		return
	}

	config.DB.Preload("Lessons").First(&salary, salary.ID)
	c.JSON(http.StatusOK, salary)
}

// GetSalaryByDateHandler — GET /salary/salary_by_date?startDate&endDate.
func GetSalaryByDateHandler(c *gin.Context) {
	start, err := parseDateParam(c.Query("startDate"))
	if err != nil {
		badRequest(c, "Виберіть дату або період!")
		return
	}
	end, err := parseDateParam(c.Query("endDate"))
	if err != nil {
		badRequest(c, "Виберіть дату або період!")
		return
	}

	var salaries []models.Salary
	if err := config.DB.Preload("Lessons").
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&salaries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати відомості ЗП"})
		return
	}

	c.JSON(http.StatusOK, salaries)
}

// GetSalaryByIDHandler — GET /salary/salary/:id.
func GetSalaryByIDHandler(c *gin.Context) {
	id := c.Param("id")

	var salary models.Salary
	if err := config.DB.Preload("Lessons").First(&salary, id).Error; err != nil {
		badRequest(c, "Запис з такою ЗП не знайдено")
		return
	}

	c.JSON(http.StatusOK, salary)
}

// DeleteSalaryHandler — PATCH /salary/delete/:id.
// Разом з відомістю каскадно видаляються розходи, створені по ній.
func DeleteSalaryHandler(c *gin.Context) {
	id := c.Param("id")

	var salary models.Salary
	if err := config.DB.First(&salary, id).Error; err != nil {
		badRequest(c, "Запис з такою ЗП не знайдено")
		return
	}

	var deletedExpenses int64
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&salary).Association("Lessons").Clear(); err != nil {
			return err
		}

		result := tx.Where("salary_id = ?", salary.ID).Delete(&models.Expense{})
		if result.Error != nil {
			return result.Error
		}
		deletedExpenses = result.RowsAffected

		return tx.Delete(&salary).Error
	})
	if err != nil {
		badRequest(c, "Не вдалося видалити відомість ЗП")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successful delete. Додатково видалено %d розходів.", deletedExpenses),
	})
}
