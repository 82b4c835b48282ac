// sunstoriy-back/internal/handlers/expense_handler.go
package handlers

import (
	"net/http"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
)

// ExpenseInput — створення/оновлення розходу.
type ExpenseInput struct {
	Date        string  `json:"date" binding:"required"`
	SalaryID    *uint   `json:"salaryId"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	PaymentForm string  `json:"paymentForm"`
	Bank        string  `json:"bank"`
	Description string  `json:"description"`
}

// CreateExpenseHandler — POST /expense.
func CreateExpenseHandler(c *gin.Context) {
	var input ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	date, err := parseDateParam(input.Date)
	if err != nil {
		badRequest(c, "Невірний формат дати. Використовуйте YYYY-MM-DD.")
		return
	}

	expense := models.Expense{
		Date:        date,
		SalaryID:    input.SalaryID,
		Category:    input.Category,
		Amount:      input.Amount,
		PaymentForm: input.PaymentForm,
		Bank:        input.Bank,
		Description: input.Description,
	}
	if err := config.DB.Create(&expense).Error; err != nil {
		badRequest(c, "Не вдалося створити розход")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpenseHandler — PUT /expense/:id.
func UpdateExpenseHandler(c *gin.Context) {
	id := c.Param("id")

	var expense models.Expense
	if err := config.DB.First(&expense, id).Error; err != nil {
		badRequest(c, "Такий розход не знайдено")
		return
	}

	var input ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	date, err := parseDateParam(input.Date)
	if err != nil {
		badRequest(c, "Невірний формат дати. Використовуйте YYYY-MM-DD.")
		return
	}

	expense.Date = date
	expense.SalaryID = input.SalaryID
	expense.Category = input.Category
	expense.Amount = input.Amount
	expense.PaymentForm = input.PaymentForm
	expense.Bank = input.Bank
	expense.Description = input.Description

	if err := config.DB.Save(&expense).Error; err != nil {
		badRequest(c, "Не вдалося оновити розход")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// GetExpensesHandler — GET /expense.
func GetExpensesHandler(c *gin.Context) {
	var expenses []models.Expense
	if err := config.DB.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати розходи"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// GetExpenseByIDHandler — GET /expense/:id.
func GetExpenseByIDHandler(c *gin.Context) {
	id := c.Param("id")

	var expense models.Expense
	if err := config.DB.First(&expense, id).Error; err != nil {
		badRequest(c, "Такий розход не знайдено")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// GetExpensesByDateHandler — GET /expense/expense_by_date?startDate&endDate.
func GetExpensesByDateHandler(c *gin.Context) {
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

	var expenses []models.Expense
	if err := config.DB.Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати розходи"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// DeleteExpenseHandler — PATCH /expense/delete/:id.
func DeleteExpenseHandler(c *gin.Context) {
	id := c.Param("id")

	if err := config.DB.Delete(&models.Expense{}, id).Error; err != nil {
		badRequest(c, "Не вдалося видалити розход")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successful delete"})
}
