// sunstoriy-back/internal/handlers/payment_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentInput — запис оплати від клієнта. Дата приходить рядком YYYY-MM-DD.
type PaymentInput struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	PaymentForm string  `json:"paymentForm"`
	Bank        string  `json:"bank"`
	Comment     string  `json:"comment"`
	// Status, якщо переданий, перезаписує статус заняття разом з оплатою.
	Status string `json:"status"`
}

// UpdatePaymentInput — частковий патч існуючої оплати.
type UpdatePaymentInput struct {
	Date        *string  `json:"date"`
	Amount      *float64 `json:"amount"`
	PaymentForm *string  `json:"paymentForm"`
	Bank        *string  `json:"bank"`
	Comment     *string  `json:"comment"`
	Status      string   `json:"status"`
}

func paymentsFromInput(inputs []PaymentInput) ([]models.Payment, error) {
	payments := make([]models.Payment, 0, len(inputs))
	for _, in := range inputs {
		date, err := parseDateParam(in.Date)
		if err != nil {
			return nil, errors.New("Невірний формат дати оплати. Використовуйте YYYY-MM-DD.")
		}
		payments = append(payments, models.Payment{
			Date:        date,
			Amount:      in.Amount,
			PaymentForm: in.PaymentForm,
			Bank:        in.Bank,
			Comment:     in.Comment,
		})
	}
	return payments, nil
}

// AddPaymentHandler — POST /lesson/:lessonId/payment.
//
// Нова оплата з тими ж (дата, форма, банк), що й існуюча, зливається з нею
// додаванням суми, а не створює дубль. Форма noPayment зберігає лише зміну
// статусу. Вся операція — одна транзакція.
func AddPaymentHandler(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("lessonId"), 10, 64)
	if err != nil {
		badRequest(c, "Невірний ID заняття")
		return
	}

	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	var lesson models.Lesson
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Payments").First(&lesson, lessonID).Error; err != nil {
			return errors.New("Заняття не знайдено")
		}

		if input.Status != "" {
			lesson.IsHappend = input.Status
			if err := tx.Model(&lesson).Update("is_happend", input.Status).Error; err != nil {
				return err
			}
		}

		// "Без оплати": фіксуємо лише статус, запис не додаємо.
		if input.PaymentForm == models.PaymentFormNoPayment {
			return nil
		}

		date, err := parseDateParam(input.Date)
		if err != nil {
			return errors.New("Невірний формат дати оплати. Використовуйте YYYY-MM-DD.")
		}

		for i := range lesson.Payments {
			existing := &lesson.Payments[i]
			if existing.Date.Equal(date) &&
				existing.PaymentForm == input.PaymentForm &&
				existing.Bank == input.Bank {
				existing.Amount += input.Amount
				return tx.Model(existing).Update("amount", existing.Amount).Error
			}
		}

		payment := models.Payment{
			LessonID:    lesson.ID,
			Date:        date,
			Amount:      input.Amount,
			PaymentForm: input.PaymentForm,
			Bank:        input.Bank,
			Comment:     input.Comment,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		lesson.Payments = append(lesson.Payments, payment)
		return nil
	})
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if input.Status != "" {
		if err := ReconcileSalary(config.DB, &lesson); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	config.DB.Preload("TimeLesson").Preload("Payments").First(&lesson, lessonID)
	c.JSON(http.StatusCreated, lesson)
}

// UpdatePaymentHandler — PATCH /lesson/:lessonId/payment/:paymentId.
func UpdatePaymentHandler(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("lessonId"), 10, 64)
	if err != nil {
		badRequest(c, "Невірний ID заняття")
		return
	}
	paymentID, err := strconv.ParseUint(c.Param("paymentId"), 10, 64)
	if err != nil {
		badRequest(c, "Невірний ID оплати")
		return
	}

	var input UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Невірні дані: "+err.Error())
		return
	}

	var lesson models.Lesson
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lesson, lessonID).Error; err != nil {
			return errors.New("Заняття не знайдено")
		}

		if input.Status != "" {
			lesson.IsHappend = input.Status
			if err := tx.Model(&lesson).Update("is_happend", input.Status).Error; err != nil {
				return err
			}
		}

		var payment models.Payment
		if err := tx.Where("id = ? AND lesson_id = ?", paymentID, lessonID).
			First(&payment).Error; err != nil {
			return errors.New("Оплату не знайдено")
		}

		if input.Date != nil {
			date, err := parseDateParam(*input.Date)
			if err != nil {
				return errors.New("Невірний формат дати оплати. Використовуйте YYYY-MM-DD.")
			}
			payment.Date = date
		}
		if input.Amount != nil {
			payment.Amount = *input.Amount
		}
		if input.PaymentForm != nil {
			payment.PaymentForm = *input.PaymentForm
		}
		if input.Bank != nil {
			payment.Bank = *input.Bank
		}
		if input.Comment != nil {
			payment.Comment = *input.Comment
		}

		return tx.Save(&payment).Error
	})
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if input.Status != "" {
		if err := ReconcileSalary(config.DB, &lesson); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	config.DB.Preload("TimeLesson").Preload("Payments").First(&lesson, lessonID)
	c.JSON(http.StatusOK, lesson)
}

// DeletePaymentHandler — DELETE /lesson/:lessonId/payment/:paymentId.
func DeletePaymentHandler(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("lessonId"), 10, 64)
	if err != nil {
		badRequest(c, "Невірний ID заняття")
		return
	}
	paymentID, err := strconv.ParseUint(c.Param("paymentId"), 10, 64)
	if err != nil {
		badRequest(c, "Невірний ID оплати")
		return
	}

	var lesson models.Lesson
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lesson, lessonID).Error; err != nil {
			return errors.New("Заняття не знайдено")
		}

		result := tx.Where("id = ? AND lesson_id = ?", paymentID, lessonID).
			Delete(&models.Payment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("Оплату не знайдено")
		}
		return nil
	})
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	config.DB.Preload("TimeLesson").Preload("Payments").First(&lesson, lessonID)
	c.JSON(http.StatusOK, lesson)
}
