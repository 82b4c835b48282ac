// sunstoriy-back/internal/handlers/zvit_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/VladDyadenko/sunstoriy-back/config"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// ChannelTotals — суми за період, розбиті за каналами оплати.
type ChannelTotals struct {
	Cash       float64 `json:"cash"`
	PrivatBank float64 `json:"privatBank"`
	MonoBank   float64 `json:"monoBank"`
	Amount     float64 `json:"amount"`
}

func (t *ChannelTotals) add(paymentForm, bank string, amount float64) {
	switch paymentForm {
	case models.PaymentFormCash:
		t.Cash += amount
	case models.PaymentFormCashless:
		switch bank {
		case "PrivatBank":
			t.PrivatBank += amount
		case "MonoBank":
			t.MonoBank += amount
		}
	}
	t.Amount += amount
}

func (t ChannelTotals) minus(o ChannelTotals) ChannelTotals {
	return ChannelTotals{
		Cash:       t.Cash - o.Cash,
		PrivatBank: t.PrivatBank - o.PrivatBank,
		MonoBank:   t.MonoBank - o.MonoBank,
		Amount:     t.Amount - o.Amount,
	}
}

func (t ChannelTotals) plus(o ChannelTotals) ChannelTotals {
	return ChannelTotals{
		Cash:       t.Cash + o.Cash,
		PrivatBank: t.PrivatBank + o.PrivatBank,
		MonoBank:   t.MonoBank + o.MonoBank,
		Amount:     t.Amount + o.Amount,
	}
}

// PeriodSummary — фінансовий звіт за період з перенесенням прибутку
// з початку року.
type PeriodSummary struct {
	Income               ChannelTotals `json:"income"`
	WorkedIncome         float64       `json:"workedIncome"`
	Expense              ChannelTotals `json:"expense"`
	Profit               ChannelTotals `json:"profit"`
	PreviousPeriodProfit ChannelTotals `json:"previousPeriodProfit"`
}

func reportPeriod(c *gin.Context) (start, end time.Time, ok bool) {
	start, err := parseDateParam(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Виберіть дату або період!"})
		return start, end, false
	}
	end, err = parseDateParam(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Виберіть дату або період!"})
		return start, end, false
	}
	return start, end, true
}

// buildPeriodSummary рахує звіт за [start, end]. Оплати розносяться за датою
// самої оплати, розходи — за датою розходу; все з початку поточного року до
// start потрапляє в "попередній період".
func buildPeriodSummary(db *gorm.DB, start, end time.Time) (*PeriodSummary, error) {
	yearStart := startOfYear(start)

	var payments []models.Payment
	if err := db.Joins("JOIN lessons ON lessons.id = payments.lesson_id").
		Where("lessons.deleted_at IS NULL").
		Where("payments.date >= ? AND payments.date <= ?", yearStart, end).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := db.Where("date >= ? AND date <= ?", yearStart, end).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	var income, previousIncome ChannelTotals
	for _, p := range payments {
		if p.Date.Before(start) {
			previousIncome.add(p.PaymentForm, p.Bank, p.Amount)
		} else {
			income.add(p.PaymentForm, p.Bank, p.Amount)
		}
	}

	var expense, previousExpense ChannelTotals
	for _, e := range expenses {
		if e.Date.Before(start) {
			previousExpense.add(e.PaymentForm, e.Bank, e.Amount)
		} else {
			expense.add(e.PaymentForm, e.Bank, e.Amount)
		}
	}

	// Дохід по тарифу за відпрацьовані заняття, незалежно від отриманих коштів.
	var workedIncome float64
	if err := db.Model(&models.Lesson{}).
		Where("date_lesson >= ? AND date_lesson <= ?", start, end).
		Where("is_happend = ?", models.LessonStatusCompleted).
		Select("COALESCE(SUM(price), 0)").
		Scan(&workedIncome).Error; err != nil {
		return nil, err
	}

	previousProfit := previousIncome.minus(previousExpense)
	profit := income.minus(expense).plus(previousProfit)

	return &PeriodSummary{
		Income:               income,
		WorkedIncome:         workedIncome,
		Expense:              expense,
		Profit:               profit,
		PreviousPeriodProfit: previousProfit,
	}, nil
}

// GetPeriodSummaryHandler — GET /zvit/one_month_total?startDate&endDate.
func GetPeriodSummaryHandler(c *gin.Context) {
	start, end, ok := reportPeriod(c)
	if !ok {
		return
	}

	summary, err := buildPeriodSummary(config.DB, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося побудувати звіт"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportPeriodSummaryHandler — GET /zvit/one_month_total/export.
// Віддає той самий звіт файлом .xlsx.
func ExportPeriodSummaryHandler(c *gin.Context) {
	start, end, ok := reportPeriod(c)
	if !ok {
		return
	}

	summary, err := buildPeriodSummary(config.DB, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося побудувати звіт"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := [][]interface{}{
		{"Звіт за період", start.Format("02.01.2006") + " — " + end.Format("02.01.2006")},
		{},
		{"", "Готівка", "PrivatBank", "MonoBank", "Разом"},
		{"Дохід", summary.Income.Cash, summary.Income.PrivatBank, summary.Income.MonoBank, summary.Income.Amount},
		{"Розходи", summary.Expense.Cash, summary.Expense.PrivatBank, summary.Expense.MonoBank, summary.Expense.Amount},
		{"Прибуток", summary.Profit.Cash, summary.Profit.PrivatBank, summary.Profit.MonoBank, summary.Profit.Amount},
		{"Прибуток попереднього періоду", summary.PreviousPeriodProfit.Cash, summary.PreviousPeriodProfit.PrivatBank, summary.PreviousPeriodProfit.MonoBank, summary.PreviousPeriodProfit.Amount},
		{},
		{"Відпрацьовано по тарифу", summary.WorkedIncome},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося сформувати файл"})
			return
		}
	}

	fileName := fmt.Sprintf("zvit_%s_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося відправити файл"})
	}
}

// childInfoCache — кеш даних про дітей на час одного виклику звіту, щоб не
// звертатись до БД за кожним заняттям тієї самої дитини. Живе лише в межах
// виклику і не розділяється між запитами.
type childInfoCache struct {
	db       *gorm.DB
	children map[uint]*models.Child
}

func newChildInfoCache(db *gorm.DB) *childInfoCache {
	return &childInfoCache{db: db, children: make(map[uint]*models.Child)}
}

func (cc *childInfoCache) get(childID uint) (*models.Child, error) {
	if child, ok := cc.children[childID]; ok {
		return child, nil
	}
	var child models.Child
	if err := cc.db.First(&child, childID).Error; err != nil {
		return nil, err
	}
	cc.children[childID] = &child
	return &child, nil
}

// balanceBucket — ціна/оплата/баланс у межах одного вікна звіту.
type balanceBucket struct {
	Price   float64 `json:"price"`
	Sum     float64 `json:"sum"`
	Balance float64 `json:"balance"`
}

// ChildPeriodRow — рядок звіту по дітях: стан на початок періоду, рух за
// період і баланс на кінець.
type ChildPeriodRow struct {
	Child        uint          `json:"child"`
	ChildName    string        `json:"childName"`
	ChildSurname string        `json:"childSurname"`
	Start        balanceBucket `json:"start"`
	Period       balanceBucket `json:"period"`
	End          struct {
		Balance float64 `json:"balance"`
	} `json:"end"`
}

// GetChildrenPeriodHandler — GET /zvit/childrens_period?startDate&endDate.
//
// До звіту входять заняття з початку року до кінця періоду, які або
// відпрацьовані, або мають хоч одну оплату. Тариф рахується лише за
// відпрацьовані; оплати рознесені за власною датою між вікнами "до періоду"
// та "період". Діти з нульовими балансами в усіх вікнах не показуються.
func GetChildrenPeriodHandler(c *gin.Context) {
	start, end, ok := reportPeriod(c)
	if !ok {
		return
	}
	yearStart := startOfYear(start)

	var lessons []models.Lesson
	if err := config.DB.Preload("Payments").
		Where("date_lesson >= ? AND date_lesson <= ?", yearStart, end).
		Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати заняття"})
		return
	}

	cache := newChildInfoCache(config.DB)
	rowsByChild := make(map[uint]*ChildPeriodRow)

	for _, lesson := range lessons {
		completed := lesson.IsHappend == models.LessonStatusCompleted
		if !completed && len(lesson.Payments) == 0 {
			continue
		}

		row, found := rowsByChild[lesson.ChildID]
		if !found {
			child, err := cache.get(lesson.ChildID)
			if err != nil {
				// Дитину могли видалити: імена беремо з денормалізованих полів.
				child = &models.Child{Name: lesson.ChildName, Surname: lesson.ChildSurname}
			}
			row = &ChildPeriodRow{
				Child:        lesson.ChildID,
				ChildName:    child.Name,
				ChildSurname: child.Surname,
			}
			rowsByChild[lesson.ChildID] = row
		}

		if completed {
			if lesson.DateLesson.Before(start) {
				row.Start.Price += lesson.Price
			} else {
				row.Period.Price += lesson.Price
			}
		}
		for _, p := range lesson.Payments {
			if p.Date.Before(start) {
				row.Start.Sum += p.Amount
			} else {
				row.Period.Sum += p.Amount
			}
		}
	}

	rows := make([]ChildPeriodRow, 0, len(rowsByChild))
	for _, row := range rowsByChild {
		row.Start.Balance = row.Start.Sum - row.Start.Price
		row.Period.Balance = row.Period.Sum - row.Period.Price
		row.End.Balance = row.Start.Balance + row.Period.Balance
		if row.Start.Balance == 0 && row.Period.Balance == 0 && row.End.Balance == 0 &&
			row.Start.Price == 0 && row.Period.Price == 0 {
			continue
		}
		rows = append(rows, *row)
	}

	// Сортування за ім'ям з урахуванням українського алфавіту.
	collator := collate.New(language.Ukrainian)
	sort.Slice(rows, func(i, j int) bool {
		if cmp := collator.CompareString(rows[i].ChildName, rows[j].ChildName); cmp != 0 {
			return cmp < 0
		}
		return collator.CompareString(rows[i].ChildSurname, rows[j].ChildSurname) < 0
	})

	c.JSON(http.StatusOK, rows)
}

// ChildDetailRow — одне заняття у детальному звіті по дитині.
type ChildDetailRow struct {
	DateLesson time.Time `json:"dateLesson"`
	LessonID   uint      `json:"lessonId"`
	Office     string    `json:"office"`
	Price      float64   `json:"price"`
	Sum        float64   `json:"sum"`
	Balance    float64   `json:"balance"`
}

// GetChildDetailReportHandler — GET /zvit/children_period/:id?startDate&endDate.
func GetChildDetailReportHandler(c *gin.Context) {
	childID := c.Param("id")
	start, end, ok := reportPeriod(c)
	if !ok {
		return
	}

	var lessons []models.Lesson
	if err := config.DB.Preload("Payments").
		Where("child_id = ?", childID).
		Where("date_lesson >= ? AND date_lesson <= ?", start, end).
		Where("is_happend = ?", models.LessonStatusCompleted).
		Order("date_lesson ASC").
		Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати заняття"})
		return
	}

	var totalBalance float64
	details := make([]ChildDetailRow, 0, len(lessons))
	for _, lesson := range lessons {
		var paid float64
		for _, p := range lesson.Payments {
			paid += p.Amount
		}
		balance := paid - lesson.Price
		totalBalance += balance
		details = append(details, ChildDetailRow{
			DateLesson: lesson.DateLesson,
			LessonID:   lesson.ID,
			Office:     lesson.Office,
			Price:      lesson.Price,
			Sum:        paid,
			Balance:    balance,
		})
	}

	yearStart := startOfYear(start)
	previousEnd := start.AddDate(0, 0, -1)

	var previousLessons []models.Lesson
	if err := config.DB.Preload("Payments").
		Where("child_id = ?", childID).
		Where("date_lesson >= ? AND date_lesson <= ?", yearStart, previousEnd).
		Where("is_happend = ?", models.LessonStatusCompleted).
		Find(&previousLessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не вдалося отримати заняття"})
		return
	}

	var totalPreviousBalance float64
	for _, lesson := range previousLessons {
		var paid float64
		for _, p := range lesson.Payments {
			paid += p.Amount
		}
		totalPreviousBalance += paid - lesson.Price
	}

	var childName, childSurname string
	if len(lessons) > 0 {
		childName = lessons[0].ChildName
		childSurname = lessons[0].ChildSurname
	}

	c.JSON(http.StatusOK, gin.H{
		"childName":            childName,
		"childSurname":         childSurname,
		"child":                childID,
		"totalBalance":         totalBalance,
		"totalPreviousBalance": totalPreviousBalance,
		"details":              details,
	})
}
