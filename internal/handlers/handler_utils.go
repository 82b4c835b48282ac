package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// badRequest відправляє помилку бізнес-логіки в єдиному конверті
// {statusCode, message, error}, який очікує фронтенд.
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"statusCode": http.StatusBadRequest,
		"message":    message,
		"error":      "Bad Request",
	})
}

// parseDateParam розбирає дату формату YYYY-MM-DD із query-параметрів.
func parseDateParam(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// millisToTime переводить epoch-мілісекунди (формат фронтенда) в time.Time.
func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// dayOf обрізає час до початку доби: відомості ЗП та звіти працюють
// з денною гранулярністю.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// rebaseSlot переносить часовий слот на вказану дату, зберігаючи годину
// й хвилину слота.
func rebaseSlot(slot, day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		slot.Hour(), slot.Minute(), slot.Second(), 0, slot.Location())
}

// startOfYear повертає 1 січня року заданої дати.
func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
