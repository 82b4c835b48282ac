// sunstoriy-back/internal/routes/api_routes.go
package routes

import (
	"github.com/VladDyadenko/sunstoriy-back/internal/handlers"
	"github.com/VladDyadenko/sunstoriy-back/internal/middleware"
	"github.com/VladDyadenko/sunstoriy-back/models"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes реєструє всі маршрути API, що вимагають автентифікації.
// Мутації занять/ЗП доступні адміністратору та фахівцю, звіти та видалення —
// лише адміністратору.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	adminOrTeacher := middleware.RolesMiddleware(models.RoleAdmin, models.RoleTeacher)
	adminOnly := middleware.RolesMiddleware(models.RoleAdmin)

	api.GET("/auth/current", handlers.CurrentUserHandler)

	// --- КОРИСТУВАЧІ ---
	users := api.Group("/users")
	users.Use(adminOnly)
	{
		users.GET("", handlers.ListUsersHandler)
		users.POST("", handlers.CreateUserHandler)
		users.GET("/:id", handlers.GetUserHandler)
		users.PUT("/:id", handlers.UpdateUserHandler)
		users.DELETE("/:id", handlers.DeleteUserHandler)
	}

	// --- ДІТИ ---
	child := api.Group("/child")
	child.Use(adminOrTeacher)
	{
		child.GET("", handlers.ListChildrenHandler)
		child.POST("", handlers.CreateChildHandler)
		child.GET("/:id", handlers.GetChildHandler)
		child.PUT("/:id", handlers.UpdateChildHandler)
		child.DELETE("/:id", adminOnly, handlers.DeleteChildHandler)
	}

	// --- ФАХІВЦІ ---
	teacher := api.Group("/teacher")
	teacher.Use(adminOrTeacher)
	{
		teacher.GET("", handlers.ListTeachersHandler)
		teacher.POST("", adminOnly, handlers.CreateTeacherHandler)
		teacher.GET("/:id", handlers.GetTeacherHandler)
		teacher.PUT("/:id", adminOnly, handlers.UpdateTeacherHandler)
		teacher.DELETE("/:id", adminOnly, handlers.DeleteTeacherHandler)
	}

	// --- ЗАНЯТТЯ ---
	lesson := api.Group("/lesson")
	lesson.Use(adminOrTeacher)
	{
		lesson.POST("", handlers.CreateLessonHandler)
		lesson.GET("", handlers.GetLessonsHandler)
		lesson.PUT("/:id", handlers.UpdateLessonHandler)
		lesson.GET("/lesson/:id", handlers.GetLessonByIDHandler)
		lesson.GET("/office/office_date", handlers.GetLessonsByOfficeHandler)
		lesson.POST("/office_date_teachers", handlers.GetLessonsByOfficeDateTeachersHandler)
		lesson.PATCH("/delete/:id", adminOnly, handlers.DeleteLessonHandler)

		// Операції журналу оплат заняття.
		lesson.POST("/:lessonId/payment", handlers.AddPaymentHandler)
		lesson.PATCH("/:lessonId/payment/:paymentId", handlers.UpdatePaymentHandler)
		lesson.DELETE("/:lessonId/payment/:paymentId", handlers.DeletePaymentHandler)
	}

	// --- ЗАРПЛАТИ ---
	salary := api.Group("/salary")
	salary.Use(adminOrTeacher)
	{
		salary.POST("", handlers.AddSalaryHandler)
		salary.PUT("/:id", handlers.UpdateSalaryHandler)
		salary.GET("/salary/:id", handlers.GetSalaryByIDHandler)
		salary.GET("/salary_by_date", handlers.GetSalaryByDateHandler)
		salary.PATCH("/delete/:id", adminOnly, handlers.DeleteSalaryHandler)
	}

	// --- РОЗХОДИ ---
	expense := api.Group("/expense")
	expense.Use(adminOrTeacher)
	{
		expense.POST("", handlers.CreateExpenseHandler)
		expense.GET("", handlers.GetExpensesHandler)
		expense.GET("/expense_by_date", handlers.GetExpensesByDateHandler)
		expense.GET("/:id", handlers.GetExpenseByIDHandler)
		expense.PUT("/:id", handlers.UpdateExpenseHandler)
		expense.PATCH("/delete/:id", adminOnly, handlers.DeleteExpenseHandler)
	}

	// --- ЗВІТИ (лише адміністратор) ---
	zvit := api.Group("/zvit")
	zvit.Use(adminOnly)
	{
		zvit.GET("/one_month_total", handlers.GetPeriodSummaryHandler)
		zvit.GET("/one_month_total/export", handlers.ExportPeriodSummaryHandler)
		zvit.GET("/childrens_period", handlers.GetChildrenPeriodHandler)
		zvit.GET("/children_period/:id", handlers.GetChildDetailReportHandler)
	}
}
