package routes

import (
	"ges_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathDepartments   = "/departments"
	PathBillingCycles = "/billing-cycles"
	PathReadings      = "/readings"
	PathExpenses      = "/expenses"
	PathPayments      = "/payments"
)

func addBillingRoutes(
	rg *gin.RouterGroup,
	cycleHandler *handlers.BillingCycleHandler,
	paymentHandler *handlers.PaymentHandler,
	expenseHandler *handlers.ExpenseHandler,
) {
	rg.GET(PathDepartments, handlers.ListDepartments)

	cycles := rg.Group(PathBillingCycles)
	{
		cycles.POST("", cycleHandler.CreateCycle)
		cycles.GET("", cycleHandler.ListCycles)
		cycles.POST("/preview", cycleHandler.PreviewCycle)
		cycles.GET("/period/:period", cycleHandler.GetCycleByPeriod)
		cycles.GET("/:id", cycleHandler.GetCycle)
		cycles.PUT("/:id", cycleHandler.UpdateCycle)
		cycles.DELETE("/:id", cycleHandler.DeleteCycle)
		cycles.GET("/:id/report", cycleHandler.GetCycleReport)
	}

	readings := rg.Group(PathReadings)
	{
		readings.GET("/previous/:consumer_id", cycleHandler.GetPreviousReading)
	}

	expenses := rg.Group(PathExpenses)
	{
		expenses.POST("", expenseHandler.CreateExpense)
		expenses.GET("", expenseHandler.ListExpenses)
		expenses.GET("/month/:month", expenseHandler.ListExpensesByMonth)
		expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/monthly", paymentHandler.CreateMonthlyPayments)
		payments.GET("/month/:month", paymentHandler.ListPaymentsByMonth)
		payments.GET("/:id", paymentHandler.GetPayment)
		payments.PUT("/:id", paymentHandler.RecordPayment)
		payments.POST("/:id/checkout", paymentHandler.Checkout)
	}
}
