package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "ges_billing/docs"
	"ges_billing/internal/adapter/http/handlers"
	"ges_billing/internal/adapter/persistence/repository"
	appconfig "ges_billing/internal/infrastructure/config"
	"ges_billing/internal/infrastructure/database"
	"ges_billing/internal/infrastructure/metrics"
	"ges_billing/internal/infrastructure/payments"
	"ges_billing/internal/usecase"
	"ges_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const bootstrapTimeout = 30 * time.Second

// UseCases are the application services exposed over HTTP.
type UseCases struct {
	Cycles   usecase.IBillingCycleUseCase
	Payments usecase.IPaymentUseCase
	Expenses usecase.IExpenseUseCase
}

// Run wires storage, use cases and handlers, then serves until SIGINT/SIGTERM.
func Run(cfg *appconfig.Config) error {
	gin.SetMode(cfg.GinMode)

	ddb := database.ConnectDynamoDB(cfg)
	if cfg.DynamoDBEndpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
		err := database.EnsureTables(ctx, ddb, database.TableSpecs(cfg))
		cancel()
		if err != nil {
			return err
		}
	}

	cycleRepo := repository.NewBillingCycleDynamoRepository(ddb, cfg.BillingCyclesTable, cfg.PaymentsTable)
	paymentRepo := repository.NewPaymentObligationDynamoRepository(ddb, cfg.PaymentsTable)
	expenseRepo := repository.NewExpenseDynamoRepository(ddb, cfg.ExpensesTable)

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg)
	if err != nil {
		log.Printf("[payment][bootstrap] Mercado Pago gateway not configured: %v", err)
	} else {
		gateway = mpGateway
	}

	router := NewRouter(UseCases{
		Cycles:   usecase.NewBillingCycleUseCase(cycleRepo, paymentRepo),
		Payments: usecase.NewPaymentUseCase(paymentRepo, cycleRepo, gateway),
		Expenses: usecase.NewExpenseUseCase(expenseRepo),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[http][bootstrap] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[http][bootstrap] shutting down timeout=%s", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with middlewares, docs, metrics and the /v1 API.
func NewRouter(uc UseCases) *gin.Engine {
	metrics.Init()
	handlers.RegisterValidatorTagNames()

	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1,
		handlers.NewBillingCycleHandler(uc.Cycles),
		handlers.NewPaymentHandler(uc.Payments),
		handlers.NewExpenseHandler(uc.Expenses),
	)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(metrics.GinMiddleware())
}
