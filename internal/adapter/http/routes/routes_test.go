package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ges_billing/internal/adapter/http/handlers/mocks"
	"ges_billing/internal/domain/entities"
	"ges_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockIBillingCycleUseCase, *mocks.MockIPaymentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	cycles := mocks.NewMockIBillingCycleUseCase(ctrl)
	payments := mocks.NewMockIPaymentUseCase(ctrl)
	r := NewRouter(UseCases{
		Cycles:   cycles,
		Payments: payments,
		Expenses: mocks.NewMockIExpenseUseCase(ctrl),
	})
	return r, cycles, payments
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter_Ping(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := serve(r, http.MethodGet, "/v1/ping")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("unexpected ping response %d %s", w.Code, w.Body.String())
	}
}

func TestNewRouter_Departments(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := serve(r, http.MethodGet, "/v1/departments")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), entities.SourceDepartmentCode) {
		t.Fatalf("unexpected departments response %d %s", w.Code, w.Body.String())
	}
}

func TestNewRouter_StaticSegmentsWinOverIDs(t *testing.T) {
	r, cycles, payments := newTestRouter(t)
	cycles.EXPECT().GetByPeriodLabel(gomock.Any(), "Marzo").Return(entities.BillingCycle{}, usecase.ErrCycleNotFound)
	payments.EXPECT().ListByMonth(gomock.Any(), "2025-03").Return(nil, nil)

	if w := serve(r, http.MethodGet, "/v1/billing-cycles/period/Marzo"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/v1/payments/month/2025-03"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)
	serve(r, http.MethodGet, "/v1/ping")

	w := serve(r, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ges_billing_http_requests_total") {
		t.Fatalf("http metrics not exported")
	}
}
