package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ges_billing/internal/adapter/http/handlers/mocks"
	"ges_billing/internal/domain/entities"
	"ges_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const validCycleBody = `{
	"period_label": "Marzo 2025",
	"cycle_date": "2025-03-31",
	"input_totals": [1000, "500.50"],
	"readings": [
		{"consumer_id": "GENERAL", "current_reading": 300, "previous_reading": 200},
		{"consumer_id": "1-A", "current_reading": "130.5", "previous_reading": 100}
	]
}`

type httpErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func newCycleRouter(t *testing.T) (*gin.Engine, *mocks.MockIBillingCycleUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidatorTagNames()

	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIBillingCycleUseCase(ctrl)
	h := NewBillingCycleHandler(uc)

	r := gin.New()
	r.POST("/v1/billing-cycles", h.CreateCycle)
	r.POST("/v1/billing-cycles/preview", h.PreviewCycle)
	r.GET("/v1/billing-cycles", h.ListCycles)
	r.GET("/v1/billing-cycles/:id", h.GetCycle)
	r.PUT("/v1/billing-cycles/:id", h.UpdateCycle)
	r.DELETE("/v1/billing-cycles/:id", h.DeleteCycle)
	r.GET("/v1/billing-cycles/:id/report", h.GetCycleReport)
	r.GET("/v1/billing-cycles/period/:period", h.GetCycleByPeriod)
	r.GET("/v1/readings/previous/:consumer_id", h.GetPreviousReading)
	return r, uc
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httpErrorBody {
	t.Helper()
	var body httpErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return body
}

func sampleCycle() entities.BillingCycle {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	return entities.BillingCycle{
		ID:               "2025-03",
		PeriodLabel:      "Marzo 2025",
		CycleDate:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		InputTotals:      []decimal.Decimal{decimal.NewFromInt(1000), decimal.RequireFromString("500.50")},
		TotalAmount:      decimal.RequireFromString("1500.50"),
		TotalConsumption: decimal.NewFromInt(100),
		UnitPrice:        decimal.RequireFromString("15.005"),
		Readings: []entities.CycleReading{
			{ConsumerID: "GENERAL", Source: true, CurrentReading: decimal.NewFromInt(300), PreviousReading: decimal.NewFromInt(200), Consumption: decimal.NewFromInt(100)},
			{ConsumerID: "1-A", CurrentReading: decimal.RequireFromString("130.5"), PreviousReading: decimal.NewFromInt(100), Consumption: decimal.RequireFromString("30.5")},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBillingCycleHandler_CreateCycle(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		r, _ := newCycleRouter(t)
		w := doRequest(r, http.MethodPost, "/v1/billing-cycles", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing fields are reported by json name", func(t *testing.T) {
		r, _ := newCycleRouter(t)
		w := doRequest(r, http.MethodPost, "/v1/billing-cycles", `{"period_label":"Marzo","cycle_date":"2025-03-31","input_totals":[10]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeError(t, w)
		if body.Code != "INVALID_REQUEST" {
			t.Fatalf("unexpected code %q", body.Code)
		}
		if len(body.Details) != 1 || body.Details[0].Field != "readings" {
			t.Fatalf("unexpected details %+v", body.Details)
		}
	})

	t.Run("bad cycle date", func(t *testing.T) {
		r, _ := newCycleRouter(t)
		w := doRequest(r, http.MethodPost, "/v1/billing-cycles", `{"period_label":"Marzo","cycle_date":"31/03/2025","input_totals":[10],"readings":[{"consumer_id":"1-A","current_reading":1}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("request mapped to usecase input", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, in usecase.CycleInput) (entities.BillingCycle, error) {
			if in.PeriodLabel != "Marzo 2025" || len(in.InputTotals) != 2 || len(in.Readings) != 2 {
				t.Fatalf("unexpected input %+v", in)
			}
			if !in.InputTotals[1].Equal(decimal.RequireFromString("500.50")) {
				t.Fatalf("unexpected total %s", in.InputTotals[1])
			}
			if in.Readings[1].PreviousReading == nil || !in.Readings[1].CurrentReading.Equal(decimal.RequireFromString("130.5")) {
				t.Fatalf("unexpected reading %+v", in.Readings[1])
			}
			return sampleCycle(), nil
		})

		w := doRequest(r, http.MethodPost, "/v1/billing-cycles", validCycleBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["id"] != "2025-03" {
			t.Fatalf("unexpected id %v", got["id"])
		}
	})

	t.Run("conflict", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.BillingCycle{}, usecase.ErrCycleAlreadyExists)
		w := doRequest(r, http.MethodPost, "/v1/billing-cycles", validCycleBody)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "BILLING_CYCLE_ALREADY_EXISTS" {
			t.Fatalf("unexpected code %q", body.Code)
		}
	})

	t.Run("unknown consumer", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.BillingCycle{}, usecase.ErrUnknownConsumer)
		w := doRequest(r, http.MethodPost, "/v1/billing-cycles", validCycleBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "INVALID_CONSUMER" {
			t.Fatalf("unexpected code %q", body.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.BillingCycle{}, errors.New("ddb down"))
		w := doRequest(r, http.MethodPost, "/v1/billing-cycles", validCycleBody)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestBillingCycleHandler_PreviewCycle(t *testing.T) {
	r, uc := newCycleRouter(t)
	uc.EXPECT().Preview(gomock.Any(), gomock.Any()).Return(entities.BillingCycle{}, usecase.ErrInvalidReadings)
	w := doRequest(r, http.MethodPost, "/v1/billing-cycles/preview", validCycleBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != "INVALID_APPORTIONMENT_INPUT" {
		t.Fatalf("unexpected code %q", body.Code)
	}
}

func TestBillingCycleHandler_UpdateCycle(t *testing.T) {
	t.Run("month mismatch", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().Update(gomock.Any(), "2025-02", gomock.Any()).Return(entities.BillingCycle{}, usecase.ErrCycleMonthMismatch)
		w := doRequest(r, http.MethodPut, "/v1/billing-cycles/2025-02", validCycleBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().Update(gomock.Any(), "2025-03", gomock.Any()).Return(sampleCycle(), nil)
		w := doRequest(r, http.MethodPut, "/v1/billing-cycles/2025-03", validCycleBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBillingCycleHandler_DeleteCycle(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().Delete(gomock.Any(), "2025-03").Return(usecase.ErrCycleNotFound)
		w := doRequest(r, http.MethodDelete, "/v1/billing-cycles/2025-03", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().Delete(gomock.Any(), "2025-03").Return(nil)
		w := doRequest(r, http.MethodDelete, "/v1/billing-cycles/2025-03", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestBillingCycleHandler_Queries(t *testing.T) {
	t.Run("get by id", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "2025-03").Return(sampleCycle(), nil)
		w := doRequest(r, http.MethodGet, "/v1/billing-cycles/2025-03", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("get by period", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().GetByPeriodLabel(gomock.Any(), "Marzo 2025").Return(entities.BillingCycle{}, usecase.ErrCycleNotFound)
		w := doRequest(r, http.MethodGet, "/v1/billing-cycles/period/Marzo%202025", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().List(gomock.Any()).Return([]entities.BillingCycle{sampleCycle()}, nil)
		w := doRequest(r, http.MethodGet, "/v1/billing-cycles", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || len(got) != 1 {
			t.Fatalf("unexpected body %s err=%v", w.Body.String(), err)
		}
	})

	t.Run("report", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		cycle := sampleCycle()
		uc.EXPECT().Report(gomock.Any(), "2025-03").Return(usecase.CycleReport{
			Cycle:         cycle,
			Source:        &cycle.Readings[0],
			Rows:          cycle.Readings[1:],
			RoundedTotal:  458,
			RoundingDelta: decimal.RequireFromString("0.35"),
		}, nil)
		w := doRequest(r, http.MethodGet, "/v1/billing-cycles/2025-03/report", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("previous reading", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().PreviousReading(gomock.Any(), "1-A").Return(usecase.PreviousReading{
			ConsumerID:      "1-A",
			CycleID:         "2025-03",
			PreviousReading: decimal.RequireFromString("130.5"),
		}, nil)
		w := doRequest(r, http.MethodGet, "/v1/readings/previous/1-A", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got["previous_reading"] != "130.5" {
			t.Fatalf("unexpected previous_reading %v", got["previous_reading"])
		}
	})

	t.Run("previous reading missing", func(t *testing.T) {
		r, uc := newCycleRouter(t)
		uc.EXPECT().PreviousReading(gomock.Any(), "9-Z").Return(usecase.PreviousReading{}, usecase.ErrPreviousReadingNotFound)
		w := doRequest(r, http.MethodGet, "/v1/readings/previous/9-Z", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
