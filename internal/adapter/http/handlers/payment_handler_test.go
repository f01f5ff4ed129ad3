package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pagamentos_api/internal/adapter/http/handlers/mocks"
	"pagamentos_api/internal/domain/entities"
	"pagamentos_api/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(h *PaymentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/payment", h.CreatePayment)
	r.GET("/api/payment", h.ListPayments)
	r.GET("/api/payment/:id", h.GetPayment)
	r.PUT("/api/payment/:id", h.UpdatePayment)
	return r
}

func TestPaymentHandler_CreatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/api/payment", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation error from usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, usecase.ErrInvalidCPF)

		req := httptest.NewRequest(http.MethodPost, "/api/payment", bytes.NewBufferString(`{"cpf":"123","description":"X","amount":100.50,"paymentMethod":"PIX"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("gateway failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, fmt.Errorf("%w: boom", usecase.ErrPaymentGatewayFailure))

		req := httptest.NewRequest(http.MethodPost, "/api/payment", bytes.NewBufferString(`{"cpf":"12345678901","description":"X","amount":100.50,"paymentMethod":"CREDIT_CARD"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		now := time.Now().UTC()
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, cmd usecase.CreatePaymentCommand) (entities.Payment, error) {
				if cmd.CPF != "12345678901" || cmd.PaymentMethod != entities.PaymentMethodPix {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.NewPayment("pay-1", cmd.CPF, cmd.Description, cmd.Amount, cmd.PaymentMethod, now), nil
			},
		)

		req := httptest.NewRequest(http.MethodPost, "/api/payment", bytes.NewBufferString(`{"cpf":"12345678901","description":"X","amount":100.50,"paymentMethod":"PIX"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "pay-1" || body["status"] != "PENDING" || body["paymentMethod"] != "PIX" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if _, ok := body["externalPaymentId"]; ok {
			t.Fatalf("externalPaymentId must be omitted when empty: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_UpdatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		req := httptest.NewRequest(http.MethodPut, "/api/payment/pay-1", bytes.NewBufferString("not-json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().Update(gomock.Any(), "missing", gomock.Any()).Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodPut, "/api/payment/missing", bytes.NewBufferString(`{"status":"PAID"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().Update(gomock.Any(), "pay-1", gomock.Any()).DoAndReturn(
			func(_ any, id string, cmd usecase.UpdatePaymentCommand) (entities.Payment, error) {
				if cmd.Status == nil || *cmd.Status != entities.PaymentStatusPaid {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Payment{ID: id, Status: *cmd.Status}, nil
			},
		)

		req := httptest.NewRequest(http.MethodPut, "/api/payment/pay-1", bytes.NewBufferString(`{"status":"PAID"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "PAID" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_GetPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/payment/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{
			ID:                "pay-1",
			Status:            entities.PaymentStatusPending,
			ExternalPaymentID: "pref-1",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/payment/pay-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["externalPaymentId"] != "pref-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("filters forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().List(gomock.Any(), entities.PaymentFilter{
			CPF:           "12345678901",
			PaymentMethod: entities.PaymentMethodCreditCard,
		}).Return([]entities.Payment{{ID: "p1"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/payment?cpf=12345678901&paymentMethod=CREDIT_CARD", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unfiltered empty result renders empty array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().List(gomock.Any(), entities.PaymentFilter{}).Return([]entities.Payment{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/payment", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "[]" {
			t.Fatalf("expected empty array, got %s", w.Body.String())
		}
	})
}
