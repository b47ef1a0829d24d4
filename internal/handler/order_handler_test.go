package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasdrives/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockOrderService)
		expectedStatus int
	}{
		{
			name:  "Orders found",
			query: "?email=ana@example.com",
			setupMock: func(m *MockOrderService) {
				m.On("ListCustomerOrders", mock.Anything, "ana@example.com").
					Return([]model.Order{{ID: "pi_1", OrderNumber: "TAS-1-pi_1"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Missing email",
			query: "",
			setupMock: func(m *MockOrderService) {
				m.On("ListCustomerOrders", mock.Anything, "").Return(nil, model.NewValidationError("email is required"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Processor failure",
			query: "?email=ana@example.com",
			setupMock: func(m *MockOrderService) {
				m.On("ListCustomerOrders", mock.Anything, "ana@example.com").Return(nil, errors.New("stripe down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			tt.setupMock(svc)
			h := NewOrderHandler(svc, zerolog.Nop())

			w := httptest.NewRecorder()
			h.List(w, httptest.NewRequest(http.MethodGet, "/api/user/orders"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body ordersResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.True(t, body.Success)
				assert.Len(t, body.Orders, 1)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Get(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("GetCustomerOrder", mock.Anything, "ana@example.com", "TAS-1-abc").Return(&model.Order{OrderNumber: "TAS-1-abc"}, nil)
	svc.On("GetCustomerOrder", mock.Anything, "ana@example.com", "TAS-2-xyz").Return(nil, model.ErrOrderNotFound)
	h := NewOrderHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/user/orders/TAS-1-abc?email=ana@example.com", nil)
	req.SetPathValue("orderNumber", "TAS-1-abc")
	w := httptest.NewRecorder()
	h.Get(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/user/orders/TAS-2-xyz?email=ana@example.com", nil)
	req.SetPathValue("orderNumber", "TAS-2-xyz")
	w = httptest.NewRecorder()
	h.Get(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
