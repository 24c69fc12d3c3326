package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"opsdash/internal/razorpay"
	"opsdash/internal/recon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGateway struct {
	payments    []razorpay.Payment
	settlements []razorpay.Settlement
	refundsErr  error
}

func (s *stubGateway) ListPayments(context.Context, razorpay.ListOptions) ([]razorpay.Payment, error) {
	return s.payments, nil
}

func (s *stubGateway) ListSettlements(context.Context, razorpay.ListOptions) ([]razorpay.Settlement, error) {
	return s.settlements, nil
}

func (s *stubGateway) ListRefunds(context.Context, razorpay.ListOptions) ([]razorpay.Refund, error) {
	return nil, s.refundsErr
}

func newTestApp() *application {
	return &application{logger: zap.NewNop().Sugar()}
}

func TestReconciliationWithoutCredentialsIsConfigurationError(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/payments/reconciliation", nil)
	rec := httptest.NewRecorder()

	app.paymentsReconciliationHandler(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "not configured")
}

func TestReconciliationRejectsMalformedWindow(t *testing.T) {
	app := newTestApp()
	app.recon = recon.NewAggregator(&stubGateway{}, app.logger)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/payments/reconciliation?from=yesterday", nil)
	rec := httptest.NewRecorder()

	app.paymentsReconciliationHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReconciliationReturnsPartialDataOnStreamFailure(t *testing.T) {
	app := newTestApp()
	app.recon = recon.NewAggregator(&stubGateway{
		payments: []razorpay.Payment{
			{ID: "pay_1", Amount: 50000, Status: razorpay.PaymentCaptured},
		},
		settlements: []razorpay.Settlement{
			{ID: "setl_1", Amount: 45000},
		},
		refundsErr: errors.New("bad gateway"),
	}, app.logger)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/payments/reconciliation?from=1700000000&to=1700086400", nil)
	rec := httptest.NewRecorder()

	app.paymentsReconciliationHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data recon.Report `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Len(t, body.Data.Payments, 1)
	assert.Len(t, body.Data.Settlements, 1)
	assert.Empty(t, body.Data.Refunds)
	assert.Equal(t, 500.0, body.Data.Stats.GrossCaptured)
	assert.Equal(t, 450.0, body.Data.Stats.TotalSettled)
}
