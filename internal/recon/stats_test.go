package recon

import (
	"testing"

	"opsdash/internal/razorpay"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	payments := []razorpay.Payment{
		{ID: "pay_1", Amount: 100000, Status: razorpay.PaymentCaptured},
		{ID: "pay_2", Amount: 50000, Status: razorpay.PaymentCaptured},
		{ID: "pay_3", Amount: 25000, Status: razorpay.PaymentFailed},
		{ID: "pay_4", Amount: 25000, Status: "authorized"},
	}
	refunds := []razorpay.Refund{
		{ID: "rfnd_1", PaymentID: "pay_1", Amount: 30000},
		{ID: "rfnd_2", PaymentID: "pay_1", Amount: 10000}, // same payment refunded twice
		{ID: "rfnd_3", PaymentID: "pay_2", Amount: 5000},
	}
	settlements := []razorpay.Settlement{
		{ID: "setl_1", Amount: 90000},
		{ID: "setl_2", Amount: 15000},
	}

	s := computeStats(payments, refunds, settlements)

	assert.Equal(t, 4, s.TotalPayments)
	assert.Equal(t, 2, s.SuccessfulPayments)
	assert.Equal(t, 1, s.FailedPayments)
	assert.Equal(t, 1500.0, s.GrossCaptured) // only captured payments

	assert.Equal(t, 3, s.RefundCount)
	assert.Equal(t, 450.0, s.TotalRefunds)
	assert.Equal(t, 2, s.RefundedPayments) // pay_1 counted once

	assert.Equal(t, 1050.0, s.NetCollected)

	assert.Equal(t, 2, s.SettlementCount)
	assert.Equal(t, 1050.0, s.TotalSettled)
}

func TestComputeStatsNetCollectedFloorsAtZero(t *testing.T) {
	payments := []razorpay.Payment{{ID: "pay_1", Amount: 10000, Status: razorpay.PaymentCaptured}}
	refunds := []razorpay.Refund{{ID: "rfnd_1", PaymentID: "pay_1", Amount: 25000}}

	s := computeStats(payments, refunds, nil)

	assert.Equal(t, 100.0, s.GrossCaptured)
	assert.Equal(t, 250.0, s.TotalRefunds)
	assert.Zero(t, s.NetCollected)
}

func TestComputeStatsEmpty(t *testing.T) {
	s := computeStats(nil, nil, nil)

	assert.Zero(t, s.TotalPayments)
	assert.Zero(t, s.GrossCaptured)
	assert.Zero(t, s.NetCollected)
	assert.Zero(t, s.RefundedPayments)
}
