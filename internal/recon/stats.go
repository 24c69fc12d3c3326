package recon

import "opsdash/internal/razorpay"

// Stats is the summary recomputed on every reconciliation request.
// Monetary fields are in major currency units (rupees).
type Stats struct {
	TotalPayments      int     `json:"total_payments"`
	SuccessfulPayments int     `json:"successful_payments"`
	FailedPayments     int     `json:"failed_payments"`
	GrossCaptured      float64 `json:"gross_captured"`
	RefundCount        int     `json:"refund_count"`
	TotalRefunds       float64 `json:"total_refunds"`
	RefundedPayments   int     `json:"refunded_payments"`
	NetCollected       float64 `json:"net_collected"`
	SettlementCount    int     `json:"settlement_count"`
	TotalSettled       float64 `json:"total_settled"`
}

func computeStats(payments []razorpay.Payment, refunds []razorpay.Refund, settlements []razorpay.Settlement) Stats {
	s := Stats{
		TotalPayments:   len(payments),
		RefundCount:     len(refunds),
		SettlementCount: len(settlements),
	}

	var grossPaise, refundPaise, settledPaise int64
	for _, p := range payments {
		switch p.Status {
		case razorpay.PaymentCaptured:
			s.SuccessfulPayments++
			grossPaise += p.Amount
		case razorpay.PaymentFailed:
			s.FailedPayments++
		}
	}

	// Duplicate refunds against the same payment count once here.
	refunded := make(map[string]struct{}, len(refunds))
	for _, r := range refunds {
		refundPaise += r.Amount
		refunded[r.PaymentID] = struct{}{}
	}
	s.RefundedPayments = len(refunded)

	for _, st := range settlements {
		settledPaise += st.Amount
	}

	// Net collected before fees, never negative.
	netPaise := grossPaise - refundPaise
	if netPaise < 0 {
		netPaise = 0
	}

	s.GrossCaptured = float64(grossPaise) / 100
	s.TotalRefunds = float64(refundPaise) / 100
	s.NetCollected = float64(netPaise) / 100
	s.TotalSettled = float64(settledPaise) / 100
	return s
}
