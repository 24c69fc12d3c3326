package recon

import (
	"context"
	"strings"
	"sync"

	"opsdash/internal/razorpay"

	"go.uber.org/zap"
)

// PageSize is the fixed page size of the upstream list endpoints. A page
// returning fewer items than this signals the end of the stream.
const PageSize = 100

// Fetcher is the slice of the Razorpay client the aggregator needs.
type Fetcher interface {
	ListPayments(ctx context.Context, opts razorpay.ListOptions) ([]razorpay.Payment, error)
	ListSettlements(ctx context.Context, opts razorpay.ListOptions) ([]razorpay.Settlement, error)
	ListRefunds(ctx context.Context, opts razorpay.ListOptions) ([]razorpay.Refund, error)
}

// Refund is an upstream refund enriched with display fields copied from
// its parent payment. When no parent is found in the fetched payment set
// the customer fields fall back to "Unknown"/"N/A".
type Refund struct {
	razorpay.Refund
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerContact string  `json:"customer_contact"`
	ParentAmount    float64 `json:"parent_amount"`
	ParentMethod    string  `json:"parent_method"`
}

// Report bundles the three record streams plus the derived stats for one
// reconciliation request. It is rebuilt from scratch on every call and
// never persisted.
type Report struct {
	Payments    []razorpay.Payment    `json:"payments"`
	Settlements []razorpay.Settlement `json:"settlements"`
	Refunds     []Refund              `json:"refunds"`
	Stats       Stats                 `json:"stats"`
}

type Aggregator struct {
	client Fetcher
	logger *zap.SugaredLogger
}

func NewAggregator(client Fetcher, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{client: client, logger: logger}
}

// FetchAll retrieves every payment, settlement and refund in the optional
// [from, to] window and computes the summary stats.
//
// Each stream is paginated independently and best-effort: a failed page
// request truncates that stream at whatever was already accumulated, the
// other streams and the overall request are unaffected. Callers therefore
// cannot distinguish complete data from an upstream degraded mid-fetch;
// this mirrors how the dashboard has always behaved and is intentional.
func (a *Aggregator) FetchAll(ctx context.Context, from, to *int64) *Report {
	var (
		payments    []razorpay.Payment
		settlements []razorpay.Settlement
		refunds     []razorpay.Refund
	)

	// The three streams are independent; refund enrichment below must not
	// start until the payment stream has fully completed.
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		payments = fetchPages(ctx, a.logger, "payments", from, to, a.client.ListPayments)
	}()
	go func() {
		defer wg.Done()
		settlements = fetchPages(ctx, a.logger, "settlements", from, to, a.client.ListSettlements)
	}()
	go func() {
		defer wg.Done()
		refunds = fetchPages(ctx, a.logger, "refunds", from, to, a.client.ListRefunds)
	}()
	wg.Wait()

	return &Report{
		Payments:    payments,
		Settlements: settlements,
		Refunds:     enrichRefunds(refunds, payments),
		Stats:       computeStats(payments, refunds, settlements),
	}
}

func fetchPages[T any](ctx context.Context, logger *zap.SugaredLogger, stream string, from, to *int64, list func(context.Context, razorpay.ListOptions) ([]T, error)) []T {
	all := make([]T, 0, PageSize)
	for skip := 0; ; skip += PageSize {
		page, err := list(ctx, razorpay.ListOptions{Count: PageSize, Skip: skip, From: from, To: to})
		if err != nil {
			// Best effort: keep whatever this stream already yielded.
			logger.Warnw("upstream page fetch failed, truncating stream", "stream", stream, "skip", skip, "error", err)
			break
		}
		all = append(all, page...)
		if len(page) < PageSize {
			break
		}
	}
	return all
}

func enrichRefunds(refunds []razorpay.Refund, payments []razorpay.Payment) []Refund {
	byID := make(map[string]razorpay.Payment, len(payments))
	for _, p := range payments {
		byID[p.ID] = p
	}

	out := make([]Refund, 0, len(refunds))
	for _, r := range refunds {
		e := Refund{
			Refund:          r,
			CustomerName:    "Unknown",
			CustomerEmail:   "N/A",
			CustomerContact: "N/A",
			ParentMethod:    "N/A",
		}
		if p, ok := byID[r.PaymentID]; ok {
			e.CustomerName = customerName(p)
			e.CustomerEmail = p.Email
			e.CustomerContact = p.Contact
			e.ParentAmount = float64(p.Amount) / 100
			if p.Method != "" {
				e.ParentMethod = strings.ToUpper(p.Method)
			}
		}
		out = append(out, e)
	}
	return out
}

// customerName derives a display name: local part of the email when
// present, else the contact number, else "Unknown".
func customerName(p razorpay.Payment) string {
	if p.Email != "" {
		if at := strings.Index(p.Email, "@"); at > 0 {
			return p.Email[:at]
		}
		return p.Email
	}
	if p.Contact != "" {
		return p.Contact
	}
	return "Unknown"
}
