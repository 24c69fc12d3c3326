package recon

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"opsdash/internal/razorpay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStream serves pre-chunked pages and can be told to fail at a given
// page index.
type fakeStream[T any] struct {
	pages  [][]T
	failAt int // page index that errors, -1 to never fail
	calls  int
}

func newFakeStream[T any](items []T) *fakeStream[T] {
	s := &fakeStream[T]{failAt: -1}
	for len(items) > PageSize {
		s.pages = append(s.pages, items[:PageSize])
		items = items[PageSize:]
	}
	s.pages = append(s.pages, items)
	return s
}

func (s *fakeStream[T]) next(opts razorpay.ListOptions) ([]T, error) {
	s.calls++
	idx := opts.Skip / PageSize
	if s.failAt >= 0 && idx >= s.failAt {
		return nil, errors.New("upstream unavailable")
	}
	if idx >= len(s.pages) {
		return nil, nil
	}
	return s.pages[idx], nil
}

type fakeFetcher struct {
	payments    *fakeStream[razorpay.Payment]
	settlements *fakeStream[razorpay.Settlement]
	refunds     *fakeStream[razorpay.Refund]
}

func (f *fakeFetcher) ListPayments(_ context.Context, opts razorpay.ListOptions) ([]razorpay.Payment, error) {
	return f.payments.next(opts)
}

func (f *fakeFetcher) ListSettlements(_ context.Context, opts razorpay.ListOptions) ([]razorpay.Settlement, error) {
	return f.settlements.next(opts)
}

func (f *fakeFetcher) ListRefunds(_ context.Context, opts razorpay.ListOptions) ([]razorpay.Refund, error) {
	return f.refunds.next(opts)
}

func makePayments(n int) []razorpay.Payment {
	out := make([]razorpay.Payment, n)
	for i := range out {
		out[i] = razorpay.Payment{
			ID:     fmt.Sprintf("pay_%04d", i),
			Amount: 10000,
			Status: razorpay.PaymentCaptured,
			Method: "upi",
			Email:  fmt.Sprintf("user%d@example.com", i),
		}
	}
	return out
}

func makeSettlements(n int) []razorpay.Settlement {
	out := make([]razorpay.Settlement, n)
	for i := range out {
		out[i] = razorpay.Settlement{ID: fmt.Sprintf("setl_%04d", i), Amount: 5000}
	}
	return out
}

func makeRefunds(n int) []razorpay.Refund {
	out := make([]razorpay.Refund, n)
	for i := range out {
		out[i] = razorpay.Refund{
			ID:        fmt.Sprintf("rfnd_%04d", i),
			PaymentID: fmt.Sprintf("pay_%04d", i),
			Amount:    2500,
		}
	}
	return out
}

func newTestAggregator(f *fakeFetcher) *Aggregator {
	return NewAggregator(f, zap.NewNop().Sugar())
}

func TestFetchAllPaginatesUntilShortPage(t *testing.T) {
	f := &fakeFetcher{
		payments:    newFakeStream(makePayments(237)),
		settlements: newFakeStream(makeSettlements(237)),
		refunds:     newFakeStream(makeRefunds(237)),
	}

	report := newTestAggregator(f).FetchAll(context.Background(), nil, nil)

	// 100, 100, 37: the short third page ends each stream.
	assert.Equal(t, 3, f.payments.calls)
	assert.Equal(t, 3, f.settlements.calls)
	assert.Equal(t, 3, f.refunds.calls)

	assert.Len(t, report.Payments, 237)
	assert.Len(t, report.Settlements, 237)
	assert.Len(t, report.Refunds, 237)
}

func TestFetchAllStopsOnExactPageBoundary(t *testing.T) {
	f := &fakeFetcher{
		payments:    newFakeStream(makePayments(100)),
		settlements: newFakeStream(makeSettlements(0)),
		refunds:     newFakeStream(makeRefunds(0)),
	}

	report := newTestAggregator(f).FetchAll(context.Background(), nil, nil)

	// A full page forces one more request, which returns an empty page.
	assert.Equal(t, 2, f.payments.calls)
	assert.Len(t, report.Payments, 100)
}

func TestFetchAllKeepsPartialStreamOnFailure(t *testing.T) {
	f := &fakeFetcher{
		payments:    newFakeStream(makePayments(150)),
		settlements: newFakeStream(makeSettlements(10)),
		refunds:     newFakeStream(makeRefunds(250)),
	}
	f.refunds.failAt = 1 // second refund page fails

	report := newTestAggregator(f).FetchAll(context.Background(), nil, nil)

	// Refunds truncated to page one, other streams untouched.
	assert.Len(t, report.Refunds, 100)
	assert.Len(t, report.Payments, 150)
	assert.Len(t, report.Settlements, 10)
	assert.Equal(t, 150, report.Stats.TotalPayments)
}

func TestFetchAllPassesWindowThrough(t *testing.T) {
	from, to := int64(1700000000), int64(1700086400)
	var gotFrom, gotTo *int64

	a := NewAggregator(fetcherFunc(func(_ context.Context, opts razorpay.ListOptions) ([]razorpay.Payment, error) {
		gotFrom, gotTo = opts.From, opts.To
		return nil, nil
	}), zap.NewNop().Sugar())

	a.FetchAll(context.Background(), &from, &to)

	require.NotNil(t, gotFrom)
	require.NotNil(t, gotTo)
	assert.Equal(t, from, *gotFrom)
	assert.Equal(t, to, *gotTo)
}

// fetcherFunc adapts a payments func into a Fetcher with empty other streams.
type fetcherFunc func(ctx context.Context, opts razorpay.ListOptions) ([]razorpay.Payment, error)

func (f fetcherFunc) ListPayments(ctx context.Context, opts razorpay.ListOptions) ([]razorpay.Payment, error) {
	return f(ctx, opts)
}

func (f fetcherFunc) ListSettlements(context.Context, razorpay.ListOptions) ([]razorpay.Settlement, error) {
	return nil, nil
}

func (f fetcherFunc) ListRefunds(context.Context, razorpay.ListOptions) ([]razorpay.Refund, error) {
	return nil, nil
}

func TestEnrichRefundsCopiesParentFields(t *testing.T) {
	payments := []razorpay.Payment{
		{ID: "pay_1", Amount: 150000, Method: "card", Email: "asha.rao@example.com", Contact: "+919800000001"},
		{ID: "pay_2", Amount: 40000, Method: "", Email: "", Contact: "+919800000002"},
	}
	refunds := []razorpay.Refund{
		{ID: "rfnd_1", PaymentID: "pay_1", Amount: 50000},
		{ID: "rfnd_2", PaymentID: "pay_2", Amount: 40000},
	}

	out := enrichRefunds(refunds, payments)
	require.Len(t, out, 2)

	assert.Equal(t, "asha.rao", out[0].CustomerName)
	assert.Equal(t, "asha.rao@example.com", out[0].CustomerEmail)
	assert.Equal(t, "+919800000001", out[0].CustomerContact)
	assert.Equal(t, 1500.0, out[0].ParentAmount)
	assert.Equal(t, "CARD", out[0].ParentMethod)

	// No email: name falls back to the contact number, method to N/A.
	assert.Equal(t, "+919800000002", out[1].CustomerName)
	assert.Equal(t, "N/A", out[1].ParentMethod)
}

func TestEnrichRefundsMissingParent(t *testing.T) {
	refunds := []razorpay.Refund{{ID: "rfnd_9", PaymentID: "pay_gone", Amount: 100}}

	out := enrichRefunds(refunds, nil)
	require.Len(t, out, 1)

	assert.Equal(t, "Unknown", out[0].CustomerName)
	assert.Equal(t, "N/A", out[0].CustomerEmail)
	assert.Equal(t, "N/A", out[0].CustomerContact)
	assert.Equal(t, "N/A", out[0].ParentMethod)
	assert.Zero(t, out[0].ParentAmount)
}
